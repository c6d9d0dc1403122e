package java

// FieldSpec declares a field.
type FieldSpec struct {
	Type        TypeName
	Name        string
	Javadoc     CodeBlock
	Annotations []*Annotation
	Modifiers   []Modifier
	// Initializer is the expression after '=', if any.
	Initializer CodeBlock
}

func NewField(t TypeName, name string, modifiers ...Modifier) *FieldSpec {
	return &FieldSpec{Type: t, Name: name, Modifiers: modifiers}
}

func (f *FieldSpec) HasModifier(m Modifier) bool { return hasModifier(f.Modifiers, m) }

// WithInitializer sets the initializer to the compiled template.
func (f *FieldSpec) WithInitializer(format string, args ...any) (*FieldSpec, error) {
	cb, err := NewCode(format, args...)
	if err != nil {
		return nil, err
	}
	f.Initializer = cb
	return f, nil
}

func (f *FieldSpec) validate() error {
	if isNilType(f.Type) {
		return declarationErrorf("field %s has no type", f.Name)
	}
	if isVoid(f.Type) {
		return declarationErrorf("field %s cannot be void", f.Name)
	}
	if !IsValidName(f.Name) {
		return declarationErrorf("not a valid name: %s", f.Name)
	}
	return nil
}

func (f *FieldSpec) emit(cw *CodeWriter, implicit []Modifier) {
	cw.emitJavadoc(f.Javadoc)
	cw.emitAnnotations(f.Annotations, false)
	cw.emitModifiers(f.Modifiers, implicit)
	cw.emit("$T $L", f.Type, f.Name)
	if !f.Initializer.IsEmpty() {
		cw.emit(" = ")
		cw.emitCode(f.Initializer, false)
	}
	cw.emit(";\n")
}

func (f *FieldSpec) String() string { return renderString(f) }
