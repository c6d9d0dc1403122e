package java

// ParameterSpec declares a method or constructor parameter.
type ParameterSpec struct {
	Type        TypeName
	Name        string
	Javadoc     CodeBlock
	Annotations []*Annotation
	// Modifiers may only contain Final.
	Modifiers []Modifier
}

func NewParameter(t TypeName, name string, modifiers ...Modifier) *ParameterSpec {
	return &ParameterSpec{Type: t, Name: name, Modifiers: modifiers}
}

func (p *ParameterSpec) validate() error {
	if isNilType(p.Type) {
		return declarationErrorf("parameter %s has no type", p.Name)
	}
	if !IsValidName(p.Name) && p.Name != "this" {
		return declarationErrorf("not a valid name: %s", p.Name)
	}
	for _, m := range p.Modifiers {
		if m != Final {
			return declarationErrorf("unexpected parameter modifier: %s", m)
		}
	}
	return nil
}

func (p *ParameterSpec) emit(cw *CodeWriter, varargs bool) {
	cw.emitAnnotations(p.Annotations, true)
	cw.emitModifiers(p.Modifiers, nil)
	if array, ok := p.Type.(*ArrayTypeName); ok && varargs {
		cw.emitArray(array, true)
	} else {
		cw.emitType(p.Type)
	}
	cw.emit(" $L", p.Name)
}

func (p *ParameterSpec) String() string { return renderString(p) }
