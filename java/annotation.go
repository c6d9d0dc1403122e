package java

// Annotation is an annotation on a declaration or a type use, such as
// @Named("x") or @Column(name = "id", nullable = false).
type Annotation struct {
	Type    *ClassName
	Members []AnnotationMember
}

// AnnotationMember is one name = value pair. A member with more than one
// value is written as an array initializer.
type AnnotationMember struct {
	Name   string
	Values []CodeBlock
}

// NewAnnotation returns a marker annotation of type t.
func NewAnnotation(t *ClassName) *Annotation {
	return &Annotation{Type: t}
}

// WithMember returns a copy of a with the template value added to the member
// name. Values for an existing member are appended to it.
func (a *Annotation) WithMember(name, format string, args ...any) (*Annotation, error) {
	if name == "" {
		return nil, declarationErrorf("annotation member name is empty")
	}
	value, err := NewCode(format, args...)
	if err != nil {
		return nil, err
	}
	out := &Annotation{Type: a.Type, Members: make([]AnnotationMember, 0, len(a.Members)+1)}
	added := false
	for _, m := range a.Members {
		values := append([]CodeBlock{}, m.Values...)
		if m.Name == name {
			values = append(values, value)
			added = true
		}
		out.Members = append(out.Members, AnnotationMember{Name: m.Name, Values: values})
	}
	if !added {
		out.Members = append(out.Members, AnnotationMember{Name: name, Values: []CodeBlock{value}})
	}
	return out, nil
}

// Member returns the values of the member name.
func (a *Annotation) Member(name string) ([]CodeBlock, bool) {
	for _, m := range a.Members {
		if m.Name == name {
			return m.Values, true
		}
	}
	return nil, false
}

// emit writes a on one line, or with one member per line when inline is
// false.
func (a *Annotation) emit(cw *CodeWriter, inline bool) {
	whitespace, memberSeparator := "\n", ",\n"
	if inline {
		whitespace, memberSeparator = "", ", "
	}
	switch {
	case len(a.Members) == 0:
		cw.emit("@$T", a.Type)
	case len(a.Members) == 1 && a.Members[0].Name == "value":
		cw.emit("@$T(", a.Type)
		emitAnnotationValues(cw, whitespace, memberSeparator, a.Members[0].Values)
		cw.emit(")")
	default:
		cw.emit("@$T("+whitespace, a.Type)
		cw.indentBy(2)
		for i, m := range a.Members {
			cw.emit("$L = ", m.Name)
			emitAnnotationValues(cw, whitespace, memberSeparator, m.Values)
			if i+1 < len(a.Members) {
				cw.emit(memberSeparator)
			}
		}
		cw.unindentBy(2)
		cw.emit(whitespace + ")")
	}
}

func emitAnnotationValues(cw *CodeWriter, whitespace, memberSeparator string, values []CodeBlock) {
	if len(values) == 1 {
		cw.indentBy(2)
		cw.emitCode(values[0], false)
		cw.unindentBy(2)
		return
	}
	cw.emit("{" + whitespace)
	cw.indentBy(2)
	for i, v := range values {
		if i > 0 {
			cw.emit(memberSeparator)
		}
		cw.emitCode(v, false)
	}
	cw.unindentBy(2)
	cw.emit(whitespace + "}")
}

// String renders the annotation inline.
func (a *Annotation) String() string { return renderString(a) }
