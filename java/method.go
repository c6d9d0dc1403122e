package java

import "github.com/cockroachdb/errors"

const constructorName = "<init>"

// MethodSpec declares a method or a constructor.
type MethodSpec struct {
	Name          string
	Javadoc       CodeBlock
	Annotations   []*Annotation
	Modifiers     []Modifier
	TypeVariables []*TypeVariableName
	// ReturnType is ignored for constructors.
	ReturnType TypeName
	Parameters []*ParameterSpec
	// Varargs makes the last parameter, which must be an array, variadic.
	Varargs    bool
	Exceptions []TypeName
	Code       CodeBlock
	// DefaultValue is the default of an annotation type element.
	DefaultValue CodeBlock
}

// NewMethod returns a void method called name.
func NewMethod(name string, modifiers ...Modifier) *MethodSpec {
	return &MethodSpec{Name: name, ReturnType: Void, Modifiers: modifiers}
}

// NewConstructor returns a constructor; it is written with the name of the
// type it belongs to.
func NewConstructor(modifiers ...Modifier) *MethodSpec {
	return &MethodSpec{Name: constructorName, Modifiers: modifiers}
}

func (m *MethodSpec) IsConstructor() bool { return m.Name == constructorName }

func (m *MethodSpec) HasModifier(mod Modifier) bool { return hasModifier(m.Modifiers, mod) }

// AddParameter appends a parameter and returns m.
func (m *MethodSpec) AddParameter(t TypeName, name string, modifiers ...Modifier) *MethodSpec {
	m.Parameters = append(m.Parameters, NewParameter(t, name, modifiers...))
	return m
}

func (m *MethodSpec) validate() error {
	if !m.IsConstructor() && !IsValidName(m.Name) {
		return declarationErrorf("not a valid name: %s", m.Name)
	}
	if !m.IsConstructor() && isNilType(m.ReturnType) {
		return declarationErrorf("method %s has no return type", m.Name)
	}
	if m.Varargs {
		if len(m.Parameters) == 0 {
			return declarationErrorf("varargs method %s has no parameters", m.Name)
		}
		if _, ok := m.Parameters[len(m.Parameters)-1].Type.(*ArrayTypeName); !ok {
			return declarationErrorf("last parameter of varargs method %s must be an array", m.Name)
		}
	}
	if m.HasModifier(Abstract) && !m.Code.IsEmpty() {
		return declarationErrorf("abstract method %s cannot have code", m.Name)
	}
	for _, p := range m.Parameters {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

// javadocWithParameters appends an @param tag for each documented
// parameter.
func (m *MethodSpec) javadocWithParameters() (CodeBlock, error) {
	b := m.Javadoc.ToBuilder()
	first := true
	for _, p := range m.Parameters {
		if p.Javadoc.IsEmpty() {
			continue
		}
		if first && !m.Javadoc.IsEmpty() {
			b.Add("\n")
		}
		first = false
		b.Add("@param $L $L", p.Name, p.Javadoc)
	}
	return b.Build()
}

func (m *MethodSpec) emit(cw *CodeWriter, enclosingName string, implicit []Modifier) {
	javadoc, err := m.javadocWithParameters()
	if err != nil {
		cw.fail(errors.Wrapf(err, "javadoc of %s", m.Name))
		return
	}
	cw.emitJavadoc(javadoc)
	cw.emitAnnotations(m.Annotations, false)
	cw.emitModifiers(m.Modifiers, implicit)

	if len(m.TypeVariables) > 0 {
		cw.emitTypeVariables(m.TypeVariables)
		cw.emit(" ")
	}

	if m.IsConstructor() {
		cw.emit("$L($Z", enclosingName)
	} else {
		cw.emit("$T $L($Z", m.ReturnType, m.Name)
	}

	for i, p := range m.Parameters {
		if i > 0 {
			cw.emit(",")
			cw.emitWrappingSpace()
		}
		p.emit(cw, i == len(m.Parameters)-1 && m.Varargs)
	}
	cw.emit(")")

	if !m.DefaultValue.IsEmpty() {
		cw.emit(" default ")
		cw.emitCode(m.DefaultValue, false)
	}

	if len(m.Exceptions) > 0 {
		cw.emitWrappingSpace()
		cw.emit("throws")
		for i, exception := range m.Exceptions {
			if i > 0 {
				cw.emit(",")
			}
			cw.emitWrappingSpace()
			cw.emit("$T", exception)
		}
	}

	switch {
	case m.HasModifier(Abstract):
		cw.emit(";\n")
	case m.HasModifier(Native):
		cw.emitCode(m.Code, false)
		cw.emit(";\n")
	default:
		cw.emit(" {\n")
		cw.indentBy(1)
		cw.emitCode(m.Code, true)
		cw.unindentBy(1)
		cw.emit("}\n")
	}
	cw.popTypeVariables(m.TypeVariables)
}

func (m *MethodSpec) String() string { return renderString(m) }
