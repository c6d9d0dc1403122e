package java

import "slices"

// TypeSpec declares a class, interface, enum, annotation type or anonymous
// class.
type TypeSpec struct {
	Kind TypeKind
	// Name is empty for anonymous classes.
	Name string
	// AnonymousArgs are the constructor arguments of an anonymous class, or
	// of the enum constant whose body it is. Nil for named types.
	AnonymousArgs *CodeBlock

	Javadoc       CodeBlock
	Annotations   []*Annotation
	Modifiers     []Modifier
	TypeVariables []*TypeVariableName
	// Superclass is nil for Object.
	Superclass      TypeName
	Superinterfaces []TypeName
	EnumConstants   []EnumConstant
	Fields          []*FieldSpec
	// StaticBlock is the body of the static initializer.
	StaticBlock CodeBlock
	// InitializerBlock is the body of the instance initializer.
	InitializerBlock CodeBlock
	Methods          []*MethodSpec
	Types            []*TypeSpec

	// AlwaysQualify lists simple names that this type's file never imports,
	// usually because they clash with inherited nested classes.
	AlwaysQualify []string
}

// EnumConstant is a constant of an enum. Body, if set, is an anonymous class
// holding the constant's arguments and members.
type EnumConstant struct {
	Name string
	Body *TypeSpec
}

func NewClass(name string, modifiers ...Modifier) *TypeSpec {
	return &TypeSpec{Kind: KindClass, Name: name, Modifiers: modifiers}
}

func NewInterface(name string, modifiers ...Modifier) *TypeSpec {
	return &TypeSpec{Kind: KindInterface, Name: name, Modifiers: modifiers}
}

func NewEnum(name string, modifiers ...Modifier) *TypeSpec {
	return &TypeSpec{Kind: KindEnum, Name: name, Modifiers: modifiers}
}

func NewAnnotationType(name string, modifiers ...Modifier) *TypeSpec {
	return &TypeSpec{Kind: KindAnnotation, Name: name, Modifiers: modifiers}
}

// NewAnonymousClass returns an anonymous class whose constructor arguments
// are the compiled template. Set Superclass or add one superinterface before
// using it as a literal.
func NewAnonymousClass(format string, args ...any) (*TypeSpec, error) {
	cb, err := NewCode(format, args...)
	if err != nil {
		return nil, err
	}
	return &TypeSpec{Kind: KindClass, AnonymousArgs: &cb}, nil
}

func (t *TypeSpec) IsAnonymous() bool { return t.AnonymousArgs != nil }

func (t *TypeSpec) HasModifier(m Modifier) bool { return hasModifier(t.Modifiers, m) }

func (t *TypeSpec) AddField(f *FieldSpec) *TypeSpec {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *TypeSpec) AddMethod(m *MethodSpec) *TypeSpec {
	t.Methods = append(t.Methods, m)
	return t
}

func (t *TypeSpec) AddType(nested *TypeSpec) *TypeSpec {
	t.Types = append(t.Types, nested)
	return t
}

func (t *TypeSpec) AddEnumConstant(name string, body *TypeSpec) *TypeSpec {
	t.EnumConstants = append(t.EnumConstants, EnumConstant{Name: name, Body: body})
	return t
}

// nestedNames returns the simple names of the types declared inside t.
func (t *TypeSpec) nestedNames() map[string]bool {
	names := make(map[string]bool, len(t.Types))
	for _, nested := range t.Types {
		names[nested.Name] = true
	}
	return names
}

// alwaysQualifiedNames collects AlwaysQualify of t and its nested types.
func (t *TypeSpec) alwaysQualifiedNames(into []string) []string {
	into = append(into, t.AlwaysQualify...)
	for _, nested := range t.Types {
		into = nested.alwaysQualifiedNames(into)
	}
	return into
}

// Validate checks t and its members for declarations Java would reject.
func (t *TypeSpec) Validate() error {
	if t.IsAnonymous() {
		if len(t.Modifiers) > 0 || len(t.TypeVariables) > 0 {
			return declarationErrorf("modifiers and type variables are forbidden on anonymous types")
		}
		if t.Superclass != nil && len(t.Superinterfaces) > 0 {
			return declarationErrorf("anonymous type has too many supertypes")
		}
	} else if !IsValidName(t.Name) {
		return declarationErrorf("not a valid name: %s", t.Name)
	}

	if t.Superclass != nil && isNilType(t.Superclass) {
		return declarationErrorf("superclass of %s is nil", t.Name)
	}
	for _, i := range t.Superinterfaces {
		if isNilType(i) {
			return declarationErrorf("superinterface of %s is nil", t.Name)
		}
	}
	if t.Superclass != nil && t.Kind != KindClass {
		return declarationErrorf("only classes have super classes, not %s", t.Kind)
	}
	if t.Kind == KindEnum && len(t.EnumConstants) == 0 {
		return declarationErrorf("at least one enum constant is required for %s", t.Name)
	}
	if t.Kind != KindEnum && len(t.EnumConstants) > 0 {
		return declarationErrorf("%s is not enum", t.Name)
	}

	isAbstract := t.HasModifier(Abstract) || t.Kind != KindClass
	for _, f := range t.Fields {
		if err := f.validate(); err != nil {
			return err
		}
		if t.Kind == KindInterface || t.Kind == KindAnnotation {
			if f.HasModifier(Private) || f.HasModifier(Protected) {
				return declarationErrorf("%s %s.%s requires modifiers [public static final]", t.Kind, t.Name, f.Name)
			}
		}
	}
	for _, m := range t.Methods {
		if err := m.validate(); err != nil {
			return err
		}
		if m.IsConstructor() && t.Kind != KindClass && t.Kind != KindEnum {
			return declarationErrorf("%s %s cannot have constructors", t.Kind, t.Name)
		}
		if !isAbstract && m.HasModifier(Abstract) {
			return declarationErrorf("non-abstract type %s cannot declare abstract method %s", t.Name, m.Name)
		}
		switch t.Kind {
		case KindAnnotation:
			if len(m.Parameters) > 0 {
				return declarationErrorf("%s %s.%s cannot have parameters", t.Kind, t.Name, m.Name)
			}
		case KindInterface:
			if m.HasModifier(Protected) {
				return declarationErrorf("%s %s.%s cannot be protected", t.Kind, t.Name, m.Name)
			}
			if !m.HasModifier(Private) {
				n := 0
				for _, mod := range []Modifier{Abstract, Static, Default} {
					if m.HasModifier(mod) {
						n++
					}
				}
				if n != 1 {
					return declarationErrorf("%s %s.%s requires exactly one of [abstract static default]", t.Kind, t.Name, m.Name)
				}
			}
		}
		if !m.DefaultValue.IsEmpty() && t.Kind != KindAnnotation {
			return declarationErrorf("%s %s.%s cannot have a default value", t.Kind, t.Name, m.Name)
		}
	}
	for _, c := range t.EnumConstants {
		if !IsValidName(c.Name) {
			return declarationErrorf("not a valid enum constant: %s", c.Name)
		}
		if c.Body != nil {
			if err := c.Body.Validate(); err != nil {
				return err
			}
		}
	}
	for _, nested := range t.Types {
		if slices.ContainsFunc(t.Types, func(other *TypeSpec) bool {
			return other != nested && other.Name == nested.Name
		}) {
			return declarationErrorf("duplicate nested type %s in %s", nested.Name, t.Name)
		}
		if err := nested.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// emit writes t. enumName is set when t is the body of that enum constant.
func (t *TypeSpec) emit(cw *CodeWriter, enumName string, implicit []Modifier) {
	// A nested type interrupts the statement around it.
	previousStatementLine := cw.statementLine
	cw.statementLine = -1
	defer func() { cw.statementLine = previousStatementLine }()

	switch {
	case enumName != "":
		cw.emitJavadoc(t.Javadoc)
		cw.emitAnnotations(t.Annotations, false)
		cw.emit("$L", enumName)
		if t.AnonymousArgs != nil && !t.AnonymousArgs.IsEmpty() {
			cw.emit("(")
			cw.emitCode(*t.AnonymousArgs, false)
			cw.emit(")")
		}
		if len(t.Fields) == 0 && len(t.Methods) == 0 && len(t.Types) == 0 {
			return
		}
		cw.emit(" {\n")
	case t.IsAnonymous():
		supertype := t.Superclass
		if len(t.Superinterfaces) > 0 {
			supertype = t.Superinterfaces[0]
		}
		if supertype == nil {
			supertype = Object
		}
		cw.emit("new $T($L) {\n", supertype, *t.AnonymousArgs)
	default:
		// The header sees the enclosing types but not the nested ones.
		cw.pushType(typeScope{name: t.Name})

		cw.emitJavadoc(t.Javadoc)
		cw.emitAnnotations(t.Annotations, false)
		cw.emitModifiers(t.Modifiers, append(slices.Clone(implicit), t.Kind.asMemberModifiers()...))
		cw.emit("$L $L", t.Kind.keyword(), t.Name)
		cw.emitTypeVariables(t.TypeVariables)

		var extendsTypes, implementsTypes []TypeName
		if t.Kind == KindInterface {
			extendsTypes = t.Superinterfaces
		} else {
			if t.Superclass != nil && !TypeNamesEqual(t.Superclass, Object) {
				extendsTypes = []TypeName{t.Superclass}
			}
			implementsTypes = t.Superinterfaces
		}
		if len(extendsTypes) > 0 {
			cw.emit(" extends")
			for i, st := range extendsTypes {
				if i > 0 {
					cw.emit(",")
				}
				cw.emit(" $T", st)
			}
		}
		if len(implementsTypes) > 0 {
			cw.emit(" implements")
			for i, st := range implementsTypes {
				if i > 0 {
					cw.emit(",")
				}
				cw.emit(" $T", st)
			}
		}

		cw.popType()
		cw.emit(" {\n")
	}

	cw.pushType(typeScope{name: t.Name, nested: t.nestedNames()})
	cw.indentBy(1)
	firstMember := true
	needsSeparator := t.Kind == KindEnum && (len(t.Fields) > 0 || len(t.Methods) > 0 || len(t.Types) > 0)
	for i, c := range t.EnumConstants {
		if !firstMember {
			cw.emit("\n")
		}
		body := c.Body
		if body == nil {
			body = &TypeSpec{Kind: KindClass}
		}
		body.emit(cw, c.Name, nil)
		firstMember = false
		if i+1 < len(t.EnumConstants) {
			cw.emit(",\n")
		} else if !needsSeparator {
			cw.emit("\n")
		}
	}
	if needsSeparator {
		cw.emit(";\n")
	}

	for _, f := range t.Fields {
		if !f.HasModifier(Static) {
			continue
		}
		if !firstMember {
			cw.emit("\n")
		}
		f.emit(cw, t.Kind.implicitFieldModifiers())
		firstMember = false
	}

	if !t.StaticBlock.IsEmpty() {
		if !firstMember {
			cw.emit("\n")
		}
		cw.emit("static {\n$>")
		cw.emitCode(t.StaticBlock, true)
		cw.emit("$<}\n")
		firstMember = false
	}

	for _, f := range t.Fields {
		if f.HasModifier(Static) {
			continue
		}
		if !firstMember {
			cw.emit("\n")
		}
		f.emit(cw, t.Kind.implicitFieldModifiers())
		firstMember = false
	}

	if !t.InitializerBlock.IsEmpty() {
		if !firstMember {
			cw.emit("\n")
		}
		cw.emit("{\n$>")
		cw.emitCode(t.InitializerBlock, true)
		cw.emit("$<}\n")
		firstMember = false
	}

	for _, m := range t.Methods {
		if !m.IsConstructor() {
			continue
		}
		if !firstMember {
			cw.emit("\n")
		}
		m.emit(cw, t.Name, t.Kind.implicitMethodModifiers())
		firstMember = false
	}

	for _, m := range t.Methods {
		if m.IsConstructor() {
			continue
		}
		if !firstMember {
			cw.emit("\n")
		}
		m.emit(cw, t.Name, t.Kind.implicitMethodModifiers())
		firstMember = false
	}

	for _, nested := range t.Types {
		if !firstMember {
			cw.emit("\n")
		}
		nested.emit(cw, "", t.Kind.implicitTypeModifiers())
		firstMember = false
	}

	cw.unindentBy(1)
	cw.popType()
	cw.popTypeVariables(t.TypeVariables)

	cw.emit("}")
	if enumName == "" && !t.IsAnonymous() {
		cw.emit("\n") // a declaration, not a value
	}
}

func (t *TypeSpec) String() string { return renderString(t) }
