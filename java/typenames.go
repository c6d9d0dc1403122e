package java

// ParameterizedTypeName is a generic class with type arguments, such as
// List<String>. For Outer<X>.Inner<Y> the enclosing type is Outer<X>.
type ParameterizedTypeName struct {
	enclosing     *ParameterizedTypeName
	rawType       *ClassName
	typeArguments []TypeName
	annotations   []*Annotation
}

// NewParameterizedTypeName returns rawType applied to typeArguments.
func NewParameterizedTypeName(rawType *ClassName, typeArguments ...TypeName) (*ParameterizedTypeName, error) {
	return newParameterizedTypeName(nil, rawType, typeArguments, nil)
}

// MustParameterized is like NewParameterizedTypeName but panics on invalid
// input. It is meant for package-level values and tests.
func MustParameterized(rawType *ClassName, typeArguments ...TypeName) *ParameterizedTypeName {
	p, err := NewParameterizedTypeName(rawType, typeArguments...)
	if err != nil {
		panic(err)
	}
	return p
}

func newParameterizedTypeName(enclosing *ParameterizedTypeName, rawType *ClassName, typeArguments []TypeName, annotations []*Annotation) (*ParameterizedTypeName, error) {
	if isNilType(rawType) {
		return nil, typeErrorf("rawType == nil")
	}
	if len(typeArguments) == 0 && enclosing == nil {
		return nil, typeErrorf("no type arguments: %s", rawType.CanonicalName())
	}
	for _, arg := range typeArguments {
		if isNilType(arg) || IsPrimitive(arg) || isVoid(arg) {
			return nil, typeErrorf("invalid type parameter: %v", arg)
		}
	}
	args := make([]TypeName, len(typeArguments))
	copy(args, typeArguments)
	return &ParameterizedTypeName{
		enclosing:     enclosing,
		rawType:       rawType,
		typeArguments: args,
		annotations:   annotations,
	}, nil
}

// NestedClass returns a parameterized type nested inside p, for example
// Outer<X>.Inner<Y>. Inner may have no type arguments of its own.
func (p *ParameterizedTypeName) NestedClass(name string, typeArguments ...TypeName) (*ParameterizedTypeName, error) {
	return newParameterizedTypeName(p, p.rawType.NestedClass(name), typeArguments, nil)
}

func (p *ParameterizedTypeName) RawType() *ClassName                   { return p.rawType }
func (p *ParameterizedTypeName) EnclosingType() *ParameterizedTypeName { return p.enclosing }
func (p *ParameterizedTypeName) TypeArguments() []TypeName             { return p.typeArguments }
func (p *ParameterizedTypeName) Annotations() []*Annotation            { return p.annotations }
func (p *ParameterizedTypeName) String() string                        { return typeString(p) }
func (p *ParameterizedTypeName) isTypeName()                           {}

func (p *ParameterizedTypeName) Annotated(anns ...*Annotation) *ParameterizedTypeName {
	out := *p
	out.annotations = concatAnnotations(p.annotations, anns)
	return &out
}

func (p *ParameterizedTypeName) WithoutAnnotations() *ParameterizedTypeName {
	out := *p
	out.annotations = nil
	return &out
}

// ArrayTypeName is an array of a component type.
type ArrayTypeName struct {
	component   TypeName
	annotations []*Annotation
}

func ArrayOf(component TypeName) *ArrayTypeName {
	return &ArrayTypeName{component: component}
}

func (a *ArrayTypeName) ComponentType() TypeName    { return a.component }
func (a *ArrayTypeName) Annotations() []*Annotation { return a.annotations }
func (a *ArrayTypeName) String() string             { return typeString(a) }
func (a *ArrayTypeName) isTypeName()                {}

func (a *ArrayTypeName) Annotated(anns ...*Annotation) *ArrayTypeName {
	return &ArrayTypeName{component: a.component, annotations: concatAnnotations(a.annotations, anns)}
}

func (a *ArrayTypeName) WithoutAnnotations() *ArrayTypeName {
	return &ArrayTypeName{component: a.component}
}

// WildcardTypeName is a wildcard type argument. It has exactly one upper
// bound, or a lower bound and the implicit Object upper bound.
type WildcardTypeName struct {
	upper       TypeName
	lower       TypeName
	annotations []*Annotation
}

// Unbounded returns the wildcard "?".
func Unbounded() *WildcardTypeName {
	return &WildcardTypeName{upper: Object}
}

// SubtypeOf returns "? extends upper".
func SubtypeOf(upper TypeName) (*WildcardTypeName, error) {
	if err := checkBound(upper); err != nil {
		return nil, err
	}
	return &WildcardTypeName{upper: upper}, nil
}

// SupertypeOf returns "? super lower".
func SupertypeOf(lower TypeName) (*WildcardTypeName, error) {
	if err := checkBound(lower); err != nil {
		return nil, err
	}
	return &WildcardTypeName{upper: Object, lower: lower}, nil
}

func checkBound(t TypeName) error {
	if isNilType(t) {
		return typeErrorf("invalid wildcard bound: <nil>")
	}
	if IsPrimitive(t) || isVoid(t) {
		return typeErrorf("invalid wildcard bound: %v", t)
	}
	return nil
}

// UpperBound is Object unless the wildcard was built with SubtypeOf.
func (w *WildcardTypeName) UpperBound() TypeName { return w.upper }

// LowerBound reports the super bound, if any.
func (w *WildcardTypeName) LowerBound() (TypeName, bool) { return w.lower, w.lower != nil }

func (w *WildcardTypeName) Annotations() []*Annotation { return w.annotations }
func (w *WildcardTypeName) String() string             { return typeString(w) }
func (w *WildcardTypeName) isTypeName()                {}

func (w *WildcardTypeName) Annotated(anns ...*Annotation) *WildcardTypeName {
	out := *w
	out.annotations = concatAnnotations(w.annotations, anns)
	return &out
}

func (w *WildcardTypeName) WithoutAnnotations() *WildcardTypeName {
	out := *w
	out.annotations = nil
	return &out
}

// TypeVariableName is a type variable such as T, with optional bounds.
// Bounds are only written where the variable is declared.
type TypeVariableName struct {
	name        string
	bounds      []TypeName
	annotations []*Annotation
}

// NewTypeVariable returns the variable name bounded by bounds. Object bounds
// are dropped since they are implicit.
func NewTypeVariable(name string, bounds ...TypeName) (*TypeVariableName, error) {
	var kept []TypeName
	for _, b := range bounds {
		if isNilType(b) {
			return nil, typeErrorf("invalid bound for %s: <nil>", name)
		}
		if IsPrimitive(b) || isVoid(b) {
			return nil, typeErrorf("invalid bound for %s: %v", name, b)
		}
		if TypeNamesEqual(b, Object) {
			continue
		}
		kept = append(kept, b)
	}
	return &TypeVariableName{name: name, bounds: kept}, nil
}

// TypeVariable returns an unbounded type variable.
func TypeVariable(name string) *TypeVariableName {
	return &TypeVariableName{name: name}
}

func (v *TypeVariableName) Name() string               { return v.name }
func (v *TypeVariableName) Bounds() []TypeName         { return v.bounds }
func (v *TypeVariableName) Annotations() []*Annotation { return v.annotations }
func (v *TypeVariableName) String() string             { return typeString(v) }
func (v *TypeVariableName) isTypeName()                {}

// WithBounds returns a copy of v with bounds appended.
func (v *TypeVariableName) WithBounds(bounds ...TypeName) (*TypeVariableName, error) {
	nv, err := NewTypeVariable(v.name, append(append([]TypeName{}, v.bounds...), bounds...)...)
	if err != nil {
		return nil, err
	}
	nv.annotations = v.annotations
	return nv, nil
}

func (v *TypeVariableName) Annotated(anns ...*Annotation) *TypeVariableName {
	out := *v
	out.annotations = concatAnnotations(v.annotations, anns)
	return &out
}

func (v *TypeVariableName) WithoutAnnotations() *TypeVariableName {
	out := *v
	out.annotations = nil
	return &out
}
