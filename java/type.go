package java

// TypeName is a reference to a Java type: a keyword type, a class, a
// parameterized class, an array, a wildcard or a type variable.
//
// The set of implementations is closed. Two type names are equal when they
// render to the same text, see TypeNamesEqual.
type TypeName interface {
	// Annotations returns the type annotations attached to this reference.
	Annotations() []*Annotation
	// String renders the type with fully qualified names.
	String() string

	isTypeName()
}

// KeywordType is a primitive type or void.
type KeywordType struct {
	keyword     string
	annotations []*Annotation
}

var (
	Void    = &KeywordType{keyword: "void"}
	Boolean = &KeywordType{keyword: "boolean"}
	Byte    = &KeywordType{keyword: "byte"}
	Short   = &KeywordType{keyword: "short"}
	Int     = &KeywordType{keyword: "int"}
	Long    = &KeywordType{keyword: "long"}
	Char    = &KeywordType{keyword: "char"}
	Float   = &KeywordType{keyword: "float"}
	Double  = &KeywordType{keyword: "double"}
)

var keywordTypes = map[string]*KeywordType{
	"void":    Void,
	"boolean": Boolean,
	"byte":    Byte,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"char":    Char,
	"float":   Float,
	"double":  Double,
}

// Object is java.lang.Object, the implicit superclass and wildcard bound.
var Object = NewClassName("java.lang", "Object")

var (
	boxedBoolean   = NewClassName("java.lang", "Boolean")
	boxedByte      = NewClassName("java.lang", "Byte")
	boxedShort     = NewClassName("java.lang", "Short")
	boxedInteger   = NewClassName("java.lang", "Integer")
	boxedLong      = NewClassName("java.lang", "Long")
	boxedCharacter = NewClassName("java.lang", "Character")
	boxedFloat     = NewClassName("java.lang", "Float")
	boxedDouble    = NewClassName("java.lang", "Double")
	boxedVoid      = NewClassName("java.lang", "Void")
)

// Keyword returns the keyword type named name, if there is one.
func Keyword(name string) (*KeywordType, bool) {
	k, ok := keywordTypes[name]
	return k, ok
}

func (k *KeywordType) Keyword() string            { return k.keyword }
func (k *KeywordType) Annotations() []*Annotation { return k.annotations }
func (k *KeywordType) String() string             { return typeString(k) }
func (k *KeywordType) isTypeName()                {}

// Annotated returns a copy of k with anns appended to its annotations.
func (k *KeywordType) Annotated(anns ...*Annotation) *KeywordType {
	return &KeywordType{keyword: k.keyword, annotations: concatAnnotations(k.annotations, anns)}
}

func (k *KeywordType) WithoutAnnotations() *KeywordType {
	return &KeywordType{keyword: k.keyword}
}

// TypeNamesEqual reports whether a and b denote the same type. The
// comparison uses the rendered text, which is what every emitted file sees.
func TypeNamesEqual(a, b TypeName) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Annotate returns t with anns appended to its annotations.
func Annotate(t TypeName, anns ...*Annotation) TypeName {
	switch t := t.(type) {
	case *KeywordType:
		return t.Annotated(anns...)
	case *ClassName:
		return t.Annotated(anns...)
	case *ParameterizedTypeName:
		return t.Annotated(anns...)
	case *ArrayTypeName:
		return t.Annotated(anns...)
	case *WildcardTypeName:
		return t.Annotated(anns...)
	case *TypeVariableName:
		return t.Annotated(anns...)
	}
	return t
}

// WithoutAnnotations strips the top-level annotations of t.
func WithoutAnnotations(t TypeName) TypeName {
	switch t := t.(type) {
	case *KeywordType:
		return t.WithoutAnnotations()
	case *ClassName:
		return t.WithoutAnnotations()
	case *ParameterizedTypeName:
		return t.WithoutAnnotations()
	case *ArrayTypeName:
		return t.WithoutAnnotations()
	case *WildcardTypeName:
		return t.WithoutAnnotations()
	case *TypeVariableName:
		return t.WithoutAnnotations()
	}
	return t
}

func IsAnnotated(t TypeName) bool {
	return t != nil && len(t.Annotations()) > 0
}

// IsPrimitive reports whether t is a primitive keyword type. Void is not
// primitive.
func IsPrimitive(t TypeName) bool {
	k, ok := t.(*KeywordType)
	return ok && k.keyword != "void"
}

// isNilType reports whether t is nil or a nil pointer to one of the
// variants.
func isNilType(t TypeName) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *KeywordType:
		return v == nil
	case *ClassName:
		return v == nil
	case *ParameterizedTypeName:
		return v == nil
	case *ArrayTypeName:
		return v == nil
	case *WildcardTypeName:
		return v == nil
	case *TypeVariableName:
		return v == nil
	}
	return false
}

func isVoid(t TypeName) bool {
	k, ok := t.(*KeywordType)
	return ok && k.keyword == "void"
}

// IsBoxedPrimitive reports whether t is one of the java.lang wrapper classes.
func IsBoxedPrimitive(t TypeName) bool {
	c, ok := t.(*ClassName)
	if !ok {
		return false
	}
	_, ok = unboxed(c)
	return ok && c.CanonicalName() != boxedVoid.CanonicalName()
}

// Box returns the wrapper class of a keyword type, keeping annotations.
// Other types are returned unchanged.
func Box(t TypeName) TypeName {
	k, ok := t.(*KeywordType)
	if !ok {
		return t
	}
	var boxed *ClassName
	switch k.keyword {
	case "void":
		boxed = boxedVoid
	case "boolean":
		boxed = boxedBoolean
	case "byte":
		boxed = boxedByte
	case "short":
		boxed = boxedShort
	case "int":
		boxed = boxedInteger
	case "long":
		boxed = boxedLong
	case "char":
		boxed = boxedCharacter
	case "float":
		boxed = boxedFloat
	case "double":
		boxed = boxedDouble
	}
	if len(k.annotations) > 0 {
		return boxed.Annotated(k.annotations...)
	}
	return boxed
}

// Unbox returns the keyword type of a wrapper class. It reports false when t
// is not a wrapper.
func Unbox(t TypeName) (*KeywordType, bool) {
	c, ok := t.(*ClassName)
	if !ok {
		return nil, false
	}
	k, ok := unboxed(c)
	if !ok {
		return nil, false
	}
	if len(c.annotations) > 0 {
		return k.Annotated(c.annotations...), true
	}
	return k, true
}

func unboxed(c *ClassName) (*KeywordType, bool) {
	switch c.WithoutAnnotations().CanonicalName() {
	case boxedVoid.canonical:
		return Void, true
	case boxedBoolean.canonical:
		return Boolean, true
	case boxedByte.canonical:
		return Byte, true
	case boxedShort.canonical:
		return Short, true
	case boxedInteger.canonical:
		return Int, true
	case boxedLong.canonical:
		return Long, true
	case boxedCharacter.canonical:
		return Char, true
	case boxedFloat.canonical:
		return Float, true
	case boxedDouble.canonical:
		return Double, true
	}
	return nil, false
}

func concatAnnotations(a, b []*Annotation) []*Annotation {
	out := make([]*Annotation, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// typeString renders t through a fresh writer with no imports, so the
// output is the canonical text used for equality.
func typeString(t TypeName) string { return renderString(t) }
