package java

import "strings"

// ClassName is a fully qualified class or interface name. Nested classes
// keep a link to their enclosing class.
type ClassName struct {
	packageName string
	enclosing   *ClassName
	simpleName  string
	canonical   string
	annotations []*Annotation
}

// NewClassName returns the class simpleName in packageName, nested inside
// each of nested in order. NewClassName("java.util", "Map", "Entry") is
// java.util.Map.Entry.
func NewClassName(packageName, simpleName string, nested ...string) *ClassName {
	c := newClassName(packageName, nil, simpleName)
	for _, name := range nested {
		c = c.NestedClass(name)
	}
	return c
}

func newClassName(packageName string, enclosing *ClassName, simpleName string) *ClassName {
	var canonical string
	switch {
	case enclosing != nil:
		canonical = enclosing.canonical + "." + simpleName
	case packageName == "":
		canonical = simpleName
	default:
		canonical = packageName + "." + simpleName
	}
	return &ClassName{
		packageName: packageName,
		enclosing:   enclosing,
		simpleName:  simpleName,
		canonical:   canonical,
	}
}

// PackageName returns the package, or "" for the default package.
func (c *ClassName) PackageName() string { return c.packageName }

// EnclosingClassName returns the class enclosing c, or nil for a top-level
// class.
func (c *ClassName) EnclosingClassName() *ClassName { return c.enclosing }

// TopLevelClassName walks the enclosing chain up to the outermost class.
func (c *ClassName) TopLevelClassName() *ClassName {
	if c.enclosing != nil {
		return c.enclosing.TopLevelClassName()
	}
	return c
}

func (c *ClassName) SimpleName() string    { return c.simpleName }
func (c *ClassName) CanonicalName() string { return c.canonical }

// SimpleNames returns the simple names from the top-level class down to c.
func (c *ClassName) SimpleNames() []string {
	var names []string
	for e := c; e != nil; e = e.enclosing {
		names = append(names, e.simpleName)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// ReflectionName is the binary name, with '$' between nested classes.
func (c *ClassName) ReflectionName() string {
	if c.enclosing != nil {
		return c.enclosing.ReflectionName() + "$" + c.simpleName
	}
	if c.packageName == "" {
		return c.simpleName
	}
	return c.packageName + "." + c.simpleName
}

// NestedClass returns the class name nested inside c.
func (c *ClassName) NestedClass(name string) *ClassName {
	return newClassName(c.packageName, c, name)
}

// PeerClass returns a class with the same enclosing class (or package) as c.
func (c *ClassName) PeerClass(name string) *ClassName {
	return newClassName(c.packageName, c.enclosing, name)
}

// enclosingClasses lists the chain from the top-level class down to c.
func (c *ClassName) enclosingClasses() []*ClassName {
	var chain []*ClassName
	for e := c; e != nil; e = e.enclosing {
		chain = append(chain, e)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (c *ClassName) Annotations() []*Annotation { return c.annotations }
func (c *ClassName) String() string             { return typeString(c) }
func (c *ClassName) isTypeName()                {}

// Annotated returns a copy of c with anns appended to its annotations.
func (c *ClassName) Annotated(anns ...*Annotation) *ClassName {
	out := *c
	out.annotations = concatAnnotations(c.annotations, anns)
	return &out
}

// WithoutAnnotations strips the annotations of c and of its enclosing
// classes.
func (c *ClassName) WithoutAnnotations() *ClassName {
	if len(c.annotations) == 0 && (c.enclosing == nil || !c.enclosing.hasAnnotations()) {
		return c
	}
	var enclosing *ClassName
	if c.enclosing != nil {
		enclosing = c.enclosing.WithoutAnnotations()
	}
	return newClassName(c.packageName, enclosing, c.simpleName)
}

func (c *ClassName) hasAnnotations() bool {
	for e := c; e != nil; e = e.enclosing {
		if len(e.annotations) > 0 {
			return true
		}
	}
	return false
}

// CompareClassNames orders class names by canonical name.
func CompareClassNames(a, b *ClassName) int {
	return strings.Compare(a.canonical, b.canonical)
}
