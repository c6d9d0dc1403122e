package java

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BestGuess splits a canonical name into its package and class names. The
// package is the run of leading segments that start with a lowercase
// letter; every segment after it must start with an uppercase letter.
// BestGuess("java.util.Map.Entry") is Entry nested in java.util.Map.
func BestGuess(canonicalName string) (*ClassName, error) {
	parts := strings.Split(canonicalName, ".")

	i := 0
	for i < len(parts) && startsLower(parts[i]) {
		i++
	}
	if i == len(parts) {
		return nil, typeErrorf("couldn't make a guess for %s", canonicalName)
	}
	packageName := strings.Join(parts[:i], ".")

	var c *ClassName
	for _, simpleName := range parts[i:] {
		if !startsUpper(simpleName) || !IsIdentifier(simpleName) {
			return nil, typeErrorf("couldn't make a guess for %s", canonicalName)
		}
		if c == nil {
			c = NewClassName(packageName, simpleName)
		} else {
			c = c.NestedClass(simpleName)
		}
	}
	return c, nil
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// ParseTypeName parses a type as written in source, such as "int[]",
// "java.util.Map<java.lang.String, ? extends T>" or
// "java.util.Map.Entry<K, V>[]". Names listed in typeVariables parse as type
// variables; every other class name goes through BestGuess.
func ParseTypeName(expr string, typeVariables ...string) (TypeName, error) {
	p := &typeParser{expr: expr, typeVariables: typeVariables}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	return t, nil
}

// MustParseTypeName is like ParseTypeName but panics on error.
func MustParseTypeName(expr string, typeVariables ...string) TypeName {
	t, err := ParseTypeName(expr, typeVariables...)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	expr          string
	pos           int
	tok           string
	typeVariables []string
}

// next reads the next token: an identifier or one of < > , ? [ ] . and
// "" at the end.
func (p *typeParser) next() {
	for p.pos < len(p.expr) && p.expr[p.pos] == ' ' {
		p.pos++
	}
	if p.pos >= len(p.expr) {
		p.tok = ""
		return
	}
	switch p.expr[p.pos] {
	case '<', '>', ',', '?', '[', ']', '.':
		p.tok = p.expr[p.pos : p.pos+1]
		p.pos++
		return
	}
	start := p.pos
	for p.pos < len(p.expr) {
		r, size := utf8.DecodeRuneInString(p.expr[p.pos:])
		if !isJavaIdentifierPart(r) {
			break
		}
		p.pos += size
	}
	if start == p.pos {
		r, size := utf8.DecodeRuneInString(p.expr[p.pos:])
		p.pos += size
		p.tok = string(r)
		return
	}
	p.tok = p.expr[start:p.pos]
}

func (p *typeParser) errorf(format string, args ...any) error {
	return typeErrorf("cannot parse type %q: "+format, append([]any{p.expr}, args...)...)
}

func (p *typeParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q at end", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *typeParser) identifier() (string, error) {
	if p.tok == "" || !IsIdentifier(p.tok) {
		return "", p.errorf("expected a name, found %q", p.tok)
	}
	name := p.tok
	p.next()
	return name, nil
}

func (p *typeParser) parseType() (TypeName, error) {
	t, err := p.parseComponent()
	if err != nil {
		return nil, err
	}
	for p.tok == "[" {
		p.next()
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		t = ArrayOf(t)
	}
	return t, nil
}

func (p *typeParser) parseComponent() (TypeName, error) {
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	segments := []string{name}
	for p.tok == "." {
		p.next()
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		segments = append(segments, name)
	}

	if len(segments) == 1 {
		if k, ok := Keyword(segments[0]); ok {
			return k, nil
		}
		for _, v := range p.typeVariables {
			if v == segments[0] {
				return TypeVariable(v), nil
			}
		}
	}

	raw, err := BestGuess(strings.Join(segments, "."))
	if err != nil {
		return nil, err
	}
	if p.tok != "<" {
		return raw, nil
	}

	args, err := p.parseTypeArguments()
	if err != nil {
		return nil, err
	}
	pt, err := NewParameterizedTypeName(raw, args...)
	if err != nil {
		return nil, err
	}
	// Outer<X>.Inner<Y>
	for p.tok == "." {
		p.next()
		name, err := p.identifier()
		if err != nil {
			return nil, err
		}
		var args []TypeName
		if p.tok == "<" {
			if args, err = p.parseTypeArguments(); err != nil {
				return nil, err
			}
		}
		if pt, err = pt.NestedClass(name, args...); err != nil {
			return nil, err
		}
	}
	return pt, nil
}

func (p *typeParser) parseTypeArguments() ([]TypeName, error) {
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	var args []TypeName
	for {
		arg, err := p.parseTypeArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *typeParser) parseTypeArgument() (TypeName, error) {
	if p.tok != "?" {
		return p.parseType()
	}
	p.next()
	switch p.tok {
	case "extends":
		p.next()
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return SubtypeOf(bound)
	case "super":
		p.next()
		bound, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return SupertypeOf(bound)
	}
	return Unbounded(), nil
}
