package declfile

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/javapoet/java"
)

// Build converts the document into a file.
func (d *Document) Build() (*java.File, error) {
	b := &builder{}
	t, err := b.typeSpec(&d.Type)
	if err != nil {
		return nil, err
	}
	f := java.NewFile(d.Package, t)
	f.SkipJavaLangImports = d.SkipJavaLangImports
	f.Indent = d.Indent
	f.ColumnLimit = d.ColumnLimit
	f.StaticImports = d.StaticImports
	if d.Comment != nil {
		if f.Comment, err = b.code(d.Comment); err != nil {
			return nil, errors.Wrap(err, "file comment")
		}
	}
	return f, nil
}

// builder tracks the type variables in scope, so that "T" in a type
// expression is a variable and not a class.
type builder struct {
	typeVariables []string
}

func (b *builder) withTypeVariables(decls []TypeVariableDecl) (restore func()) {
	saved := b.typeVariables
	b.typeVariables = slices.Clone(saved)
	for _, v := range decls {
		b.typeVariables = append(b.typeVariables, v.Name)
	}
	return func() { b.typeVariables = saved }
}

func (b *builder) typeName(expr string) (java.TypeName, error) {
	return java.ParseTypeName(expr, b.typeVariables...)
}

func (b *builder) className(expr string) (*java.ClassName, error) {
	return java.BestGuess(expr)
}

func (b *builder) typeVariableNames(decls []TypeVariableDecl) ([]*java.TypeVariableName, error) {
	var vars []*java.TypeVariableName
	for _, decl := range decls {
		var bounds []java.TypeName
		for _, expr := range decl.Bounds {
			bound, err := b.typeName(expr)
			if err != nil {
				return nil, errors.Wrapf(err, "bound of %s", decl.Name)
			}
			bounds = append(bounds, bound)
		}
		v, err := java.NewTypeVariable(decl.Name, bounds...)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func modifiers(names []string) ([]java.Modifier, error) {
	var mods []java.Modifier
	for _, name := range names {
		m, ok := java.ParseModifier(name)
		if !ok {
			return nil, errors.Newf("unknown modifier %q", name)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

func kind(name string) (java.TypeKind, error) {
	switch java.TypeKind(name) {
	case "", java.KindClass:
		return java.KindClass, nil
	case java.KindInterface, java.KindEnum, java.KindAnnotation:
		return java.TypeKind(name), nil
	}
	return "", errors.Newf("unknown kind %q", name)
}

func (b *builder) typeSpec(d *TypeDecl) (*java.TypeSpec, error) {
	t, err := b.typeHeader(d)
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", d.Name)
	}
	restore := b.withTypeVariables(d.TypeVariables)
	defer restore()
	if err := b.typeBody(t, d); err != nil {
		return nil, errors.Wrapf(err, "type %s", d.Name)
	}
	return t, nil
}

func (b *builder) typeHeader(d *TypeDecl) (*java.TypeSpec, error) {
	k, err := kind(d.Kind)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	t := &java.TypeSpec{
		Kind:          k,
		Name:          d.Name,
		Modifiers:     mods,
		AlwaysQualify: d.AlwaysQualify,
	}
	if d.Args != nil {
		args, err := b.code(d.Args)
		if err != nil {
			return nil, errors.Wrap(err, "anonymous class arguments")
		}
		t.AnonymousArgs = &args
	}

	restore := b.withTypeVariables(d.TypeVariables)
	defer restore()
	if t.TypeVariables, err = b.typeVariableNames(d.TypeVariables); err != nil {
		return nil, err
	}
	if d.Superclass != "" {
		if t.Superclass, err = b.typeName(d.Superclass); err != nil {
			return nil, errors.Wrap(err, "superclass")
		}
	}
	for _, expr := range d.Superinterfaces {
		st, err := b.typeName(expr)
		if err != nil {
			return nil, errors.Wrap(err, "superinterface")
		}
		t.Superinterfaces = append(t.Superinterfaces, st)
	}
	if d.Javadoc != nil {
		if t.Javadoc, err = b.code(d.Javadoc); err != nil {
			return nil, errors.Wrap(err, "javadoc")
		}
	}
	if t.Annotations, err = b.annotations(d.Annotations); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *builder) typeBody(t *java.TypeSpec, d *TypeDecl) error {
	var err error
	for _, c := range d.EnumConstants {
		body, err := b.enumConstantBody(&c)
		if err != nil {
			return errors.Wrapf(err, "enum constant %s", c.Name)
		}
		t.AddEnumConstant(c.Name, body)
	}
	for _, fd := range d.Fields {
		f, err := b.field(&fd)
		if err != nil {
			return err
		}
		t.AddField(f)
	}
	if d.StaticBlock != nil {
		if t.StaticBlock, err = b.code(d.StaticBlock); err != nil {
			return errors.Wrap(err, "static block")
		}
	}
	if d.Initializer != nil {
		if t.InitializerBlock, err = b.code(d.Initializer); err != nil {
			return errors.Wrap(err, "initializer block")
		}
	}
	for _, md := range d.Methods {
		m, err := b.method(&md)
		if err != nil {
			return err
		}
		t.AddMethod(m)
	}
	for _, nd := range d.Types {
		nested, err := b.typeSpec(&nd)
		if err != nil {
			return err
		}
		t.AddType(nested)
	}
	return nil
}

// enumConstantBody returns nil for a constant that is just a name.
func (b *builder) enumConstantBody(d *EnumConstantDecl) (*java.TypeSpec, error) {
	if d.Args == nil && d.Javadoc == nil && len(d.Fields) == 0 && len(d.Methods) == 0 {
		return nil, nil
	}
	body := &java.TypeSpec{Kind: java.KindClass}
	var err error
	if d.Args != nil {
		args, err := b.code(d.Args)
		if err != nil {
			return nil, errors.Wrap(err, "arguments")
		}
		body.AnonymousArgs = &args
	} else {
		empty := java.CodeBlock{}
		body.AnonymousArgs = &empty
	}
	if d.Javadoc != nil {
		if body.Javadoc, err = b.code(d.Javadoc); err != nil {
			return nil, errors.Wrap(err, "javadoc")
		}
	}
	for _, fd := range d.Fields {
		f, err := b.field(&fd)
		if err != nil {
			return nil, err
		}
		body.AddField(f)
	}
	for _, md := range d.Methods {
		m, err := b.method(&md)
		if err != nil {
			return nil, err
		}
		body.AddMethod(m)
	}
	return body, nil
}

func (b *builder) field(d *FieldDecl) (*java.FieldSpec, error) {
	t, err := b.typeName(d.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s type", d.Name)
	}
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", d.Name)
	}
	f := java.NewField(t, d.Name, mods...)
	if d.Javadoc != nil {
		if f.Javadoc, err = b.code(d.Javadoc); err != nil {
			return nil, errors.Wrapf(err, "field %s javadoc", d.Name)
		}
	}
	if f.Annotations, err = b.annotations(d.Annotations); err != nil {
		return nil, errors.Wrapf(err, "field %s", d.Name)
	}
	if d.Initializer != nil {
		if f.Initializer, err = b.code(d.Initializer); err != nil {
			return nil, errors.Wrapf(err, "field %s initializer", d.Name)
		}
	}
	return f, nil
}

func (b *builder) method(d *MethodDecl) (*java.MethodSpec, error) {
	restore := b.withTypeVariables(d.TypeVariables)
	defer restore()

	name := d.Name
	var m *java.MethodSpec
	if name == "" {
		m = java.NewConstructor()
		name = "constructor"
	} else {
		m = java.NewMethod(name)
		if d.Returns != "" {
			returns, err := b.typeName(d.Returns)
			if err != nil {
				return nil, errors.Wrapf(err, "method %s return type", name)
			}
			m.ReturnType = returns
		}
	}

	var err error
	if m.Modifiers, err = modifiers(d.Modifiers); err != nil {
		return nil, errors.Wrapf(err, "method %s", name)
	}
	if m.TypeVariables, err = b.typeVariableNames(d.TypeVariables); err != nil {
		return nil, errors.Wrapf(err, "method %s", name)
	}
	if d.Javadoc != nil {
		if m.Javadoc, err = b.code(d.Javadoc); err != nil {
			return nil, errors.Wrapf(err, "method %s javadoc", name)
		}
	}
	if m.Annotations, err = b.annotations(d.Annotations); err != nil {
		return nil, errors.Wrapf(err, "method %s", name)
	}
	for _, pd := range d.Parameters {
		p, err := b.parameter(&pd)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", name)
		}
		m.Parameters = append(m.Parameters, p)
	}
	m.Varargs = d.Varargs
	for _, expr := range d.Exceptions {
		exception, err := b.typeName(expr)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s exception", name)
		}
		m.Exceptions = append(m.Exceptions, exception)
	}

	body := &Code{Statements: d.Statements}
	if d.Code != nil {
		body.Format = d.Code.Format
		body.Args = d.Code.Args
		body.Named = d.Code.Named
		body.Statements = append(slices.Clone(d.Code.Statements), d.Statements...)
	}
	if m.Code, err = b.code(body); err != nil {
		return nil, errors.Wrapf(err, "method %s code", name)
	}
	if d.Default != nil {
		if m.DefaultValue, err = b.code(d.Default); err != nil {
			return nil, errors.Wrapf(err, "method %s default", name)
		}
	}
	return m, nil
}

func (b *builder) parameter(d *ParameterDecl) (*java.ParameterSpec, error) {
	t, err := b.typeName(d.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %s type", d.Name)
	}
	p := java.NewParameter(t, d.Name)
	if d.Final {
		p.Modifiers = []java.Modifier{java.Final}
	}
	if d.Javadoc != nil {
		if p.Javadoc, err = b.code(d.Javadoc); err != nil {
			return nil, errors.Wrapf(err, "parameter %s javadoc", d.Name)
		}
	}
	if p.Annotations, err = b.annotations(d.Annotations); err != nil {
		return nil, errors.Wrapf(err, "parameter %s", d.Name)
	}
	return p, nil
}

func (b *builder) annotations(decls []AnnotationDecl) ([]*java.Annotation, error) {
	var out []*java.Annotation
	for _, d := range decls {
		t, err := b.className(d.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %s", d.Type)
		}
		a := java.NewAnnotation(t)
		for _, m := range d.Members {
			member := java.AnnotationMember{Name: m.Name}
			for _, v := range m.Values {
				cb, err := b.code(&v)
				if err != nil {
					return nil, errors.Wrapf(err, "annotation %s member %s", d.Type, m.Name)
				}
				member.Values = append(member.Values, cb)
			}
			a.Members = append(a.Members, member)
		}
		out = append(out, a)
	}
	return out, nil
}

// code compiles c: its format first, then each statement.
func (b *builder) code(c *Code) (java.CodeBlock, error) {
	cb := java.NewCodeBuilder()
	if c.Format != "" {
		if err := b.addTemplate(cb, c); err != nil {
			return java.CodeBlock{}, err
		}
	}
	for i := range c.Statements {
		s := &c.Statements[i]
		if len(s.Statements) > 0 {
			return java.CodeBlock{}, errors.Newf("statement %q cannot hold statements", s.Format)
		}
		cb.Add("$[")
		if err := b.addTemplate(cb, s); err != nil {
			return java.CodeBlock{}, errors.Wrapf(err, "statement %d", i+1)
		}
		cb.Add(";\n$]")
	}
	return cb.Build()
}

func (b *builder) addTemplate(cb *java.CodeBuilder, c *Code) error {
	if len(c.Named) > 0 {
		if len(c.Args) > 0 {
			return errors.Newf("template %q has both args and named args", c.Format)
		}
		named := make(map[string]any, len(c.Named))
		for name, arg := range c.Named {
			v, err := b.arg(arg)
			if err != nil {
				return errors.Wrapf(err, "argument %s", name)
			}
			named[name] = v
		}
		cb.AddNamed(c.Format, named)
		return cb.Err()
	}
	args := make([]any, 0, len(c.Args))
	for i, arg := range c.Args {
		v, err := b.arg(arg)
		if err != nil {
			return errors.Wrapf(err, "argument %d", i+1)
		}
		args = append(args, v)
	}
	cb.Add(c.Format, args...)
	return cb.Err()
}

func (b *builder) arg(a Arg) (any, error) {
	set := 0
	var v any
	if a.Type != nil {
		t, err := b.typeName(*a.Type)
		if err != nil {
			return nil, err
		}
		v, set = t, set+1
	}
	if a.String != nil {
		v, set = *a.String, set+1
	}
	if a.Name != nil {
		v, set = *a.Name, set+1
	}
	if a.Literal != nil {
		v, set = a.Literal, set+1
	}
	if a.Code != nil {
		cb, err := b.code(a.Code)
		if err != nil {
			return nil, err
		}
		v, set = cb, set+1
	}
	if a.Null {
		v, set = nil, set+1
	}
	if set != 1 {
		return nil, errors.Newf("argument needs exactly one of type, string, name, literal, code or nil")
	}
	return v, nil
}
