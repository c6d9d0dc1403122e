package java

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// WriterOptions configures a CodeWriter.
type WriterOptions struct {
	// Indent is written once per indentation level. Defaults to two spaces.
	Indent string
	// ColumnLimit is where $W and $Z break lines. Defaults to 100.
	ColumnLimit int
	// ImportedTypes maps simple names to the classes the output imports.
	ImportedTypes map[string]*ClassName
	// StaticImports are "pkg.Class.member" or "pkg.Class.*" signatures.
	StaticImports []string
	// AlwaysQualify lists simple names that are never imported or
	// abbreviated.
	AlwaysQualify []string
}

// CodeWriter renders declarations and code blocks as Java source. It
// abbreviates type names where the current scope and the imported types
// allow it, and records the imports that would let it abbreviate more.
//
// A CodeWriter renders a single declaration. File.WriteTo uses two of them:
// the first collects imports, the second writes with them.
type CodeWriter struct {
	out    *lineWrapper
	indent string

	indentLevel     int
	javadoc         bool
	comment         bool
	trailingNewline bool
	// statementLine is the line within the open statement, or -1.
	statementLine int

	packageName string
	packageSet  bool
	typeStack   []typeScope
	// typeVariables counts the active type variable names.
	typeVariables map[string]int

	importedTypes          map[string]*ClassName
	staticImports          map[string]bool
	staticImportClassNames map[string]bool
	staticImportsUsed      map[string]bool
	alwaysQualify          map[string]bool
	importableTypes        map[string]*ClassName
	referencedNames        map[string]bool

	err error
}

// typeScope is a type being emitted and the simple names of its nested
// types.
type typeScope struct {
	name   string
	nested map[string]bool
}

func NewCodeWriter(w io.Writer, opts WriterOptions) *CodeWriter {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.ColumnLimit <= 0 {
		opts.ColumnLimit = DefaultColumnLimit
	}
	cw := &CodeWriter{
		out:                    newLineWrapper(w, opts.Indent, opts.ColumnLimit),
		indent:                 opts.Indent,
		statementLine:          -1,
		typeVariables:          map[string]int{},
		importedTypes:          map[string]*ClassName{},
		staticImports:          map[string]bool{},
		staticImportClassNames: map[string]bool{},
		staticImportsUsed:      map[string]bool{},
		alwaysQualify:          map[string]bool{},
		importableTypes:        map[string]*ClassName{},
		referencedNames:        map[string]bool{},
	}
	for name, c := range opts.ImportedTypes {
		cw.importedTypes[name] = c
	}
	for _, signature := range opts.StaticImports {
		cw.staticImports[signature] = true
		if dot := strings.LastIndexByte(signature, '.'); dot != -1 {
			cw.staticImportClassNames[signature[:dot]] = true
		}
	}
	for _, name := range opts.AlwaysQualify {
		cw.alwaysQualify[name] = true
	}
	return cw
}

// Render writes decl, which is one of *File, *TypeSpec, *FieldSpec,
// *MethodSpec, *ParameterSpec, *Annotation, CodeBlock or a TypeName.
func (cw *CodeWriter) Render(decl any, ensureTrailingNewline bool) error {
	switch d := decl.(type) {
	case *File:
		d.emit(cw)
	case *TypeSpec:
		d.emit(cw, "", nil)
	case *FieldSpec:
		d.emit(cw, nil)
	case *MethodSpec:
		d.emit(cw, "Constructor", nil)
	case *ParameterSpec:
		d.emit(cw, false)
	case *Annotation:
		d.emit(cw, true)
	case CodeBlock:
		cw.emitCode(d, false)
	case TypeName:
		cw.emitType(d)
	default:
		cw.fail(errors.AssertionFailedf("cannot render %T", decl))
	}
	if ensureTrailingNewline && cw.err == nil && cw.out.lastChar() != '\n' {
		cw.emitAndIndent("\n")
	}
	if err := cw.out.close(); err != nil {
		cw.fail(err)
	}
	return cw.err
}

// renderString renders decl through a fresh writer with no imports. It
// panics if rendering fails.
func renderString(decl any) string {
	var sb strings.Builder
	if err := NewCodeWriter(&sb, WriterOptions{}).Render(decl, false); err != nil {
		panic(err)
	}
	return sb.String()
}

// SuggestedImports returns the classes that could be imported: the import
// candidates seen so far, minus the names already visible in the package.
func (cw *CodeWriter) SuggestedImports() map[string]*ClassName {
	out := make(map[string]*ClassName, len(cw.importableTypes))
	for name, c := range cw.importableTypes {
		if cw.referencedNames[name] {
			continue
		}
		out[name] = c
	}
	return out
}

// ImportedTypes returns the imports the writer was configured with.
func (cw *CodeWriter) ImportedTypes() map[string]*ClassName {
	return cw.importedTypes
}

// StaticImportsUsed returns the static import signatures that replaced a
// type reference, sorted.
func (cw *CodeWriter) StaticImportsUsed() []string {
	used := make([]string, 0, len(cw.staticImportsUsed))
	for signature := range cw.staticImportsUsed {
		used = append(used, signature)
	}
	sort.Strings(used)
	return used
}

func (cw *CodeWriter) fail(err error) {
	if cw.err == nil {
		cw.err = err
	}
}

func (cw *CodeWriter) pushPackage(name string) {
	if cw.packageSet {
		cw.fail(errors.AssertionFailedf("package already set: %s", cw.packageName))
		return
	}
	cw.packageName = name
	cw.packageSet = true
}

func (cw *CodeWriter) popPackage() {
	if !cw.packageSet {
		cw.fail(errors.AssertionFailedf("package not set"))
		return
	}
	cw.packageName = ""
	cw.packageSet = false
}

func (cw *CodeWriter) pushType(scope typeScope) {
	cw.typeStack = append(cw.typeStack, scope)
}

func (cw *CodeWriter) popType() {
	if len(cw.typeStack) == 0 {
		cw.fail(errors.AssertionFailedf("type stack is empty"))
		return
	}
	cw.typeStack = cw.typeStack[:len(cw.typeStack)-1]
}

func (cw *CodeWriter) indentBy(levels int) {
	cw.indentLevel += levels
}

func (cw *CodeWriter) unindentBy(levels int) {
	if cw.indentLevel-levels < 0 {
		cw.fail(errors.AssertionFailedf("cannot unindent %d from %d", levels, cw.indentLevel))
		return
	}
	cw.indentLevel -= levels
}

// emit compiles format and writes it. Templates passed here are fixed
// strings, so a compile error is a fault in this package.
func (cw *CodeWriter) emit(format string, args ...any) {
	if cw.err != nil {
		return
	}
	segments, err := compilePositional(format, args)
	if err != nil {
		cw.fail(errors.NewAssertionErrorWithWrappedErrf(err, "emit %q", format))
		return
	}
	cw.emitCode(CodeBlock{segments: segments}, false)
}

func (cw *CodeWriter) emitCode(cb CodeBlock, ensureTrailingNewline bool) {
	var deferred deferredType
	for i, seg := range cb.segments {
		if cw.err != nil {
			return
		}
		switch seg.kind {
		case 'L':
			cw.emitLiteral(seg.arg)
		case 'N':
			cw.emitAndIndent(seg.arg.(string))
		case 'S':
			if seg.arg == nil {
				cw.emitAndIndent("null")
			} else {
				cw.emitAndIndent(stringLiteralWithDoubleQuotes(seg.arg.(string), cw.indent))
			}
		case 'T':
			t := seg.arg.(TypeName)
			// A class followed by ".member" may be a static import.
			if c, ok := t.(*ClassName); ok && i+1 < len(cb.segments) && cb.segments[i+1].kind == 0 {
				if cw.staticImportClassNames[c.CanonicalName()] {
					deferred.class = c
					continue
				}
			}
			cw.emitType(t)
		case '$':
			cw.emitAndIndent("$")
		case '>':
			cw.indentBy(1)
		case '<':
			cw.unindentBy(1)
		case '[':
			if cw.statementLine != -1 {
				cw.fail(stateErrorf("statement enter $[ followed by statement enter $["))
				return
			}
			cw.statementLine = 0
		case ']':
			if cw.statementLine == -1 {
				cw.fail(stateErrorf("statement exit $] has no matching statement enter $["))
				return
			}
			if cw.statementLine > 0 {
				cw.unindentBy(2)
			}
			cw.statementLine = -1
		case 'W':
			cw.out.wrappingSpace(cw.indentLevel + 2)
		case 'Z':
			cw.out.zeroWidthSpace(cw.indentLevel + 2)
		default:
			if deferred.pending() {
				if deferred.resolve(cw, seg.text) {
					continue
				}
				deferred.flush(cw)
			}
			cw.emitAndIndent(seg.text)
		}
	}
	if ensureTrailingNewline && cw.err == nil && cw.out.lastChar() != '\n' {
		cw.emitAndIndent("\n")
	}
}

// deferredType holds a class written by $T until the text after it shows
// whether it is the qualifier of a statically imported member. It leaves the
// pending state either by resolve, which writes only the member, or by
// flush, which writes the class.
type deferredType struct {
	class *ClassName
}

func (d *deferredType) pending() bool { return d.class != nil }

func (d *deferredType) resolve(cw *CodeWriter, part string) bool {
	if !strings.HasPrefix(part, ".") {
		return false
	}
	member := part[1:]
	name := extractMemberName(member)
	if name == "" {
		return false
	}
	canonical := d.class.CanonicalName()
	explicit := canonical + "." + name
	wildcard := canonical + ".*"
	switch {
	case cw.staticImports[explicit]:
		cw.staticImportsUsed[explicit] = true
	case cw.staticImports[wildcard]:
		cw.staticImportsUsed[wildcard] = true
	default:
		return false
	}
	cw.emitAndIndent(member)
	d.class = nil
	return true
}

func (d *deferredType) flush(cw *CodeWriter) {
	cw.emitType(d.class)
	d.class = nil
}

// extractMemberName returns the identifier at the start of part, or "".
func extractMemberName(part string) string {
	for i, r := range part {
		if i == 0 && !isJavaIdentifierStart(r) {
			return ""
		}
		if i > 0 && !isJavaIdentifierPart(r) {
			return part[:i]
		}
	}
	return part
}

func (cw *CodeWriter) emitLiteral(o any) {
	switch v := o.(type) {
	case *TypeSpec:
		v.emit(cw, "", nil)
	case *Annotation:
		v.emit(cw, true)
	case CodeBlock:
		cw.emitCode(v, false)
	case nil:
		cw.emitAndIndent("null")
	case fmt.Stringer:
		cw.emitAndIndent(v.String())
	default:
		cw.emitAndIndent(fmt.Sprint(v))
	}
}

// emitComment writes cb as // line comments.
func (cw *CodeWriter) emitComment(cb CodeBlock) {
	cw.trailingNewline = true
	cw.comment = true
	cw.emitCode(cb, false)
	cw.emitAndIndent("\n")
	cw.comment = false
}

func (cw *CodeWriter) emitJavadoc(cb CodeBlock) {
	if cb.IsEmpty() {
		return
	}
	cw.emit("/**\n")
	cw.javadoc = true
	cw.emitCode(cb, true)
	cw.javadoc = false
	cw.emit(" */\n")
}

func (cw *CodeWriter) emitAnnotations(annotations []*Annotation, inline bool) {
	for _, a := range annotations {
		a.emit(cw, inline)
		if inline {
			cw.emitAndIndent(" ")
		} else {
			cw.emitAndIndent("\n")
		}
	}
}

// emitModifiers writes modifiers in declaration order, skipping the
// implicit ones.
func (cw *CodeWriter) emitModifiers(modifiers, implicit []Modifier) {
	for _, m := range sortedModifiers(modifiers) {
		if hasModifier(implicit, m) {
			continue
		}
		cw.emitAndIndent(string(m))
		cw.emitAndIndent(" ")
	}
}

// emitTypeVariables writes the declaration of typeVariables and brings
// their names into scope until popTypeVariables.
func (cw *CodeWriter) emitTypeVariables(typeVariables []*TypeVariableName) {
	if len(typeVariables) == 0 {
		return
	}
	for _, v := range typeVariables {
		cw.typeVariables[v.name]++
	}
	cw.emit("<")
	for i, v := range typeVariables {
		if i > 0 {
			cw.emit(", ")
		}
		cw.emitAnnotations(v.annotations, true)
		cw.emit("$L", v.name)
		for j, bound := range v.bounds {
			if j == 0 {
				cw.emit(" extends $T", bound)
			} else {
				cw.emit(" & $T", bound)
			}
		}
	}
	cw.emit(">")
}

func (cw *CodeWriter) popTypeVariables(typeVariables []*TypeVariableName) {
	for _, v := range typeVariables {
		n := cw.typeVariables[v.name]
		if n == 0 {
			cw.fail(errors.AssertionFailedf("type variable %s is not in scope", v.name))
			return
		}
		if n == 1 {
			delete(cw.typeVariables, v.name)
		} else {
			cw.typeVariables[v.name] = n - 1
		}
	}
}

func (cw *CodeWriter) emitWrappingSpace() {
	cw.out.wrappingSpace(cw.indentLevel + 2)
}

// lookupName returns the shortest name that refers to c from the current
// scope, registering c as an import candidate when only the canonical name
// works.
func (cw *CodeWriter) lookupName(c *ClassName) string {
	top := c.TopLevelClassName().SimpleName()
	if cw.typeVariables[top] > 0 {
		return c.CanonicalName()
	}

	// Shortest suffix that resolves to c: Entry inside Map is Map.Entry.
	nameResolved := false
	for e := c; e != nil; e = e.enclosing {
		resolved := cw.resolve(e.simpleName)
		nameResolved = resolved != nil
		if resolved != nil && resolved.CanonicalName() == e.CanonicalName() {
			names := c.SimpleNames()
			offset := len(e.SimpleNames()) - 1
			return strings.Join(names[offset:], ".")
		}
	}

	// Resolved to something else: only the canonical name is unambiguous.
	if nameResolved {
		return c.CanonicalName()
	}

	if c.PackageName() == cw.packageName && !cw.alwaysQualify[top] {
		cw.referencedNames[top] = true
		return strings.Join(c.SimpleNames(), ".")
	}

	if !cw.javadoc {
		cw.importableType(c)
	}
	return c.CanonicalName()
}

func (cw *CodeWriter) importableType(c *ClassName) {
	if c.PackageName() == "" {
		return
	}
	// TODO: nested classes are checked by their own simple name, so
	// Map.Entry still imports Map when Map is always qualified.
	if cw.alwaysQualify[c.SimpleName()] {
		return
	}
	top := c.TopLevelClassName().WithoutAnnotations()
	if _, taken := cw.importableTypes[top.SimpleName()]; taken {
		return
	}
	cw.importableTypes[top.SimpleName()] = top
}

// resolve finds the class the simple name refers to: a type nested in one of
// the enclosing types, the top-level type, or an imported type.
func (cw *CodeWriter) resolve(simpleName string) *ClassName {
	for i := len(cw.typeStack) - 1; i >= 0; i-- {
		if cw.typeStack[i].nested[simpleName] {
			return cw.stackClassName(i, simpleName)
		}
	}
	if len(cw.typeStack) > 0 && cw.typeStack[0].name == simpleName {
		return NewClassName(cw.packageName, simpleName)
	}
	if imported, ok := cw.importedTypes[simpleName]; ok {
		return imported
	}
	return nil
}

func (cw *CodeWriter) stackClassName(depth int, simpleName string) *ClassName {
	c := NewClassName(cw.packageName, cw.typeStack[0].name)
	for i := 1; i <= depth; i++ {
		c = c.NestedClass(cw.typeStack[i].name)
	}
	return c.NestedClass(simpleName)
}

// emitAndIndent writes s, indenting each new line and keeping javadoc and
// comment prefixes. Empty lines are not indented.
func (cw *CodeWriter) emitAndIndent(s string) {
	if cw.err != nil {
		return
	}
	for i, line := range splitLines(s) {
		if i > 0 {
			if (cw.javadoc || cw.comment) && cw.trailingNewline {
				cw.emitIndentation()
				if cw.javadoc {
					cw.out.append(" *")
				} else {
					cw.out.append("//")
				}
			}
			cw.out.append("\n")
			cw.trailingNewline = true
			if cw.statementLine != -1 {
				if cw.statementLine == 0 {
					cw.indentBy(2) // continuation lines of a statement
				}
				cw.statementLine++
			}
		}

		if line == "" {
			continue
		}

		if cw.trailingNewline {
			cw.emitIndentation()
			if cw.javadoc {
				cw.out.append(" * ")
			} else if cw.comment {
				cw.out.append("// ")
			}
		}
		cw.out.append(line)
		cw.trailingNewline = false
	}
}

func (cw *CodeWriter) emitIndentation() {
	for i := 0; i < cw.indentLevel; i++ {
		cw.out.append(cw.indent)
	}
}

// splitLines splits s at \r\n, \n and \r.
func splitLines(s string) []string {
	if !strings.ContainsAny(s, "\r\n") {
		return []string{s}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// emitType writes t, abbreviating class names through lookupName.
func (cw *CodeWriter) emitType(t TypeName) {
	if cw.err != nil {
		return
	}
	switch t := t.(type) {
	case *KeywordType:
		cw.emitTypeAnnotations(t.annotations)
		cw.emitAndIndent(t.keyword)
	case *ClassName:
		cw.emitClassName(t)
	case *ParameterizedTypeName:
		cw.emitParameterized(t)
	case *ArrayTypeName:
		cw.emitArray(t, false)
	case *WildcardTypeName:
		cw.emitTypeAnnotations(t.annotations)
		switch {
		case t.lower != nil:
			cw.emit("? super $T", t.lower)
		case TypeNamesEqual(t.upper, Object):
			cw.emit("?")
		default:
			cw.emit("? extends $T", t.upper)
		}
	case *TypeVariableName:
		cw.emitTypeAnnotations(t.annotations)
		cw.emitAndIndent(t.name)
	default:
		cw.fail(errors.AssertionFailedf("unexpected type %T", t))
	}
}

func (cw *CodeWriter) emitTypeAnnotations(annotations []*Annotation) {
	for _, a := range annotations {
		a.emit(cw, true)
		cw.emitAndIndent(" ")
	}
}

// emitClassName writes the shortest prefix of c that the scope needs, then
// the remaining simple names with their annotations.
func (cw *CodeWriter) emitClassName(c *ClassName) {
	charsEmitted := false
	for _, e := range c.enclosingClasses() {
		var simpleName string
		switch {
		case charsEmitted:
			cw.emitAndIndent(".")
			simpleName = e.simpleName
		case len(e.annotations) > 0 || e == c:
			qualified := cw.lookupName(e)
			if dot := strings.LastIndexByte(qualified, '.'); dot != -1 {
				cw.emitAndIndent(qualified[:dot+1])
				simpleName = qualified[dot+1:]
				charsEmitted = true
			} else {
				simpleName = qualified
			}
		default:
			continue
		}

		if len(e.annotations) > 0 {
			if charsEmitted {
				cw.emitAndIndent(" ")
			}
			cw.emitTypeAnnotations(e.annotations)
		}
		cw.emitAndIndent(simpleName)
		charsEmitted = true
	}
}

func (cw *CodeWriter) emitParameterized(p *ParameterizedTypeName) {
	if p.enclosing != nil {
		cw.emitParameterized(p.enclosing)
		cw.emitAndIndent(".")
		if len(p.annotations) > 0 {
			cw.emitAndIndent(" ")
			cw.emitTypeAnnotations(p.annotations)
		}
		cw.emitAndIndent(p.rawType.simpleName)
	} else if len(p.annotations) > 0 {
		cw.emitClassName(p.rawType.Annotated(p.annotations...))
	} else {
		cw.emitClassName(p.rawType)
	}
	if len(p.typeArguments) == 0 {
		return
	}
	cw.emitAndIndent("<")
	for i, arg := range p.typeArguments {
		if i > 0 {
			cw.emitAndIndent(", ")
		}
		cw.emitType(arg)
	}
	cw.emitAndIndent(">")
}

// emitArray writes the innermost component, then one pair of brackets per
// dimension. The last pair becomes "..." for a varargs parameter.
func (cw *CodeWriter) emitArray(a *ArrayTypeName, varargs bool) {
	leaf := a.component
	for {
		inner, ok := leaf.(*ArrayTypeName)
		if !ok {
			break
		}
		leaf = inner.component
	}
	cw.emitType(leaf)

	for dim := a; dim != nil; {
		if len(dim.annotations) > 0 {
			cw.emitAndIndent(" ")
			cw.emitTypeAnnotations(dim.annotations)
		}
		inner, ok := dim.component.(*ArrayTypeName)
		if !ok {
			if varargs {
				cw.emitAndIndent("...")
			} else {
				cw.emitAndIndent("[]")
			}
			return
		}
		cw.emitAndIndent("[]")
		dim = inner
	}
}

// stringLiteralWithDoubleQuotes quotes value as a Java string literal. A
// multi-line value becomes a concatenation with one line per operand.
func stringLiteralWithDoubleQuotes(value, indent string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	runes := []rune(value)
	for i, r := range runes {
		switch r {
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteString(characterLiteralWithoutSingleQuotes(r))
		}
		if r == '\n' && i+1 < len(runes) {
			sb.WriteString("\"\n")
			sb.WriteString(indent)
			sb.WriteString(indent)
			sb.WriteString("+ \"")
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func characterLiteralWithoutSingleQuotes(r rune) string {
	switch r {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '"':
		return `"`
	case '\'':
		return `\'`
	case '\\':
		return `\\`
	}
	if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return string(r)
}
