package java

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CodeBlock is a compiled template: a fragment of code with placeholders
// already bound to their arguments. The zero value is an empty block.
//
// Templates use '$' directives:
//
//	$L  a literal: nested declarations and code blocks render themselves,
//	    anything else is formatted with fmt
//	$N  a name: a string or the name of a declaration
//	$S  a string, written as a quoted Java literal (nil writes null)
//	$T  a TypeName, abbreviated where the writer can import it
//	$$  a dollar sign
//	$>  increase the indentation level
//	$<  decrease the indentation level
//	$[  begin a statement, continuation lines get a double indent
//	$]  end a statement
//	$W  a space, or a newline if the line is too long
//	$Z  nothing, or a newline if the line is too long
//
// Arguments are taken in order ($T), by 1-based index ($2T) or by name
// ($name:T). Relative and indexed references cannot be mixed.
type CodeBlock struct {
	segments []segment
}

// segment is literal text (kind 0) or a directive. Argument directives carry
// their normalized argument.
type segment struct {
	kind byte
	text string
	arg  any
}

var (
	namedArgumentPattern = regexp.MustCompile(`^\$([\w_]+):(\w)`)
	lowercasePattern     = regexp.MustCompile(`^[a-z]+[\w_]*$`)
)

func isNoArgPlaceholder(c byte) bool {
	switch c {
	case '$', '>', '<', '[', ']', 'W', 'Z':
		return true
	}
	return false
}

// NewCode compiles format with positional arguments.
func NewCode(format string, args ...any) (CodeBlock, error) {
	segments, err := compilePositional(format, args)
	if err != nil {
		return CodeBlock{}, err
	}
	return CodeBlock{segments: segments}, nil
}

// MustCode is like NewCode but panics if the template is invalid.
func MustCode(format string, args ...any) CodeBlock {
	cb, err := NewCode(format, args...)
	if err != nil {
		panic(err)
	}
	return cb
}

// NewNamedCode compiles format with named arguments. Names must start with
// a lowercase letter.
func NewNamedCode(format string, args map[string]any) (CodeBlock, error) {
	segments, err := compileNamed(format, args)
	if err != nil {
		return CodeBlock{}, err
	}
	return CodeBlock{segments: segments}, nil
}

// IsEmpty reports whether the block has no segments.
func (cb CodeBlock) IsEmpty() bool { return len(cb.segments) == 0 }

// ToBuilder returns a builder that starts with the contents of cb.
func (cb CodeBlock) ToBuilder() *CodeBuilder {
	b := &CodeBuilder{}
	b.segments = append(b.segments, cb.segments...)
	return b
}

// Render writes cb through a writer with no imports.
func (cb CodeBlock) Render() (string, error) {
	var sb strings.Builder
	cw := NewCodeWriter(&sb, WriterOptions{})
	if err := cw.Render(cb, false); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// String renders cb. It panics if the block cannot be rendered, for
// example because its statement brackets do not balance; use Render to get
// the error instead.
func (cb CodeBlock) String() string {
	s, err := cb.Render()
	if err != nil {
		panic(err)
	}
	return s
}

// JoinCode concatenates blocks with separator between them. The separator
// is itself a template without arguments.
func JoinCode(blocks []CodeBlock, separator string) (CodeBlock, error) {
	sep, err := NewCode(separator)
	if err != nil {
		return CodeBlock{}, err
	}
	b := &CodeBuilder{}
	for i, cb := range blocks {
		if i > 0 {
			b.AddCode(sep)
		}
		b.AddCode(cb)
	}
	return b.Build()
}

// CodeBuilder assembles a CodeBlock from several templates. The first error
// sticks: later calls are ignored and Build returns it.
type CodeBuilder struct {
	segments []segment
	err      error
}

func NewCodeBuilder() *CodeBuilder {
	return &CodeBuilder{}
}

// Add appends format compiled with positional arguments.
func (b *CodeBuilder) Add(format string, args ...any) *CodeBuilder {
	if b.err != nil {
		return b
	}
	segments, err := compilePositional(format, args)
	if err != nil {
		b.err = err
		return b
	}
	b.segments = append(b.segments, segments...)
	return b
}

// AddNamed appends format compiled with named arguments.
func (b *CodeBuilder) AddNamed(format string, args map[string]any) *CodeBuilder {
	if b.err != nil {
		return b
	}
	segments, err := compileNamed(format, args)
	if err != nil {
		b.err = err
		return b
	}
	b.segments = append(b.segments, segments...)
	return b
}

// AddCode appends a compiled block.
func (b *CodeBuilder) AddCode(cb CodeBlock) *CodeBuilder {
	if b.err != nil {
		return b
	}
	b.segments = append(b.segments, cb.segments...)
	return b
}

// AddStatement appends format as a statement: it is bracketed with $[ and
// $] and terminated with ";\n".
func (b *CodeBuilder) AddStatement(format string, args ...any) *CodeBuilder {
	return b.Add("$[").Add(format, args...).Add(";\n$]")
}

func (b *CodeBuilder) AddStatementCode(cb CodeBlock) *CodeBuilder {
	return b.AddStatement("$L", cb)
}

// BeginControlFlow opens a block such as "if (x)": it appends " {\n" and
// indents.
func (b *CodeBuilder) BeginControlFlow(controlFlow string, args ...any) *CodeBuilder {
	return b.Add(controlFlow+" {\n", args...).Indent()
}

// NextControlFlow closes the current block and opens the next one, as in
// "} else {".
func (b *CodeBuilder) NextControlFlow(controlFlow string, args ...any) *CodeBuilder {
	return b.Unindent().Add("} "+controlFlow+" {\n", args...).Indent()
}

func (b *CodeBuilder) EndControlFlow() *CodeBuilder {
	return b.Unindent().Add("}\n")
}

// EndControlFlowWith closes a block that ends in a clause, such as a
// do-while loop.
func (b *CodeBuilder) EndControlFlowWith(controlFlow string, args ...any) *CodeBuilder {
	return b.Unindent().Add("} "+controlFlow+";\n", args...)
}

func (b *CodeBuilder) Indent() *CodeBuilder {
	if b.err == nil {
		b.segments = append(b.segments, segment{kind: '>'})
	}
	return b
}

func (b *CodeBuilder) Unindent() *CodeBuilder {
	if b.err == nil {
		b.segments = append(b.segments, segment{kind: '<'})
	}
	return b
}

// IsEmpty reports whether nothing has been added yet.
func (b *CodeBuilder) IsEmpty() bool { return len(b.segments) == 0 }

func (b *CodeBuilder) Err() error { return b.err }

// Build returns the assembled block, or the first error.
func (b *CodeBuilder) Build() (CodeBlock, error) {
	if b.err != nil {
		return CodeBlock{}, b.err
	}
	segments := make([]segment, len(b.segments))
	copy(segments, b.segments)
	return CodeBlock{segments: segments}, nil
}

func compilePositional(format string, args []any) ([]segment, error) {
	var segments []segment
	hasRelative, hasIndexed := false, false
	relativeCount := 0
	indexedCount := make([]int, len(args))

	for p := 0; p < len(format); {
		if format[p] != '$' {
			next := strings.IndexByte(format[p+1:], '$')
			if next == -1 {
				next = len(format)
			} else {
				next += p + 1
			}
			segments = append(segments, segment{text: format[p:next]})
			p = next
			continue
		}

		p++ // '$'

		// Digits first, then the directive character.
		indexStart := p
		var c byte
		for {
			if p >= len(format) {
				return nil, templateErrorf("dangling format characters in '%s'", format)
			}
			c = format[p]
			p++
			if c < '0' || c > '9' {
				break
			}
		}
		indexEnd := p - 1

		if isNoArgPlaceholder(c) {
			if indexStart != indexEnd {
				return nil, templateErrorf("$$, $>, $<, $[, $], $W, and $Z may not have an index")
			}
			segments = append(segments, segment{kind: c})
			continue
		}

		var index int
		if indexStart < indexEnd {
			n, err := strconv.Atoi(format[indexStart:indexEnd])
			if err != nil {
				n = 0
			}
			index = n - 1
			hasIndexed = true
			if index >= 0 && index < len(args) {
				indexedCount[index]++
			}
		} else {
			index = relativeCount
			hasRelative = true
			relativeCount++
		}

		if index < 0 || index >= len(args) {
			return nil, templateErrorf("index %d for '%s' not in range (received %d arguments)",
				index+1, format[indexStart-1:indexEnd+1], len(args))
		}
		if hasIndexed && hasRelative {
			return nil, templateErrorf("cannot mix indexed and positional parameters")
		}

		seg, err := argumentSegment(format, c, args[index])
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if hasRelative && relativeCount < len(args) {
		return nil, templateErrorf("unused arguments: expected %d, received %d", relativeCount, len(args))
	}
	if hasIndexed {
		var unused []string
		for i, n := range indexedCount {
			if n == 0 {
				unused = append(unused, "$"+strconv.Itoa(i+1))
			}
		}
		if len(unused) == 1 {
			return nil, templateErrorf("unused argument: %s", unused[0])
		}
		if len(unused) > 1 {
			return nil, templateErrorf("unused arguments: %s", strings.Join(unused, ", "))
		}
	}
	return segments, nil
}

func compileNamed(format string, args map[string]any) ([]segment, error) {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !lowercasePattern.MatchString(name) {
			return nil, templateErrorf("argument '%s' must start with a lowercase character", name)
		}
	}

	var segments []segment
	for p := 0; p < len(format); {
		next := strings.IndexByte(format[p:], '$')
		if next == -1 {
			segments = append(segments, segment{text: format[p:]})
			break
		}
		next += p
		if p != next {
			segments = append(segments, segment{text: format[p:next]})
			p = next
		}

		var match []string
		var end int
		if colon := strings.IndexByte(format[p:], ':'); colon != -1 {
			end = min(p+colon+2, len(format))
			match = namedArgumentPattern.FindStringSubmatch(format[p:end])
		}
		if match != nil {
			name, c := match[1], match[2][0]
			arg, ok := args[name]
			if !ok {
				return nil, templateErrorf("Missing named argument for $%s", name)
			}
			seg, err := argumentSegment(format, c, arg)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			p = end
			continue
		}

		if p >= len(format)-1 {
			return nil, templateErrorf("dangling $ at end")
		}
		c := format[p+1]
		if !isNoArgPlaceholder(c) {
			return nil, templateErrorf("unknown format $%c at %d in '%s'", c, p+1, format)
		}
		segments = append(segments, segment{kind: c})
		p += 2
	}
	return segments, nil
}

func argumentSegment(format string, c byte, arg any) (segment, error) {
	switch c {
	case 'N':
		name, err := argToName(arg)
		if err != nil {
			return segment{}, err
		}
		return segment{kind: 'N', arg: name}, nil
	case 'L':
		return segment{kind: 'L', arg: arg}, nil
	case 'S':
		return segment{kind: 'S', arg: argToString(arg)}, nil
	case 'T':
		t, ok := arg.(TypeName)
		if !ok {
			return segment{}, templateErrorf("expected type but was %v", arg)
		}
		if isNilType(t) {
			return segment{}, templateErrorf("expected type but was <nil>")
		}
		return segment{kind: 'T', arg: t}, nil
	}
	return segment{}, templateErrorf("invalid format string: '%s'", format)
}

func argToName(arg any) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case *ParameterSpec:
		return v.Name, nil
	case *FieldSpec:
		return v.Name, nil
	case *MethodSpec:
		return v.Name, nil
	case *TypeSpec:
		return v.Name, nil
	}
	return "", templateErrorf("expected name but was %v", arg)
}

// argToString keeps nil so the writer can emit the null literal.
func argToString(arg any) any {
	switch v := arg.(type) {
	case nil:
		return nil
	case string:
		return v
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(arg)
}
