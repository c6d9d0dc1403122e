package java

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// DefaultColumnLimit is the line length past which wrapping spaces break.
const DefaultColumnLimit = 100

type flushKind int

const (
	flushNone flushKind = iota
	flushWrap
	flushSpace
	flushEmpty
)

// lineWrapper writes text to w, holding back the text that follows a
// wrapping space until it knows whether the line fits. Only one wrapping
// point is pending at a time.
type lineWrapper struct {
	w           io.Writer
	indent      string
	columnLimit int
	closed      bool
	err         error

	// buffer holds text written after the pending wrapping point.
	buffer strings.Builder
	// column counts runes since the last newline, buffered text included.
	column int
	// indentLevel is the number of indents written after a wrap, or -1.
	indentLevel int
	next        flushKind

	last    rune
	written int64
}

func newLineWrapper(w io.Writer, indent string, columnLimit int) *lineWrapper {
	return &lineWrapper{
		w:           w,
		indent:      indent,
		columnLimit: columnLimit,
		indentLevel: -1,
	}
}

// lastChar returns the last rune appended, or 0.
func (lw *lineWrapper) lastChar() rune {
	if lw.buffer.Len() > 0 {
		r, _ := utf8.DecodeLastRuneInString(lw.buffer.String())
		return r
	}
	return lw.last
}

// append emits s, buffering it if a wrapping point is pending.
func (lw *lineWrapper) append(s string) {
	if lw.closed {
		lw.fail(errors.AssertionFailedf("line wrapper is closed"))
		return
	}

	if lw.next != flushNone {
		nextNewline := strings.IndexByte(s, '\n')
		length := utf8.RuneCountInString(s)

		// Buffer s if the line still fits; the pending point is decided later.
		if nextNewline == -1 && lw.column+length <= lw.columnLimit {
			lw.buffer.WriteString(s)
			lw.column += length
			return
		}

		wrap := nextNewline == -1 || lw.column+utf8.RuneCountInString(s[:nextNewline]) > lw.columnLimit
		if wrap {
			lw.flush(flushWrap)
		} else {
			lw.flush(lw.next)
		}
	}

	lw.write(s)
	if lastNewline := strings.LastIndexByte(s, '\n'); lastNewline != -1 {
		lw.column = utf8.RuneCountInString(s[lastNewline+1:])
	} else {
		lw.column += utf8.RuneCountInString(s)
	}
}

// wrappingSpace emits a space, or a newline plus indentLevel indents if the
// text that follows does not fit.
func (lw *lineWrapper) wrappingSpace(indentLevel int) {
	if lw.closed {
		lw.fail(errors.AssertionFailedf("line wrapper is closed"))
		return
	}
	if lw.next != flushNone {
		lw.flush(lw.next)
	}
	lw.column++ // the space is counted now and written on flush
	lw.next = flushSpace
	lw.indentLevel = indentLevel
}

// zeroWidthSpace emits nothing, or a newline plus indentLevel indents if the
// text that follows does not fit.
func (lw *lineWrapper) zeroWidthSpace(indentLevel int) {
	if lw.closed {
		lw.fail(errors.AssertionFailedf("line wrapper is closed"))
		return
	}
	if lw.column == 0 {
		return
	}
	if lw.next != flushNone {
		lw.flush(lw.next)
	}
	lw.next = flushEmpty
	lw.indentLevel = indentLevel
}

// close flushes pending text and rejects further writes.
func (lw *lineWrapper) close() error {
	if lw.next != flushNone {
		lw.flush(lw.next)
	}
	lw.closed = true
	return lw.err
}

func (lw *lineWrapper) flush(kind flushKind) {
	switch kind {
	case flushWrap:
		lw.write("\n")
		for i := 0; i < lw.indentLevel; i++ {
			lw.write(lw.indent)
		}
		lw.column = lw.indentLevel*utf8.RuneCountInString(lw.indent) + utf8.RuneCountInString(lw.buffer.String())
	case flushSpace:
		lw.write(" ")
	case flushEmpty:
	}

	lw.write(lw.buffer.String())
	lw.buffer.Reset()
	lw.indentLevel = -1
	lw.next = flushNone
}

func (lw *lineWrapper) write(s string) {
	if s == "" || lw.err != nil {
		return
	}
	n, err := io.WriteString(lw.w, s)
	lw.written += int64(n)
	if err != nil {
		lw.fail(errors.Wrap(err, "write java source"))
		return
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	lw.last = r
}

func (lw *lineWrapper) fail(err error) {
	if lw.err == nil {
		lw.err = err
	}
}
