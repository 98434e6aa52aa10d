package roff

import (
	"strings"

	"github.com/bjaus/semdoc/internal/monoid"
)

// Class selects how a fragment of text is escaped on output.
type Class int

const (
	// Unescaped text is copied to the output as is.
	Unescaped Class = iota
	// UnescapedAtNewline is copied as is, starting on a fresh line.
	UnescapedAtNewline
	// Special text is visible to the reader: backslashes, dashes and
	// leading control characters are escaped, newlines are kept.
	Special
	// SpecialNoNewline is escaped like Special with newlines turned into
	// spaces.
	SpecialNoNewline
	// Spaces is used for control line arguments: on top of Special
	// escaping, spaces and newlines become non-breaking spaces so the
	// argument is not split.
	Spaces
)

// Apostrophes controls apostrophe handling in rendered documents.
type Apostrophes int

const (
	// Handle emits a preamble defining the portable \*(Aq string and
	// substitutes it for apostrophes in control line arguments.
	Handle Apostrophes = iota
	// DontHandle keeps apostrophes verbatim and emits no preamble.
	DontHandle
)

// ApostrophePreamble defines \*(Aq as a straight apostrophe for groff and
// other formatters.
const ApostrophePreamble = ".ie \\n(.g .ds Aq \\(aq\n.el .ds Aq '\n"

type escaper struct {
	sb          *strings.Builder
	ap          Apostrophes
	atLineStart bool
}

func newEscaper(sb *strings.Builder, ap Apostrophes) *escaper {
	return &escaper{sb: sb, ap: ap, atLineStart: true}
}

func (e *escaper) raw(s string) {
	if s == "" {
		return
	}
	e.sb.WriteString(s)
	e.atLineStart = s[len(s)-1] == '\n'
}

func (e *escaper) write(class Class, s string) {
	switch class {
	case Unescaped:
		e.raw(s)
	case UnescapedAtNewline:
		if !e.atLineStart {
			e.raw("\n")
		}
		e.raw(s)
	case Special, SpecialNoNewline, Spaces:
		e.special(class, s)
	}
}

// Escaped characters are all ASCII; other bytes, including invalid UTF-8,
// are copied through.
func (e *escaper) special(class Class, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if e.atLineStart && (c == '.' || c == '\'' || c == ' ') {
			e.sb.WriteString("\\&")
		}
		e.atLineStart = false
		switch c {
		case '\\':
			e.sb.WriteString("\\\\")
		case '-':
			e.sb.WriteString("\\-")
		case '\n':
			switch class {
			case Special:
				e.sb.WriteByte('\n')
				e.atLineStart = true
			case SpecialNoNewline:
				e.sb.WriteByte(' ')
			default:
				e.sb.WriteString("\\ ")
			}
		case ' ':
			if class == Spaces {
				e.sb.WriteString("\\ ")
			} else {
				e.sb.WriteByte(' ')
			}
		case '\'':
			if class == Spaces && e.ap == Handle {
				e.sb.WriteString("\\*(Aq")
			} else {
				e.sb.WriteByte('\'')
			}
		default:
			e.sb.WriteByte(c)
		}
	}
}

// EscapeString escapes a single fragment as if it started a new line.
func EscapeString(class Class, s string, ap Apostrophes) string {
	var sb strings.Builder
	newEscaper(&sb, ap).write(class, s)
	return sb.String()
}

func render(payload *monoid.Buffer[Class], ap Apostrophes) string {
	var sb strings.Builder
	sb.Grow(payload.Len() * 2)
	if ap == Handle {
		sb.WriteString(ApostrophePreamble)
	}
	e := newEscaper(&sb, ap)
	for class, text := range payload.All() {
		e.write(class, text)
	}
	return sb.String()
}
