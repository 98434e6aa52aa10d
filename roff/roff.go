package roff

import "github.com/bjaus/semdoc/internal/monoid"

// Font selects the typeface used for a span of text.
type Font int

const (
	Current    Font = iota // whatever font is active, no escape emitted
	Roman                  // \fR
	Bold                   // \fB
	Italic                 // \fI
	BoldItalic             // \f(BI
	Mono                   // \f(CR, regular in terminal output
	MonoBold               // \f(CB, bold in terminal output
	MonoItalic             // \f(CI, italic in terminal output
)

// RestoreFont returns to the previously selected font.
const RestoreFont = "\\fP"

// Escape returns the escape sequence selecting f, or "" for [Current].
func (f Font) Escape() string {
	switch f {
	case Roman:
		return "\\fR"
	case Bold:
		return "\\fB"
	case Italic:
		return "\\fI"
	case BoldItalic:
		return "\\f(BI"
	case Mono:
		return "\\f(CR"
	case MonoBold:
		return "\\f(CB"
	case MonoItalic:
		return "\\f(CI"
	default:
		return ""
	}
}

// Span is a piece of text rendered in a single font.
type Span struct {
	Font Font
	Text string
}

// Roff is a ROFF document built from control lines and escaped text.
// The zero value is an empty document.
type Roff struct {
	payload monoid.Buffer[Class]
	strip   bool
}

// New returns an empty document.
func New() *Roff { return &Roff{} }

// StripNewlines sets whether newlines in text added later are replaced by
// spaces. Control line arguments never keep newlines.
func (r *Roff) StripNewlines(on bool) *Roff {
	r.strip = on
	return r
}

// Stripping reports the current newline stripping mode.
func (r *Roff) Stripping() bool { return r.strip }

// Len returns the size of the textual payload in bytes. Rendered output
// includes control sequences and escapes and is usually bigger.
func (r *Roff) Len() int { return r.payload.Len() }

// IsEmpty reports whether nothing was added.
func (r *Roff) IsEmpty() bool { return r.payload.IsEmpty() }

// Clear removes all content.
func (r *Roff) Clear() { r.payload.Clear() }

// Control inserts a control line. name must not include the leading dot.
// An empty argument is written as "" so the following ones keep their
// position.
//
//	r.Control("SH", "NAME") // .SH NAME
func (r *Roff) Control(name string, args ...string) *Roff {
	r.payload.Push(UnescapedAtNewline, ".")
	r.payload.Push(Unescaped, name)
	for _, arg := range args {
		r.payload.Push(Unescaped, " ")
		if arg == "" {
			r.payload.Push(Unescaped, `""`)
			continue
		}
		r.payload.Push(Spaces, arg)
	}
	r.payload.Push(UnescapedAtNewline, "")
	return r
}

// Linebreak ends the current source line. It has no visible effect on the
// formatted output.
func (r *Roff) Linebreak() *Roff {
	r.payload.Push(UnescapedAtNewline, "")
	return r
}

// Comment inserts a comment line.
func (r *Roff) Comment(text string) *Roff {
	r.payload.Push(UnescapedAtNewline, ".\\\" ").Push(SpecialNoNewline, text)
	return r
}

// Escape inserts a raw escape sequence such as "\\fB" without any checks.
func (r *Roff) Escape(seq string) *Roff {
	r.payload.Push(Unescaped, seq)
	return r
}

// Plaintext inserts text with special characters escaped.
func (r *Roff) Plaintext(text string) *Roff {
	if r.strip {
		r.payload.Push(SpecialNoNewline, text)
	} else {
		r.payload.Push(Special, text)
	}
	return r
}

// Text inserts spans switching fonts as needed. Consecutive spans in the
// same font share one font escape; a single [RestoreFont] closes the run.
func (r *Roff) Text(spans ...Span) *Roff {
	var prev Font
	switched := false
	for _, s := range spans {
		if (switched && s.Font == prev) || s.Font == Current {
			r.Plaintext(s.Text)
			continue
		}
		r.Escape(s.Font.Escape()).Plaintext(s.Text)
		prev = s.Font
		switched = true
	}
	if switched {
		r.Escape(RestoreFont)
	}
	return r
}

// Append copies other's content onto r and takes over its newline mode.
func (r *Roff) Append(other *Roff) *Roff {
	r.payload.Append(&other.payload)
	r.strip = other.strip
	return r
}

// Render returns the document as ROFF source.
func (r *Roff) Render(ap Apostrophes) string {
	return render(&r.payload, ap)
}
