package semdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bjaus/semdoc/roff"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNotImplemented    = errors.New("not implemented")
	ErrMissingHeader     = errors.New("missing man page header")
)

// Format represents an output format.
type Format string

const (
	Markdown Format = "markdown"
	Man      Format = "man"
	Roff     Format = "roff"
)

var formats = []Format{Markdown, Man, Roff}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// --- Options ---

// Option configures [Write] and [Marshal].
type Option func(*options)

type options struct {
	title       string
	section     ManSection
	extra       []string
	header      bool
	apostrophes roff.Apostrophes
}

// WithHeader sets the .TH header used by the [Man] format. See
// [NewManpage] for the meaning of the arguments.
func WithHeader(title string, section ManSection, extra ...string) Option {
	return func(o *options) {
		o.title = title
		o.section = section
		o.extra = extra
		o.header = true
	}
}

// WithApostrophes sets apostrophe handling for the [Man] and [Roff]
// formats. Default: [roff.Handle].
func WithApostrophes(ap roff.Apostrophes) Option {
	return func(o *options) { o.apostrophes = ap }
}

// Write renders d in format f and writes it to w.
func Write(w io.Writer, f Format, d *Doc, opts ...Option) error {
	o := options{apostrophes: roff.Handle}
	for _, opt := range opts {
		opt(&o)
	}
	var out string
	switch f {
	case Markdown:
		out = d.RenderMarkdown()
	case Man:
		if !o.header {
			return fmt.Errorf("%w: format %q requires WithHeader", ErrMissingHeader, Man)
		}
		page := NewManpage(o.title, o.section, o.extra...)
		if err := d.WriteRoff(page.Raw()); err != nil {
			return err
		}
		out = page.Raw().Render(o.apostrophes)
	case Roff:
		var err error
		if out, err = d.RenderRoff(o.apostrophes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	_, err := io.WriteString(w, out)
	return err
}

// Marshal renders d in format f and returns the bytes.
func Marshal(f Format, d *Doc, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, d, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
