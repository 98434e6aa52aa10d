package semdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bjaus/semdoc/roff"
)

var manFonts = [...]roff.Font{
	StyleLiteral:   roff.Bold,
	StyleMetavar:   roff.Italic,
	StyleMono:      roff.Mono,
	StyleText:      roff.Roman,
	StyleImportant: roff.BoldItalic,
}

// Font returns the ROFF font used for s. Unknown styles keep the current
// font.
func (s Style) Font() roff.Font {
	if s < 0 || int(s) >= len(manFonts) {
		return roff.Current
	}
	return manFonts[s]
}

type listKind int

const (
	listDefinition listKind = iota
	listOrdered
	listUnordered
)

type manList struct {
	kind  listKind
	count int
}

type manWriter struct {
	r         *roff.Roff
	capture   strings.Builder
	capturing bool
	list      *manList
	font      roff.Font
	fontOpen  bool
}

func (w *manWriter) closeFont() {
	if w.fontOpen {
		w.r.Escape(roff.RestoreFont)
		w.fontOpen = false
	}
}

func (w *manWriter) span(s Style, text string) {
	if w.capturing {
		w.capture.WriteString(text)
		return
	}
	if text == "" {
		return
	}
	font := s.Font()
	if font == roff.Current {
		w.closeFont()
		w.r.Plaintext(text)
		return
	}
	if !w.fontOpen || font != w.font {
		w.r.Escape(font.Escape())
		w.font = font
		w.fontOpen = true
	}
	w.r.Plaintext(text)
}

func (w *manWriter) flushTitle(control string, upper bool) {
	title := w.capture.String()
	if upper {
		title = strings.ToUpper(title)
	}
	w.capture.Reset()
	w.capturing = false
	w.r.Control(control, title).StripNewlines(true)
}

func (w *manWriter) start(b Block) {
	switch b {
	case BlockSection, BlockSubsection:
		w.capturing = true
	case BlockParagraph:
		w.r.Control("PP")
	case BlockPre:
		w.r.Control("PP").Control("nf").StripNewlines(false)
	case BlockUnnumberedList:
		w.list = &manList{kind: listUnordered}
		w.r.Control("PP")
	case BlockNumberedList:
		w.list = &manList{kind: listOrdered}
		w.r.Control("PP")
	case BlockDefinitionList:
		w.list = &manList{kind: listDefinition}
	case BlockListItem:
		if w.list == nil {
			return
		}
		switch w.list.kind {
		case listOrdered:
			w.list.count++
			w.r.Plaintext(strconv.Itoa(w.list.count) + ". ")
		case listUnordered:
			w.r.Escape("\\(bu").Plaintext(" ")
		}
	case BlockListKey:
		w.r.Control("TP").StripNewlines(true)
	}
}

func (w *manWriter) end(b Block) {
	switch b {
	case BlockSection:
		w.flushTitle("SH", true)
	case BlockSubsection:
		w.flushTitle("SS", false)
	case BlockParagraph:
	case BlockPre:
		w.r.Control("fi").StripNewlines(true)
	case BlockUnnumberedList, BlockNumberedList, BlockDefinitionList:
		w.list = nil
	case BlockListItem:
		w.r.Control("PP").StripNewlines(true)
	case BlockListKey:
		w.r.Linebreak().StripNewlines(true)
	}
}

// checkLists rejects documents the ROFF output cannot express yet.
func (d *Doc) checkLists() error {
	depth := 0
	for tag := range d.All() {
		if tag.Kind == TagStyle || !tag.Block.isList() {
			continue
		}
		if tag.Kind == TagBlockEnd {
			depth--
			continue
		}
		if depth > 0 {
			return fmt.Errorf("%w: nested %s in ROFF output", ErrNotImplemented, tag.Block)
		}
		depth++
	}
	return nil
}

// WriteRoff renders the document body into r. Section titles become .SH
// (uppercased) and .SS control lines, paragraphs start with .PP,
// preformatted blocks are wrapped in .nf/.fi and definition terms start
// with .TP. Numbered and unnumbered lists start with .PP, and each item is
// its own .PP paragraph led by "1." or a bullet.
//
// Lists nested in other lists are not supported: the error wraps
// [ErrNotImplemented] and r is left untouched.
func (d *Doc) WriteRoff(r *roff.Roff) error {
	if err := d.checkLists(); err != nil {
		return err
	}
	prev := r.Stripping()
	r.StripNewlines(true)
	w := &manWriter{r: r}
	for tag, text := range d.All() {
		switch tag.Kind {
		case TagBlockStart:
			w.closeFont()
			w.start(tag.Block)
		case TagBlockEnd:
			w.closeFont()
			w.end(tag.Block)
		case TagStyle:
			w.span(tag.Style, text)
		}
	}
	w.closeFont()
	r.StripNewlines(prev)
	return nil
}

// RenderRoff renders the document body as ROFF without a .TH header.
func (d *Doc) RenderRoff(ap roff.Apostrophes) (string, error) {
	r := roff.New()
	if err := d.WriteRoff(r); err != nil {
		return "", err
	}
	return r.Render(ap), nil
}

// MustRenderRoff is like [Doc.RenderRoff] but panics on error.
func (d *Doc) MustRenderRoff(ap roff.Apostrophes) string {
	s, err := d.RenderRoff(ap)
	if err != nil {
		panic(err)
	}
	return s
}

// RenderManpage appends the document to page and renders the result.
func (d *Doc) RenderManpage(page *Manpage) (string, error) {
	if err := d.WriteRoff(page.Raw()); err != nil {
		return "", err
	}
	return page.Render(), nil
}

// MustRenderManpage is like [Doc.RenderManpage] but panics on error.
func (d *Doc) MustRenderManpage(page *Manpage) string {
	s, err := d.RenderManpage(page)
	if err != nil {
		panic(err)
	}
	return s
}

// --- Man page adapter ---

// ManSection is the section of the manual a page belongs to.
type ManSection string

const (
	General         ManSection = "1" // general commands
	SystemCall      ManSection = "2" // system calls
	LibraryFunction ManSection = "3" // library functions
	SpecialFile     ManSection = "4" // special files and drivers
	FileFormat      ManSection = "5" // file formats and conventions
	Game            ManSection = "6" // games and screensavers
	Misc            ManSection = "7" // miscellaneous
	Sysadmin        ManSection = "8" // system administration commands and daemons
)

// CustomSection returns a section with an arbitrary code. It should start
// with a digit from 1 to 8 and may carry a suffix naming a subsection, as
// in "3p".
func CustomSection(code string) ManSection { return ManSection(code) }

// Manpage is a manual page: a .TH header followed by ROFF content.
type Manpage struct {
	roff *roff.Roff
}

// NewManpage starts a page titled title in section. extra fills the header
// and footer corners, in order: the date of the last change, the project
// the program belongs to and a human friendly title. Only the first three
// are used.
func NewManpage(title string, section ManSection, extra ...string) *Manpage {
	args := append([]string{title, string(section)}, extra[:min(len(extra), 3)]...)
	return &Manpage{roff: roff.New().Control("TH", args...)}
}

// Section adds a section heading.
func (m *Manpage) Section(title string) *Manpage {
	m.roff.Control("SH", title)
	return m
}

// Subsection adds a subsection heading.
func (m *Manpage) Subsection(title string) *Manpage {
	m.roff.Control("SS", title)
	return m
}

// Label adds an indented label followed by a paragraph break. offset is the
// .TP indent; empty means the default.
func (m *Manpage) Label(offset string, text ...Styled) *Manpage {
	strip := m.roff.Stripping()
	if offset == "" {
		m.roff.Control("TP")
	} else {
		m.roff.Control("TP", offset)
	}
	m.roff.StripNewlines(true).
		Text(manSpans(text)...).
		Control("PP").
		StripNewlines(strip)
	return m
}

// Paragraph adds a paragraph of text with newlines removed.
func (m *Manpage) Paragraph(text ...Styled) *Manpage {
	m.roff.StripNewlines(true).
		Text(manSpans(text)...).
		Control("PP")
	return m
}

// Raw returns the underlying ROFF document.
func (m *Manpage) Raw() *roff.Roff { return m.roff }

// Render renders the page with apostrophes handled.
func (m *Manpage) Render() string { return m.roff.Render(roff.Handle) }

func manSpans(text []Styled) []roff.Span {
	spans := make([]roff.Span, len(text))
	for i, s := range text {
		spans[i] = roff.Span{Font: s.Style.Font(), Text: s.Text}
	}
	return spans
}
