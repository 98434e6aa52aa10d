// Package source decodes documents described declaratively in YAML or
// TOML and builds them into a [semdoc.Doc].
//
// A source names the man page header and lists top-level blocks. Each block
// sets exactly one kind:
//
//	title: PROG
//	section: "1"
//	blocks:
//	  - section: Options
//	  - dlist:
//	      - term: [{literal: --help}]
//	        definition: [Print usage]
//	  - nlist:
//	      - text: [first]
//	      - text: [second]
//	        blocks:
//	          - paragraph: [nested]
//
// Spans are objects with exactly one of text, literal, metavar, mono and
// important. YAML also accepts a bare string as a text span.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/internal/logging"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrInvalidBlock      = errors.New("invalid block")
	ErrInvalidSpan       = errors.New("invalid span")
)

// Document is a decoded source.
type Document struct {
	Title   string   `yaml:"title" toml:"title"`
	Section string   `yaml:"section" toml:"section"`
	Extra   []string `yaml:"extra" toml:"extra"`
	Blocks  []Block  `yaml:"blocks" toml:"blocks"`
}

// Block is one block of a document. Exactly one field must be set.
type Block struct {
	Section    *string `yaml:"section,omitempty" toml:"section,omitempty"`
	Subsection *string `yaml:"subsection,omitempty" toml:"subsection,omitempty"`
	Paragraph  []Span  `yaml:"paragraph,omitempty" toml:"paragraph,omitempty"`
	Pre        []Span  `yaml:"pre,omitempty" toml:"pre,omitempty"`
	UList      []Item  `yaml:"ulist,omitempty" toml:"ulist,omitempty"`
	NList      []Item  `yaml:"nlist,omitempty" toml:"nlist,omitempty"`
	DList      []Entry `yaml:"dlist,omitempty" toml:"dlist,omitempty"`
}

// Item is an entry of a numbered or unnumbered list.
type Item struct {
	Text   []Span  `yaml:"text" toml:"text"`
	Blocks []Block `yaml:"blocks,omitempty" toml:"blocks,omitempty"`
}

// Entry is a term of a definition list with its definition.
type Entry struct {
	Term       []Span  `yaml:"term" toml:"term"`
	Definition []Span  `yaml:"definition" toml:"definition"`
	Blocks     []Block `yaml:"blocks,omitempty" toml:"blocks,omitempty"`
}

// Span is styled text. Exactly one field must be set.
type Span struct {
	Text      *string `yaml:"text,omitempty" toml:"text,omitempty"`
	Literal   *string `yaml:"literal,omitempty" toml:"literal,omitempty"`
	Metavar   *string `yaml:"metavar,omitempty" toml:"metavar,omitempty"`
	Mono      *string `yaml:"mono,omitempty" toml:"mono,omitempty"`
	Important *string `yaml:"important,omitempty" toml:"important,omitempty"`
}

// Load reads and decodes the source at path. The decoder is chosen by the
// file extension: .yaml, .yml or .toml.
func Load(path string) (*Document, error) {
	var parse func([]byte) (*Document, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parse = ParseYAML
	case ".toml":
		parse = ParseTOML
	default:
		return nil, fmt.Errorf("%w: %q (want .yaml, .yml or .toml)", ErrUnsupportedSource, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger := logging.GetLogger("source")
	logger.Debug().Str("path", path).Int("blocks", len(doc.Blocks)).Msg("Source loaded")
	return doc, nil
}

// Header returns the [semdoc.WithHeader] option for the document's title.
// fallback fills the header corners when the document sets none. ok is
// false when the document has no title. The section defaults to
// [semdoc.General].
func (d *Document) Header(fallback []string) (opt semdoc.Option, ok bool) {
	if d.Title == "" {
		return nil, false
	}
	section := semdoc.General
	if d.Section != "" {
		section = semdoc.CustomSection(d.Section)
	}
	extra := d.Extra
	if len(extra) == 0 {
		extra = fallback
	}
	return semdoc.WithHeader(d.Title, section, extra...), true
}

// Build builds the document. Top-level blocks are built concurrently and
// joined in order. All invalid blocks are reported, each error naming the
// block's position.
func (d *Document) Build() (*semdoc.Doc, error) {
	parts := make([]*semdoc.Doc, len(d.Blocks))
	errs := make([]error, len(d.Blocks))
	var wg sync.WaitGroup
	for i, b := range d.Blocks {
		wg.Go(func() {
			parts[i], errs[i] = b.build(fmt.Sprintf("blocks[%d]", i))
		})
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	doc := semdoc.Collect(slices.Values(parts))
	logger := logging.GetLogger("source")
	logger.Debug().Int("blocks", len(parts)).Int("bytes", doc.Len()).Msg("Document built")
	return doc, nil
}

func (b Block) kinds() int {
	n := 0
	for _, set := range []bool{
		b.Section != nil, b.Subsection != nil, b.Paragraph != nil, b.Pre != nil,
		b.UList != nil, b.NList != nil, b.DList != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (b Block) build(path string) (*semdoc.Doc, error) {
	if n := b.kinds(); n != 1 {
		return nil, fmt.Errorf("%w: %s: want exactly one of section, subsection, paragraph, pre, ulist, nlist, dlist; got %d",
			ErrInvalidBlock, path, n)
	}
	doc := semdoc.New()
	switch {
	case b.Section != nil:
		doc.Section(*b.Section)
	case b.Subsection != nil:
		doc.Subsection(*b.Subsection)
	case b.Paragraph != nil:
		spans, err := buildSpans(path+".paragraph", b.Paragraph)
		if err != nil {
			return nil, err
		}
		doc.Paragraph(spans...)
	case b.Pre != nil:
		spans, err := buildSpans(path+".pre", b.Pre)
		if err != nil {
			return nil, err
		}
		doc.Pre(spans...)
	case b.UList != nil:
		items, err := buildItems(path+".ulist", b.UList)
		if err != nil {
			return nil, err
		}
		doc.UList(items...)
	case b.NList != nil:
		items, err := buildItems(path+".nlist", b.NList)
		if err != nil {
			return nil, err
		}
		doc.NList(items...)
	case b.DList != nil:
		entries, err := buildEntries(path+".dlist", b.DList)
		if err != nil {
			return nil, err
		}
		doc.DList(entries...)
	}
	return doc, nil
}

func buildBlocks(path string, blocks []Block) ([]semdoc.Fragment, error) {
	out := make([]semdoc.Fragment, 0, len(blocks))
	for i, b := range blocks {
		doc, err := b.build(fmt.Sprintf("%s.blocks[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func buildItems(path string, items []Item) ([]semdoc.Fragment, error) {
	out := make([]semdoc.Fragment, 0, len(items))
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", path, i)
		content, err := buildSpans(p+".text", item.Text)
		if err != nil {
			return nil, err
		}
		nested, err := buildBlocks(p, item.Blocks)
		if err != nil {
			return nil, err
		}
		out = append(out, semdoc.Scoped(semdoc.BlockListItem, append(content, nested...)...))
	}
	return out, nil
}

func buildEntries(path string, entries []Entry) ([]semdoc.Fragment, error) {
	out := make([]semdoc.Fragment, 0, len(entries))
	for i, e := range entries {
		p := fmt.Sprintf("%s[%d]", path, i)
		term, err := buildSpans(p+".term", e.Term)
		if err != nil {
			return nil, err
		}
		definition, err := buildSpans(p+".definition", e.Definition)
		if err != nil {
			return nil, err
		}
		nested, err := buildBlocks(p, e.Blocks)
		if err != nil {
			return nil, err
		}
		out = append(out, semdoc.WriteWith(func(d *semdoc.Doc) {
			d.Definition(semdoc.Seq(term), semdoc.Seq(append(definition, nested...)))
		}))
	}
	return out, nil
}

func buildSpans(path string, spans []Span) ([]semdoc.Fragment, error) {
	out := make([]semdoc.Fragment, 0, len(spans))
	for i, s := range spans {
		f, err := s.fragment()
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidSpan, path, i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

var errSpanKinds = errors.New("want exactly one of text, literal, metavar, mono, important")

func (s Span) fragment() (semdoc.Styled, error) {
	var (
		out semdoc.Styled
		n   int
	)
	for _, c := range []struct {
		text  *string
		style semdoc.Style
	}{
		{s.Text, semdoc.StyleText},
		{s.Literal, semdoc.StyleLiteral},
		{s.Metavar, semdoc.StyleMetavar},
		{s.Mono, semdoc.StyleMono},
		{s.Important, semdoc.StyleImportant},
	} {
		if c.text != nil {
			out = semdoc.Styled{Style: c.style, Text: *c.text}
			n++
		}
	}
	if n != 1 {
		return semdoc.Styled{}, errSpanKinds
	}
	return out, nil
}
