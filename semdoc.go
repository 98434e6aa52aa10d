package semdoc

import (
	"fmt"
	"iter"

	"github.com/bjaus/semdoc/internal/monoid"
)

// Block is a logical block of a document. Blocks are delimited by a start
// and an end tag and may nest.
type Block int

const (
	BlockSection        Block = iota // section header
	BlockSubsection                  // subsection header
	BlockParagraph                   // paragraph of text
	BlockPre                         // preformatted text, newlines kept
	BlockUnnumberedList              // contains BlockListItem
	BlockNumberedList                // contains BlockListItem
	BlockDefinitionList              // contains BlockListKey, BlockListItem pairs
	BlockListKey                     // definition list term
	BlockListItem                    // list item or definition body
)

var blockNames = [...]string{
	BlockSection:        "Section",
	BlockSubsection:     "Subsection",
	BlockParagraph:      "Paragraph",
	BlockPre:            "Pre",
	BlockUnnumberedList: "UnnumberedList",
	BlockNumberedList:   "NumberedList",
	BlockDefinitionList: "DefinitionList",
	BlockListKey:        "ListKey",
	BlockListItem:       "ListItem",
}

// String returns the block name.
func (b Block) String() string {
	if b < 0 || int(b) >= len(blockNames) {
		return fmt.Sprintf("Block(%d)", int(b))
	}
	return blockNames[b]
}

func (b Block) isList() bool {
	return b == BlockUnnumberedList || b == BlockNumberedList || b == BlockDefinitionList
}

// Style is the meaning of a span of text. Each renderer decides how a
// style looks.
type Style int

const (
	// StyleLiteral is something the user types literally, such as a flag
	// name with its dashes: -f or --foo.
	StyleLiteral Style = iota
	// StyleMetavar is a placeholder the user replaces with their own
	// input: FOO in --foo FOO.
	StyleMetavar
	// StyleMono is monospaced text.
	StyleMono
	// StyleText is plain text.
	StyleText
	// StyleImportant is highlighted text.
	StyleImportant
)

var styleNames = [...]string{
	StyleLiteral:   "Literal",
	StyleMetavar:   "Metavar",
	StyleMono:      "Mono",
	StyleText:      "Text",
	StyleImportant: "Important",
}

// String returns the style name.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// TagKind discriminates the entries of a document's tag stream.
type TagKind int

const (
	TagBlockStart TagKind = iota
	TagBlockEnd
	TagStyle
)

// Tag annotates one entry of the tag stream. Block tags carry no text;
// style tags annotate the text they style.
type Tag struct {
	Kind  TagKind
	Block Block
	Style Style
}

// String renders the tag for debugging, e.g. "start Section" or "Literal".
func (t Tag) String() string {
	switch t.Kind {
	case TagBlockStart:
		return "start " + t.Block.String()
	case TagBlockEnd:
		return "end " + t.Block.String()
	default:
		return t.Style.String()
	}
}

// Doc is a semantic document: styled text structured in nested blocks.
// The zero value is an empty document ready to use.
//
// Building a Doc is not safe for concurrent use. A finished Doc may be
// rendered from any number of goroutines. Independently built documents
// can be joined with [Doc.Append] or [Concat].
type Doc struct {
	buf monoid.Buffer[Tag]
}

// New returns an empty document.
func New() *Doc { return &Doc{} }

func (d *Doc) push(t Tag, text string) {
	d.buf.Push(t, text)
}

func (d *Doc) scope(b Block, content ...Fragment) *Doc {
	d.push(Tag{Kind: TagBlockStart, Block: b}, "")
	d.Add(content...)
	d.push(Tag{Kind: TagBlockEnd, Block: b}, "")
	return d
}

// Section inserts a section header.
func (d *Doc) Section(name string) *Doc {
	return d.scope(BlockSection, Text(name))
}

// Subsection inserts a subsection header.
func (d *Doc) Subsection(name string) *Doc {
	return d.scope(BlockSubsection, Text(name))
}

// Paragraph adds a paragraph. Paragraphs are separated from each other by
// blank lines or indentation, depending on the output.
func (d *Doc) Paragraph(content ...Fragment) *Doc {
	return d.scope(BlockParagraph, content...)
}

// Pre adds preformatted text. Newlines inside it are kept in every output.
func (d *Doc) Pre(content ...Fragment) *Doc {
	return d.scope(BlockPre, content...)
}

// NList adds a numbered list. items should write [Doc.Item] entries.
func (d *Doc) NList(items ...Fragment) *Doc {
	return d.scope(BlockNumberedList, items...)
}

// UList adds an unnumbered list. items should write [Doc.Item] entries.
func (d *Doc) UList(items ...Fragment) *Doc {
	return d.scope(BlockUnnumberedList, items...)
}

// DList adds a definition list. items should write [Doc.Definition]
// entries, or [Doc.Term] and [Doc.Item] pairs.
func (d *Doc) DList(items ...Fragment) *Doc {
	return d.scope(BlockDefinitionList, items...)
}

// Item adds a list item.
func (d *Doc) Item(content ...Fragment) *Doc {
	return d.scope(BlockListItem, content...)
}

// Term adds a definition list term.
func (d *Doc) Term(content ...Fragment) *Doc {
	return d.scope(BlockListKey, content...)
}

// Definition adds a term followed by its definition. The two are sibling
// blocks, not nested ones.
func (d *Doc) Definition(term, definition Fragment) *Doc {
	d.scope(BlockListKey, term)
	return d.scope(BlockListItem, definition)
}

// Add appends content without wrapping it in a block.
func (d *Doc) Add(content ...Fragment) *Doc {
	for _, f := range content {
		if f != nil {
			f.writeTo(d)
		}
	}
	return d
}

// Append concatenates other onto d. other is not modified.
func (d *Doc) Append(other *Doc) *Doc {
	if other != nil {
		d.buf.Append(&other.buf)
	}
	return d
}

// Clone returns an independent copy of d.
func (d *Doc) Clone() *Doc {
	c := &Doc{}
	c.buf.Append(&d.buf)
	return c
}

// Len returns the number of text bytes in the document. Block tags do not
// count.
func (d *Doc) Len() int { return d.buf.Len() }

// IsEmpty reports whether nothing was added.
func (d *Doc) IsEmpty() bool { return d.buf.IsEmpty() }

// Reset removes all content.
func (d *Doc) Reset() { d.buf.Clear() }

// All yields the tag stream in document order.
func (d *Doc) All() iter.Seq2[Tag, string] { return d.buf.All() }

// Equal reports whether d and other hold the same tag stream.
func (d *Doc) Equal(other *Doc) bool { return monoid.Equal(&d.buf, &other.buf) }

// Concat returns a new document holding docs in order. The inputs are not
// modified.
func Concat(docs ...*Doc) *Doc {
	out := New()
	for _, d := range docs {
		out.Append(d)
	}
	return out
}
