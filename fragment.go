package semdoc

// Fragment is anything that can be written into a [Doc]. The set of
// fragments is closed: styled spans ([Styled]), plain strings ([Str]) and
// characters ([Char]), sequences ([Seq]), deferred writes ([WriteWith]),
// nested documents (*[Doc]) and the blocks produced by [Scoped].
type Fragment interface {
	writeTo(d *Doc)
}

// Chars is the set of payload types accepted by the style constructors.
type Chars interface {
	~string | ~rune
}

// Styled is a span of text with a style.
type Styled struct {
	Style Style
	Text  string
}

func (s Styled) writeTo(d *Doc) {
	d.push(Tag{Kind: TagStyle, Style: s.Style}, s.Text)
}

// Str is plain text.
type Str string

func (s Str) writeTo(d *Doc) { Styled{Style: StyleText, Text: string(s)}.writeTo(d) }

// Char is a single character of plain text.
type Char rune

func (c Char) writeTo(d *Doc) { Styled{Style: StyleText, Text: string(rune(c))}.writeTo(d) }

// Seq writes each fragment in order.
type Seq []Fragment

func (s Seq) writeTo(d *Doc) { d.Add(s...) }

type writeFunc func(*Doc)

func (fn writeFunc) writeTo(d *Doc) { fn(d) }

// WriteWith defers writing to fn, which receives the document being built.
// It lets a list be filled with calls such as [Doc.Item] or
// [Doc.Definition]:
//
//	doc.DList(semdoc.WriteWith(func(d *semdoc.Doc) {
//		d.Definition(semdoc.Literal("--help"), semdoc.Text("Print usage"))
//	}))
func WriteWith(fn func(*Doc)) Fragment { return writeFunc(fn) }

type scoped struct {
	block   Block
	content []Fragment
}

func (s scoped) writeTo(d *Doc) { d.scope(s.block, s.content...) }

// Scoped wraps content in a block so it can be passed around as a single
// fragment.
func Scoped(b Block, content ...Fragment) Fragment {
	return scoped{block: b, content: content}
}

func (d *Doc) writeTo(dst *Doc) { dst.Append(d) }

func styled[T Chars](s Style, v T) Styled {
	return Styled{Style: s, Text: string(v)}
}

// Literal styles text the user types as is.
func Literal[T Chars](v T) Styled { return styled(StyleLiteral, v) }

// Metavar styles a placeholder the user replaces.
func Metavar[T Chars](v T) Styled { return styled(StyleMetavar, v) }

// Mono styles monospaced text.
func Mono[T Chars](v T) Styled { return styled(StyleMono, v) }

// Text is plain text.
func Text[T Chars](v T) Styled { return styled(StyleText, v) }

// Important styles highlighted text.
func Important[T Chars](v T) Styled { return styled(StyleImportant, v) }
