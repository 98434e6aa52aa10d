// Package semdoc builds documents out of semantic markup and renders them
// as markdown or as ROFF manual pages.
//
// A [Doc] is composed of styled text spans structured in possibly nested
// blocks:
//
//   - section and subsection headers
//   - paragraphs and preformatted text
//   - numbered, unnumbered and definition lists, with items being nested
//     blocks
//
// The same document renders to both outputs:
//
//	doc := semdoc.New()
//	doc.Section("Usage").
//		Paragraph(semdoc.Text("Program takes "), semdoc.Literal("--help"), semdoc.Text(" flag")).
//		UList(semdoc.WriteWith(func(d *semdoc.Doc) {
//			d.Item(semdoc.Text("program is written in Go")).
//				Item(semdoc.Text("program should not crash"))
//		}))
//
//	md := doc.RenderMarkdown()
//	page, err := doc.RenderManpage(semdoc.NewManpage("PROG", semdoc.General))
//
// # Fragments
//
// Block methods accept any [Fragment]: styled spans made with [Literal],
// [Metavar], [Mono], [Text] and [Important] (from a string or a rune),
// [Str] and [Char] for plain text, [Seq] for a group, [WriteWith] for a
// function that writes into the document, [Scoped] for a pre-built block
// and another *[Doc].
//
// # Styles
//
//	Style      markdown         ROFF
//	Literal    <tt><b>          bold
//	Metavar    <tt><i>          italic
//	Mono       <tt>             constant width
//	Text       plain            roman
//	Important  <b>              bold italic
//
// # Composition
//
// Documents are append-only. Parts built separately, possibly on separate
// goroutines, are joined in order with [Doc.Append], [Concat], [Collect]
// or [CollectChan]. Concatenation is associative and the empty document is
// its identity.
//
// # Formats
//
// [Write] and [Marshal] dispatch on a [Format]: [Markdown], [Man] (which
// needs [WithHeader]) and [Roff] (the body without a header). Use
// [ParseFormat] to convert a CLI flag into a [Format].
//
// # Errors
//
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrMissingHeader]: [Man] requested without [WithHeader]
//   - [ErrNotImplemented]: a list nested in another list rendered as ROFF
package semdoc
