package semdoc

import (
	"strings"
)

type markup struct {
	mono, bold, italic bool
}

// Outer to inner nesting order of inline tags.
func (m markup) layers() [3]bool { return [3]bool{m.mono, m.bold, m.italic} }

var (
	markupOpen  = [3]string{"<tt>", "<b>", "<i>"}
	markupClose = [3]string{"</tt>", "</b>", "</i>"}
)

var markdownStyles = [...]markup{
	StyleLiteral:   {mono: true, bold: true},
	StyleMetavar:   {mono: true, italic: true},
	StyleMono:      {mono: true},
	StyleText:      {},
	StyleImportant: {bold: true},
}

func (s Style) markup() markup {
	if s < 0 || int(s) >= len(markdownStyles) {
		return markup{}
	}
	return markdownStyles[s]
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type markdownWriter struct {
	sb    strings.Builder
	open  markup
	lists []Block
}

func (w *markdownWriter) freshLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n") {
		w.sb.WriteByte('\n')
	}
}

func (w *markdownWriter) blankLine() {
	if w.sb.Len() == 0 {
		return
	}
	s := w.sb.String()
	switch {
	case !strings.HasSuffix(s, "\n"):
		w.sb.WriteString("\n\n")
	case !strings.HasSuffix(s, "\n\n"):
		w.sb.WriteByte('\n')
	}
}

// setMarkup moves from the open inline tags to m, closing and reopening
// only the layers that differ while keeping tags properly nested.
func (w *markdownWriter) setMarkup(m markup) {
	from, to := w.open.layers(), m.layers()
	first := 0
	for first < len(from) && from[first] == to[first] {
		first++
	}
	for i := len(from) - 1; i >= first; i-- {
		if from[i] {
			w.sb.WriteString(markupClose[i])
		}
	}
	for i := first; i < len(to); i++ {
		if to[i] {
			w.sb.WriteString(markupOpen[i])
		}
	}
	w.open = m
}

func (w *markdownWriter) inDefinitionList() bool {
	return len(w.lists) > 0 && w.lists[len(w.lists)-1] == BlockDefinitionList
}

func (w *markdownWriter) start(b Block) {
	switch b {
	case BlockSection:
		w.blankLine()
		w.sb.WriteString("# ")
	case BlockSubsection:
		w.blankLine()
		w.sb.WriteString("## ")
	case BlockParagraph:
		w.blankLine()
		w.sb.WriteString("<p>")
	case BlockPre:
		w.blankLine()
		w.sb.WriteString("<pre>")
	case BlockUnnumberedList:
		w.blankLine()
		w.sb.WriteString("<ul>")
		w.lists = append(w.lists, b)
	case BlockNumberedList:
		w.blankLine()
		w.sb.WriteString("<ol>")
		w.lists = append(w.lists, b)
	case BlockDefinitionList:
		w.blankLine()
		w.sb.WriteString("<dl>")
		w.lists = append(w.lists, b)
	case BlockListItem:
		w.freshLine()
		if w.inDefinitionList() {
			w.sb.WriteString("<dd>")
		} else {
			w.sb.WriteString("<li>")
		}
	case BlockListKey:
		w.freshLine()
		w.sb.WriteString("<dt>")
	}
}

func (w *markdownWriter) end(b Block) {
	switch b {
	case BlockSection, BlockSubsection:
	case BlockParagraph:
		w.sb.WriteString("</p>")
	case BlockPre:
		w.sb.WriteString("</pre>")
	case BlockUnnumberedList:
		w.closeList("</ul>")
	case BlockNumberedList:
		w.closeList("</ol>")
	case BlockDefinitionList:
		w.closeList("</dl>")
	case BlockListItem:
		if w.inDefinitionList() {
			w.sb.WriteString("</dd>")
		} else {
			w.sb.WriteString("</li>")
		}
	case BlockListKey:
		w.sb.WriteString("</dt>")
	}
}

func (w *markdownWriter) closeList(tag string) {
	w.freshLine()
	w.sb.WriteString(tag)
	if len(w.lists) > 0 {
		w.lists = w.lists[:len(w.lists)-1]
	}
}

// RenderMarkdown renders the document as markdown with HTML tags for
// paragraphs, lists and inline styles.
//
// Literal text is wrapped in <tt><b>, metavariables in <tt><i>, monospaced
// text in <tt> and important text in <b>. Adjacent spans share the tags
// they have in common. Text is HTML escaped: &, < and > become &amp;, &lt;
// and &gt;. Spans with an unknown style render as plain text.
func (d *Doc) RenderMarkdown() string {
	var w markdownWriter
	for tag, text := range d.All() {
		switch tag.Kind {
		case TagBlockStart:
			w.setMarkup(markup{})
			w.start(tag.Block)
		case TagBlockEnd:
			w.setMarkup(markup{})
			w.end(tag.Block)
		case TagStyle:
			if text == "" {
				continue
			}
			w.setMarkup(tag.Style.markup())
			w.sb.WriteString(htmlEscaper.Replace(text))
		}
	}
	w.setMarkup(markup{})
	w.freshLine()
	return w.sb.String()
}
