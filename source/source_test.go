package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/roff"
	"github.com/bjaus/semdoc/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const progYAML = `title: PROG
section: "1"
blocks:
  - section: Description
  - paragraph:
      - "Pass "
      - literal: --help
      - " for info."
  - section: Options
  - dlist:
      - term: [{literal: -v}]
        definition: [Use verbose output]
  - nlist:
      - text: [first]
      - text: [second]
        blocks:
          - paragraph: [nested]
`

const progTOML = `title = "PROG"
section = "1"

[[blocks]]
section = "Description"

[[blocks]]
paragraph = [{ text = "Pass " }, { literal = "--help" }, { text = " for info." }]

[[blocks]]
section = "Options"

[[blocks]]
dlist = [{ term = [{ literal = "-v" }], definition = [{ text = "Use verbose output" }] }]

[[blocks]]
[[blocks.nlist]]
text = [{ text = "first" }]

[[blocks.nlist]]
text = [{ text = "second" }]
blocks = [{ paragraph = [{ text = "nested" }] }]
`

const progMarkdown = `# Description

<p>Pass <tt><b>--help</b></tt> for info.</p>

# Options

<dl>
<dt><tt><b>-v</b></tt></dt>
<dd>Use verbose output</dd>
</dl>

<ol>
<li>first</li>
<li>second

<p>nested</p></li>
</ol>
`

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildYAML(t *testing.T) {
	t.Parallel()
	src, err := source.ParseYAML([]byte(progYAML))
	require.NoError(t, err)
	assert.Equal(t, "PROG", src.Title)
	assert.Equal(t, "1", src.Section)
	require.Len(t, src.Blocks, 5)

	doc, err := src.Build()
	require.NoError(t, err)
	assert.Equal(t, progMarkdown, doc.RenderMarkdown())
}

func TestBuildTOMLMatchesYAML(t *testing.T) {
	t.Parallel()
	fromYAML, err := source.ParseYAML([]byte(progYAML))
	require.NoError(t, err)
	fromTOML, err := source.ParseTOML([]byte(progTOML))
	require.NoError(t, err)

	a, err := fromYAML.Build()
	require.NoError(t, err)
	b, err := fromTOML.Build()
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestBuildRendersRoff(t *testing.T) {
	t.Parallel()
	src, err := source.ParseYAML([]byte(progYAML))
	require.NoError(t, err)
	doc, err := src.Build()
	require.NoError(t, err)

	opt, ok := src.Header(nil)
	require.True(t, ok)
	out, err := semdoc.Marshal(semdoc.Man, doc, opt, semdoc.WithApostrophes(roff.DontHandle))
	require.NoError(t, err)
	assert.Contains(t, string(out), ".TH PROG 1\n.SH DESCRIPTION\n")
	assert.Contains(t, string(out), "1. \\fRfirst\\fP\n")
}

func TestBuildKeepsBlockOrder(t *testing.T) {
	t.Parallel()
	src := &source.Document{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		src.Blocks = append(src.Blocks, source.Block{Section: &name})
	}
	doc, err := src.Build()
	require.NoError(t, err)
	assert.Equal(t, "# a\n\n# b\n\n# c\n\n# d\n\n# e\n\n# f\n\n# g\n\n# h\n", doc.RenderMarkdown())
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()
	src, err := source.ParseYAML(nil)
	require.NoError(t, err)
	doc, err := src.Build()
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		yaml    string
		want    error
		message string
	}{
		"two kinds": {
			yaml:    "blocks:\n  - section: A\n    subsection: B\n",
			want:    source.ErrInvalidBlock,
			message: "blocks[0]",
		},
		"no kind": {
			yaml:    "blocks:\n  - {}\n",
			want:    source.ErrInvalidBlock,
			message: "got 0",
		},
		"span with two styles": {
			yaml:    "blocks:\n  - paragraph: [{literal: a, mono: b}]\n",
			want:    source.ErrInvalidSpan,
			message: "blocks[0].paragraph[0]",
		},
		"empty span": {
			yaml:    "blocks:\n  - pre: [{}]\n",
			want:    source.ErrInvalidSpan,
			message: "blocks[0].pre[0]",
		},
		"nested block": {
			yaml:    "blocks:\n  - section: ok\n  - ulist:\n      - text: [a]\n        blocks:\n          - {}\n",
			want:    source.ErrInvalidBlock,
			message: "blocks[1].ulist[0].blocks[0]",
		},
		"definition span": {
			yaml:    "blocks:\n  - dlist:\n      - term: [a]\n        definition: [~]\n",
			want:    source.ErrInvalidSpan,
			message: "blocks[0].dlist[0].definition[0]",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			src, err := source.ParseYAML([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = src.Build()
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuildReportsEveryInvalidBlock(t *testing.T) {
	t.Parallel()
	src, err := source.ParseYAML([]byte("blocks:\n  - {}\n  - section: fine\n  - {}\n"))
	require.NoError(t, err)
	_, err = src.Build()
	require.ErrorIs(t, err, source.ErrInvalidBlock)
	assert.Contains(t, err.Error(), "blocks[0]")
	assert.Contains(t, err.Error(), "blocks[2]")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	_, err := source.ParseYAML([]byte("title: X\nblocks:\n  - paragrah: [x]\n"))
	require.Error(t, err)
	_, err = source.ParseTOML([]byte("titel = \"X\"\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {name: "prog.yaml", content: progYAML},
		"yml":  {name: "prog.yml", content: progYAML},
		"toml": {name: "prog.TOML", content: progTOML},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			src, err := source.Load(writeSource(t, tt.name, tt.content))
			require.NoError(t, err)
			doc, err := src.Build()
			require.NoError(t, err)
			assert.Equal(t, progMarkdown, doc.RenderMarkdown())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := source.Load(writeSource(t, "prog.json", "{}"))
	require.ErrorIs(t, err, source.ErrUnsupportedSource)

	_, err = source.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := writeSource(t, "bad.yaml", "blocks: [")
	_, err = source.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestHeader(t *testing.T) {
	t.Parallel()
	doc := semdoc.New().Paragraph(semdoc.Text("x"))
	render := func(src *source.Document, fallback []string) string {
		opt, ok := src.Header(fallback)
		require.True(t, ok)
		out, err := semdoc.Marshal(semdoc.Man, doc, opt, semdoc.WithApostrophes(roff.DontHandle))
		require.NoError(t, err)
		return string(out)
	}

	assert.Contains(t, render(&source.Document{Title: "X"}, nil), ".TH X 1\n")
	assert.Contains(t, render(&source.Document{Title: "X", Section: "5"}, []string{"", "proj"}), ".TH X 5 \"\" proj\n")
	assert.Contains(t, render(&source.Document{Title: "X", Extra: []string{"2024"}}, []string{"", "proj"}), ".TH X 1 2024\n")

	_, ok := (&source.Document{}).Header(nil)
	assert.False(t, ok)
}
