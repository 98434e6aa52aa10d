package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/roff"
)

// The commands set up the global logger and read the environment, so these
// tests do not run in parallel.

const toolYAML = `title: TOOL
section: "1"
blocks:
  - section: Name
  - paragraph: ["tool - do things"]
  - section: Options
  - dlist:
      - term: [{literal: --help}]
        definition: [Print usage]
`

const toolMarkdown = `# Name

<p>tool - do things</p>

# Options

<dl>
<dt><tt><b>--help</b></tt></dt>
<dd>Print usage</dd>
</dl>
`

const toolRoff = `.SH NAME
.PP
\fRtool \- do things\fP
.SH OPTIONS
.TP
\fB\-\-help\fP
\fRPrint usage\fP
.PP
`

// isolate points the XDG directories at temporary ones.
func isolate(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "semdoc version dev")
	assert.Contains(t, out, "commit: none")
}

func TestRender(t *testing.T) {
	src := writeFile(t, "tool.yaml", toolYAML)
	tests := map[string]struct {
		args []string
		want string
	}{
		"markdown by default": {
			args: []string{"render", src},
			want: toolMarkdown,
		},
		"roff": {
			args: []string{"render", src, "--format", "roff"},
			want: roff.ApostrophePreamble + toolRoff,
		},
		"man without apostrophes": {
			args: []string{"render", src, "-f", "man", "--no-apostrophes"},
			want: ".TH TOOL 1\n" + toolRoff,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	src := writeFile(t, "tool.yaml", toolYAML)
	tests := map[string]struct {
		args []string
		want error
	}{
		"unknown format":       {args: []string{"render", src, "--format", "xml"}, want: semdoc.ErrUnsupportedFormat},
		"check without output": {args: []string{"render", src, "--check"}, want: errCheckNeedsOutput},
		"missing source":       {args: []string{"render", filepath.Join(t.TempDir(), "nope.yaml")}, want: os.ErrNotExist},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			_, err := run(t, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRenderManNeedsTitle(t *testing.T) {
	isolate(t)
	src := writeFile(t, "untitled.yaml", "blocks:\n  - section: Name\n")
	_, err := run(t, "render", src, "--format", "man")
	require.ErrorIs(t, err, semdoc.ErrMissingHeader)
}

func TestRenderOutputCheck(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	output := filepath.Join(t.TempDir(), "tool.md")

	_, err := run(t, "render", src, "--output", output)
	require.NoError(t, err)
	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, toolMarkdown, string(got))

	_, err = run(t, "render", src, "--output", output, "--check")
	require.NoError(t, err, "up to date output passes the check")

	require.NoError(t, os.WriteFile(src, []byte(strings.Replace(toolYAML, "do things", "do more", 1)), 0o644))
	_, err = run(t, "render", src, "--output", output, "--check")
	require.ErrorIs(t, err, errOutdated)

	got, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(got), "tool - do more")
}

func TestRenderUsesConfig(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	cfg := writeFile(t, "config.toml", "format = \"man\"\napostrophes = \"dont-handle\"\n[man]\nmanual = \"Tool Manual\"\n")

	out, err := run(t, "render", src, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, ".TH TOOL 1 \"\" \"\" Tool\\ Manual\n"+toolRoff, out)
}

func TestRenderEnvOverridesConfig(t *testing.T) {
	isolate(t)
	t.Setenv("SEMDOC_FORMAT", "man")
	t.Setenv("SEMDOC_APOSTROPHES", "dont-handle")
	t.Setenv("SEMDOC_MAN_SOURCE", "proj")
	src := writeFile(t, "tool.yaml", toolYAML)

	out, err := run(t, "render", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, ".TH TOOL 1 \"\" proj\n"), out)
}

func TestRenderInvalidConfig(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	cfg := writeFile(t, "config.toml", "apostrophes = \"sometimes\"\n")
	_, err := run(t, "render", src, "--config", cfg)
	require.Error(t, err)
}

func TestPreviewNotTerminal(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	out, err := run(t, "preview", src)
	require.NoError(t, err)
	assert.Equal(t, toolMarkdown, out)
}

func TestPreviewStyled(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	out, err := run(t, "preview", src, "--tty", "--style", "notty", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Options")
}

func TestDump(t *testing.T) {
	isolate(t)
	src := writeFile(t, "tool.yaml", toolYAML)
	out, err := run(t, "dump", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, " #  TAG"), out)
	assert.Contains(t, out, "start DefinitionList")
	assert.Contains(t, out, `"--help"`)
}

func TestDumpInvalidSource(t *testing.T) {
	isolate(t)
	src := writeFile(t, "bad.yaml", "blocks:\n  - {}\n")
	_, err := run(t, "dump", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), src)
}
