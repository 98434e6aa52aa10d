package main

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bjaus/semdoc/internal/logging"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		style string
		width int
		tty   bool
	)
	cmd := &cobra.Command{
		Use:   "preview SOURCE",
		Short: "Show the markdown rendering of a source in the terminal",
		Long: `Preview renders SOURCE as markdown and styles it for the terminal. When
stdout is not a terminal the markdown is printed as is, unless --tty is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := loadSource(args[0])
			if err != nil {
				return err
			}
			md := doc.RenderMarkdown()
			out := cmd.OutOrStdout()
			if !tty && !isTerminal(out) {
				_, err := io.WriteString(out, md)
				return err
			}

			if !cmd.Flags().Changed("style") {
				style = a.cfg.Preview.Style
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Preview.Width
			}
			rendered, err := renderPreview(md, style, width)
			if err != nil {
				logger := logging.GetLogger("cmd.preview")
				logger.Warn().Err(err).Str("style", style).Msg("Preview failed, printing markdown")
				rendered = md
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style name or path (dark, light, notty, auto)")
	cmd.Flags().IntVar(&width, "width", 0, "word wrap width (0 keeps the default)")
	cmd.Flags().BoolVar(&tty, "tty", false, "style output even when stdout is not a terminal")
	return cmd
}

func renderPreview(md, style string, width int) (string, error) {
	var options []glamour.TermRendererOption
	if style != "" && style != "auto" {
		options = append(options, glamour.WithStylePath(style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
