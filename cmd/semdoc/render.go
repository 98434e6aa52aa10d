package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/internal/logging"
	"github.com/bjaus/semdoc/roff"
)

var (
	errOutdated         = errors.New("output was outdated")
	errCheckNeedsOutput = errors.New("--check requires --output")
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format        string
		output        string
		check         bool
		noApostrophes bool
	)
	cmd := &cobra.Command{
		Use:   "render SOURCE",
		Short: "Render a source document",
		Long: `Render builds SOURCE (.yaml, .yml or .toml) and writes it in the chosen
format. The man format needs a title in the source.

With --output the file is only rewritten when its content changes. Adding
--check makes the command fail after rewriting a changed file, so CI can
catch documentation that was not regenerated.`,
		Example: `  semdoc render tool.yaml --format man --output docs/tool.1
  semdoc render tool.yaml --format man --output docs/tool.1 --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.render")
			if check && output == "" {
				return errCheckNeedsOutput
			}
			if format == "" {
				format = a.cfg.Format
			}
			f, err := semdoc.ParseFormat(format)
			if err != nil {
				return err
			}
			ap, err := a.cfg.ApostropheMode()
			if err != nil {
				return err
			}
			if noApostrophes {
				ap = roff.DontHandle
			}

			src, doc, err := loadSource(args[0])
			if err != nil {
				return err
			}
			opts := []semdoc.Option{semdoc.WithApostrophes(ap)}
			if header, ok := src.Header(a.cfg.HeaderExtra()); ok {
				opts = append(opts, header)
			}
			data, err := semdoc.Marshal(f, doc, opts...)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			changed, err := semdoc.WriteUpdated(output, data)
			if err != nil {
				return err
			}
			logger.Info().Str("output", output).Str("format", f.String()).Bool("changed", changed).Msg("Output rendered")
			if check && changed {
				return fmt.Errorf("%w: regenerated %s, commit the result", errOutdated, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", fmt.Sprintf("output format %v (default from config)", semdoc.Formats()))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail when --output had to be rewritten")
	cmd.Flags().BoolVar(&noApostrophes, "no-apostrophes", false, "keep apostrophes verbatim in ROFF output")
	return cmd
}
