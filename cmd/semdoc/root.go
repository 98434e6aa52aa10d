package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/semdoc"
	"github.com/bjaus/semdoc/internal/config"
	"github.com/bjaus/semdoc/internal/logging"
	"github.com/bjaus/semdoc/source"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by the subcommands.
type app struct {
	verbosity  int
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "semdoc",
		Short: "Render semantic documents as markdown or man pages",
		Long: `semdoc builds documents described in YAML or TOML sources and renders
them as markdown or ROFF man pages. The same source produces both outputs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/semdoc/config.toml)")

	root.AddCommand(
		newRenderCmd(a),
		newPreviewCmd(a),
		newDumpCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "semdoc version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

// loadSource reads and builds the document at path.
func loadSource(path string) (*source.Document, *semdoc.Doc, error) {
	src, err := source.Load(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := src.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, doc, nil
}
