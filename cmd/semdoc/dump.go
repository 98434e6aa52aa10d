package main

import "github.com/spf13/cobra"

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump SOURCE",
		Short: "Print the tag stream of a source, for debugging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := loadSource(args[0])
			if err != nil {
				return err
			}
			return doc.Dump(cmd.OutOrStdout())
		},
	}
}
