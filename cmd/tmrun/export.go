package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/comalice/turingmachines/internal/logger"
)

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Store a machine in the library under its id",
		Long: `export validates a definition and writes it to the library directory as
<id>.yaml or <id>.json. Other commands accept a library id wherever they
take a definition file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadMachine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, err := a.persister(format)
			if err != nil {
				return err
			}
			if err := p.Save(cmd.Context(), m.Definition()); err != nil {
				return fmt.Errorf("exporting %s: %w", m.ID(), err)
			}
			logger.Info("machine exported", "machine", m.ID(), "format", format)
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", m.ID(), filepath.Join(a.v.GetString("library"), m.ID()+"."+format))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Library format (yaml|json)")
	return cmd
}
