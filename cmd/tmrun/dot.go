package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/turingmachines/internal/production"
)

func newDotCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dot <definition>",
		Short: "Print the automaton graph in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadMachine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			if asJSON {
				data, err := v.ExportJSON(m)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), v.ExportDOT(m))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the definition as JSON instead")
	return cmd
}
