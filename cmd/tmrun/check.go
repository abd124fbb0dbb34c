package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <definition>",
		Short: "Report whether a machine is valid and deterministic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadMachine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "machine:       %s\n", m.ID())
			fmt.Fprintf(out, "states:        %d\n", m.States())
			fmt.Fprintf(out, "transitions:   %d\n", len(m.Transitions()))
			fmt.Fprintf(out, "tapes:         %d\n", len(m.Tapes()))
			fmt.Fprintf(out, "valid:         %t\n", m.IsValid())
			fmt.Fprintf(out, "deterministic: %t\n", m.IsDeterministic())
			if !m.IsValid() {
				return fmt.Errorf("machine needs at least one initial and one final state")
			}
			return nil
		},
	}
}
