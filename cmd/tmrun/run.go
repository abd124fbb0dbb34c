package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
	"github.com/comalice/turingmachines/internal/render"
	"github.com/comalice/turingmachines/internal/runstore"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		save      bool
		showTapes bool
	)
	cmd := &cobra.Command{
		Use:   "run <definition>",
		Short: "Search for a run and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadMachine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.build(cmd.Context(), m); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printRun(out, m)
			if showTapes {
				if err := m.LoadLastConfiguration(); err != nil {
					return err
				}
				fmt.Fprintln(out, render.New(render.PlainTheme()).Machine(m))
			}
			if !save {
				return nil
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer runstore.CloseIfSupported(store)
			rec := runstore.NewRunRecord(m, m.Path())
			if err := store.SaveRun(cmd.Context(), rec); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
			logger.Info("run saved", "run", rec.ID, "machine", rec.MachineID)
			fmt.Fprintf(out, "saved run %s\n", rec.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the run history")
	cmd.Flags().BoolVar(&showTapes, "tapes", false, "Print the tapes of the last configuration")
	return cmd
}

func printRun(w io.Writer, m *tm.TuringMachine) {
	p := m.Path()
	verdict := "rejected"
	if p.Accepting {
		verdict = "accepted"
	}
	fmt.Fprintf(w, "%s in %d steps (%d configurations examined)\n", verdict, p.Len(), p.Iterations)
	for i, c := range p.Configurations {
		fmt.Fprintf(w, "%4d  %s\n", i, m.StateName(c.State))
		if i < len(p.Transitions) {
			fmt.Fprintf(w, "        %s\n", p.Transitions[i])
		}
	}
}
