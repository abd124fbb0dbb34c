package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/turingmachines/internal/runstore"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history [machine-id]",
		Short: "List recorded runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineID := ""
			if len(args) == 1 {
				machineID = args[0]
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer runstore.CloseIfSupported(store)

			runs, err := store.ListRuns(cmd.Context(), machineID)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tMACHINE\tRESULT\tSTEPS\tCREATED")
			for _, r := range runs {
				result := "rejected"
				if r.Accepting {
					result = "accepted"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.MachineID, result, r.Steps, r.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}
