package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
	"github.com/comalice/turingmachines/internal/render"
	"github.com/comalice/turingmachines/playback"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		tick  time.Duration
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "play <definition>",
		Short: "Build a run and animate it step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadMachine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.build(cmd.Context(), m); err != nil {
				return err
			}

			theme := render.DefaultTheme()
			if plain {
				theme = render.PlainTheme()
			}
			r := render.New(theme)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, r.Machine(m))

			p := playback.New(m, playback.Config{
				TickRate: tick,
				Logger:   logger.Logger.WithPrefix("playback"),
				OnStep: func(m *tm.TuringMachine, _ int) {
					fmt.Fprintln(out)
					fmt.Fprintln(out, r.Machine(m))
				},
			})
			return p.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&tick, "tick", playback.DefaultTickRate, "Delay between steps")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colours")
	return cmd
}
