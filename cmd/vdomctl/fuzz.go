package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/keyfuzz"
)

func fuzzCmd() *cobra.Command {
	var cfg keyfuzz.Config

	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Check the keyed differ against random list edits",
		Long: `Render random deletes, inserts, moves and shuffles of a keyed list.

After every pass the list order, the identity of retained nodes and the
number of DOM moves are checked. The moves must equal the number of
retained nodes outside a longest increasing run of their old positions.

With --mixed the entries are rendered as elements, fragments, empty
fragments and trusted markup that change shape between passes. Order and
identity are checked but moves are not.

Examples:
  vdomctl fuzz
  vdomctl fuzz --size 50 --iterations 1000 --seed 7
  vdomctl fuzz --mixed --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				cfg.Seed = time.Now().UnixNano()
			}
			start := time.Now()
			rep, err := keyfuzz.Run(cfg)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%d rounds, %d passes, %d moves, %d inserts, %d removes in %s (seed %d)",
				rep.Rounds, rep.Passes, rep.Moves, rep.Inserts, rep.Removes,
				time.Since(start).Round(time.Millisecond), cfg.Seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.Size, "size", "n", 10, "Length of the initial list")
	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "i", 100, "Number of rounds")
	cmd.Flags().IntVar(&cfg.Steps, "steps", 10, "Edits per round")
	cmd.Flags().BoolVar(&cfg.Mixed, "mixed", false, "Render entries in changing shapes")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "Random seed (default: current time)")

	return cmd
}
