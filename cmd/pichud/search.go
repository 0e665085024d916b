package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dandersen/pichud/internal/digitstore"
	"github.com/dandersen/pichud/internal/piengine"
)

func newSearchCmd() *cobra.Command {
	var (
		digits uint64
		from   string
		start  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for a digit sequence within π",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			var store *digitstore.Store
			if from != "" {
				s, err := digitstore.Open(from)
				if err != nil {
					return fmt.Errorf("opening %s: %w", from, err)
				}
				defer s.Close()
				store = s
			} else {
				result, err := piengine.ComputePi(cmd.Context(), digits, 0, nil)
				if err != nil {
					return err
				}
				s, err := digitstore.Build(result)
				if err != nil {
					return err
				}
				store = s
			}

			found, pos, nMatches := store.Search(start, args[0])
			log.Info("search complete",
				zap.Bool("found", found),
				zap.Int("position", pos),
				zap.Int("matches", nMatches),
			)
			fmt.Println("found:", found)
			fmt.Println("position:", pos)
			fmt.Println("matches:", nMatches)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&digits, "digits", 100_000, "digits to compute before searching (ignored with --from)")
	cmd.Flags().StringVar(&from, "from", "", "reuse a digit store previously written by `pichud compute --save-store`, instead of recomputing")
	cmd.Flags().IntVar(&start, "start", 0, "search starting at this position")

	return cmd
}
