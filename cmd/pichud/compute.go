package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dandersen/pichud/internal/digitstore"
	"github.com/dandersen/pichud/internal/memestimate"
	"github.com/dandersen/pichud/internal/piengine"
)

func newComputeCmd() *cobra.Command {
	var (
		digits      uint64
		parallelism uint32
		output      string
		saveStore   string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute π to the requested number of decimal digits",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			if warn := memestimate.Warning(digits); warn != "" {
				log.Warn(warn)
			}
			log.Info("starting computation",
				zap.Uint64("digits", digits),
				zap.Uint32("parallelism", parallelism),
			)

			var phaseMu sync.Mutex
			lastPhase := piengine.Phase(-1)
			progress := func(phase piengine.Phase, fraction float64) {
				phaseMu.Lock()
				defer phaseMu.Unlock()
				if phase != lastPhase {
					log.Info("phase started", zap.String("phase", phase.String()))
					lastPhase = phase
				}
				if fraction >= 1.0 {
					log.Info("phase complete", zap.String("phase", phase.String()))
				}
			}

			result, err := piengine.ComputePi(cmd.Context(), digits, parallelism, progress)
			if err != nil {
				return err
			}

			if saveStore != "" {
				store, err := digitstore.Build(result)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Save(saveStore); err != nil {
					return err
				}
				log.Info("saved digit store", zap.String("path", saveStore))
			}

			if output == "" {
				fmt.Println(result)
				return nil
			}
			return os.WriteFile(output, []byte(result+"\n"), 0o644)
		},
	}

	cmd.Flags().Uint64Var(&digits, "digits", 100, "number of decimal digits of π to compute")
	cmd.Flags().Uint32Var(&parallelism, "parallelism", 0, "worker count (0 = use all CPUs)")
	cmd.Flags().StringVar(&output, "output", "", "write the result to this file instead of stdout")
	cmd.Flags().StringVar(&saveStore, "save-store", "", "also BCD-pack and save a digitstore at this path, for `pichud search --from`")

	return cmd
}
