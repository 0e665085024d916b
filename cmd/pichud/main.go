// Command pichud is the interactive/CLI collaborator around the
// piengine core: it parses flags, renders progress, writes output, and
// prints memory-estimate messages, none of which the engine itself
// handles.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

func newLogger() *zap.Logger {
	var log *zap.Logger
	var err error
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		// Logger construction failing means stderr itself is unusable;
		// there is nothing sensible left to log to.
		fmt.Fprintln(os.Stderr, "pichud: could not initialize logger:", err)
		os.Exit(1)
	}
	return log
}

func main() {
	root := &cobra.Command{
		Use:   "pichud",
		Short: "Compute and search the decimal expansion of π",
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose development logging")

	root.AddCommand(newComputeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSearchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
