package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dandersen/pichud/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a π compute/search HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			log.Info("listening", zap.String("addr", addr))
			return httpapi.ListenAndServe(cmd.Context(), addr, log, origins)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":1415", "address to listen on")
	cmd.Flags().StringSliceVar(&origins, "allowed-origin", nil, "CORS-allowed origins")

	return cmd
}
