package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jatin1628/Osdag-bridge-module/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, closeCatalog, err := openCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeCatalog(); err != nil {
				zap.L().Warn("close catalog", zap.Error(err))
			}
		}()

		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		zap.L().Info("starting bridge api",
			zap.String("addr", cfg.Server.Addr),
			zap.String("catalog", cfg.Catalog.Source),
		)
		return server.New(cfg, cat).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
