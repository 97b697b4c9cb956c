package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpDelivery "github.com/phetrack/pipeline/internal/delivery/http"
	"github.com/phetrack/pipeline/internal/infrastructure/cache"
	"github.com/phetrack/pipeline/internal/usecase"
)

func serveCommand() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a derived dataset over a read-only HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if dataset != "" {
				cfg.Server.DatasetPath = dataset
			}

			service := usecase.NewDatasetService(cache.NewMemoryCache(), cfg.Cache.TTL)
			if err := service.Load(cfg.Server.DatasetPath); err != nil {
				return err
			}
			log.Info("dataset loaded",
				zap.String("path", cfg.Server.DatasetPath),
				zap.Int("records", service.Len()))

			handler := httpDelivery.NewHandler(service)
			router := httpDelivery.SetupRouter(cfg, handler)

			addr := fmt.Sprintf(":%s", cfg.Server.Port)
			log.Info("server listening", zap.String("addr", addr))
			return router.Run(addr)
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "dataset CSV path (overrides config)")
	return cmd
}
