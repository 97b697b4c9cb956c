package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phetrack/pipeline/internal/infrastructure/csvsink"
	"github.com/phetrack/pipeline/internal/infrastructure/openfoodfacts"
	"github.com/phetrack/pipeline/internal/usecase"
)

func fetchCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the remote product catalog into a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if output != "" {
				cfg.Fetch.Output = output
			}

			sink, err := csvsink.New(cfg.Fetch.Output, ';', usecase.FetchHeader)
			if err != nil {
				return err
			}
			defer sink.Close()

			client := openfoodfacts.NewClient(openfoodfacts.Config{
				BaseURL:      cfg.Fetch.BaseURL,
				Country:      cfg.Fetch.Country,
				PageSize:     cfg.Fetch.PageSize,
				MaxRetries:   cfg.Fetch.MaxRetries,
				RetryBackoff: cfg.Fetch.RetryBackoff,
				Throttle:     cfg.Fetch.Throttle,
				Timeout:      cfg.Fetch.Timeout,
			}, log)

			service := usecase.NewFetchService(client, sink, usecase.FetchConfig{
				PageSize: cfg.Fetch.PageSize,
				PageCap:  cfg.Fetch.PageCap,
			}, log)

			written, err := service.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := sink.Close(); err != nil {
				return err
			}

			log.Info("fetch complete",
				zap.Int("rows", written),
				zap.String("output", cfg.Fetch.Output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (overrides config)")
	return cmd
}
