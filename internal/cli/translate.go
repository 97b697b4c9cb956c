package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phetrack/pipeline/internal/infrastructure/translate"
	"github.com/phetrack/pipeline/internal/usecase"
)

func translateCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a derived dataset into the target language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if input != "" {
				cfg.Translate.Input = input
			}
			if output != "" {
				cfg.Translate.Output = output
			}

			client := translate.NewClient(translate.Config{
				Endpoint:   cfg.Translate.Endpoint,
				TargetLang: cfg.Translate.TargetLang,
				MaxRetries: cfg.Translate.MaxRetries,
				RetryPause: cfg.Translate.RetryPause,
				Timeout:    cfg.Translate.Timeout,
			}, log)

			service := usecase.NewTranslateService(client, log)

			written, err := service.Run(cmd.Context(), cfg.Translate.Input, cfg.Translate.Output)
			if err != nil {
				return err
			}

			log.Info("translate complete",
				zap.Int("rows", written),
				zap.String("output", cfg.Translate.Output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV path (overrides config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (overrides config)")
	return cmd
}
