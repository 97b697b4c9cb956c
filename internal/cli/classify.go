package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phetrack/pipeline/internal/infrastructure/csvsink"
	"github.com/phetrack/pipeline/internal/infrastructure/fooddata"
	"github.com/phetrack/pipeline/internal/usecase"
)

func classifyCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "classify [dump files...]",
		Short: "Classify FoodData Central dumps and derive phe values",
		Long: `Streams one or more FoodData Central dump files, classifies every
record with the rule-based category engine, derives phenylalanine from
protein where the source does not report it, and writes one CSV row per
record. Input files default to the configured list when no arguments are
given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if output != "" {
				cfg.Classify.Output = output
			}
			inputs := cfg.Classify.Inputs
			if len(args) > 0 {
				inputs = args
			}

			sink, err := csvsink.New(cfg.Classify.Output, ',', usecase.ClassifyHeader)
			if err != nil {
				return err
			}
			defer sink.Close()

			service := usecase.NewClassifyService(fooddata.NewStreamer(), sink, log)

			written, err := service.Run(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			if err := sink.Close(); err != nil {
				return err
			}

			log.Info("classification complete",
				zap.Int("rows", written),
				zap.String("output", cfg.Classify.Output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (overrides config)")
	return cmd
}
