package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spreadscan/spreadscan/internal/regime"
)

func regimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regime",
		Short: "Classify the current market regime from the benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, _, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			bars, err := store.Bars(cmd.Context(), cfg.Benchmark)
			if err != nil {
				return err
			}
			result := regime.NewDetector(nil).Detect(bars)

			fmt.Printf("Regime: %s (confidence %.0f%%)\n", result.Regime, result.Confidence*100)
			for _, s := range result.Signals {
				fmt.Printf("  %-16s %8.3f  %s (weight %.1f)\n", s.Name, s.Value, s.Signal, s.Weight)
			}
			fmt.Printf("Adjustments: min score %.0f, size x%.2f, grade-A only: %t\n",
				result.Adjustments.MinScore, result.Adjustments.PositionMultiplier,
				result.Adjustments.OnlyGradeA)
			return nil
		},
	}
}
