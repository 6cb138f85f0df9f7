package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spreadscan/spreadscan/internal/engine"
	"github.com/spreadscan/spreadscan/internal/regime"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate SYMBOL",
		Short: "Evaluate one symbol and print the entry decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, asOf, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			symbol := args[0]
			ctx := cmd.Context()

			bars, err := store.Bars(ctx, symbol)
			if err != nil {
				return err
			}
			benchmarkBars, err := store.Bars(ctx, cfg.Benchmark)
			if err != nil {
				return err
			}
			candidates, err := store.Candidates(ctx, symbol)
			if err != nil {
				return err
			}
			sc, err := store.Context(ctx, symbol)
			if err != nil {
				return err
			}

			log.Info().Str("symbol", symbol).Int("bars", len(bars)).
				Int("candidates", len(candidates)).Msg("Evaluating entry")

			reg := regime.NewDetector(nil).Detect(benchmarkBars)
			decision := engine.New(nil).EvaluateEntry(engine.Input{
				Symbol:           symbol,
				AsOf:             asOf,
				Bars:             bars,
				Regime:           &reg,
				Candidates:       candidates,
				Strategy:         strategyFrom(cfg),
				SupportLevel:     sc.SupportLevel,
				DaysToEarnings:   sc.DaysToEarnings,
				Checklist:        engine.Checklist{Passed: sc.ChecklistPassed, Total: sc.ChecklistTotal},
				Momentum:         sc.Momentum,
				RelativeStrength: sc.RelativeStrength,
				Account: engine.AccountSettings{
					Size:           cfg.Account.Size,
					MaxRiskPercent: cfg.Account.MaxRiskPercent,
				},
			})

			fmt.Print(renderDecision(decision))
			return nil
		},
	}
	return cmd
}
