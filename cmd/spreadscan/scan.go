package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spreadscan/spreadscan/internal/engine"
	"github.com/spreadscan/spreadscan/internal/regime"
	"github.com/spreadscan/spreadscan/internal/scan"
)

func scanCmd() *cobra.Command {
	var universeFile string
	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Screen many symbols and rank them by confidence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, asOf, err := loadSetup(cmd)
			if err != nil {
				return err
			}

			symbols := args
			if universeFile != "" {
				fromFile, err := readUniverse(universeFile)
				if err != nil {
					return err
				}
				symbols = append(symbols, fromFile...)
			}
			if len(symbols) == 0 {
				return fmt.Errorf("no symbols: pass them as arguments or via --universe")
			}

			ctx := cmd.Context()
			benchmarkBars, err := store.Bars(ctx, cfg.Benchmark)
			if err != nil {
				return err
			}
			reg := regime.NewDetector(nil).Detect(benchmarkBars)
			log.Info().Str("regime", string(reg.Regime)).Int("symbols", len(symbols)).
				Msg("Starting scan")

			screener := scan.NewScreener(scan.ScreenerOptions{
				Bars:     store,
				Chains:   store,
				Contexts: store,
				Strategy: strategyFrom(cfg),
				Account: engine.AccountSettings{
					Size:           cfg.Account.Size,
					MaxRiskPercent: cfg.Account.MaxRiskPercent,
				},
				Concurrency: cfg.Scan.Concurrency,
			})
			results := screener.Run(ctx, symbols, reg, asOf)

			fmt.Print(renderScan(results))
			return nil
		},
	}
	cmd.Flags().StringVar(&universeFile, "universe", "", "file with one symbol per line")
	return cmd
}

func readUniverse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening universe file: %w", err)
	}
	defer f.Close()

	var symbols []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	return symbols, scanner.Err()
}
