package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spreadscan/spreadscan/internal/config"
	"github.com/spreadscan/spreadscan/internal/providers"
	"github.com/spreadscan/spreadscan/internal/spread"
)

// loadSetup resolves config, data store and as-of date from the persistent
// flags shared by every subcommand.
func loadSetup(cmd *cobra.Command) (*config.Config, *providers.FileStore, time.Time, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, nil, time.Time{}, err
		}
		cfg = loaded
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("invalid --as-of %q: %w", raw, err)
		}
		asOf = parsed
	}

	return cfg, providers.NewFileStore(cfg.DataDir), asOf, nil
}

func strategyFrom(cfg *config.Config) spread.Type {
	if cfg.Strategy == "debit" {
		return spread.Debit
	}
	return spread.Credit
}
