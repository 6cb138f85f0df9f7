package main

import (
	"fmt"
	"strings"

	"github.com/spreadscan/spreadscan/internal/engine"
	"github.com/spreadscan/spreadscan/internal/scan"
)

func renderDecision(d engine.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", d.Symbol, strings.ToUpper(string(d.Action)))
	fmt.Fprintf(&b, "Confidence: %.0f (%s) | Regime: %s | Score: %d\n",
		d.Confidence.Total, d.Confidence.Level, d.Regime.Regime, d.StockScore)

	if d.Spread != nil {
		fmt.Fprintf(&b, "Spread: %s %.0f/%.0f for %.2f, %d DTE",
			d.Spread.Type, d.Spread.LongStrike, d.Spread.ShortStrike, d.Spread.Premium(), d.Spread.DTE)
		if d.SpreadScore != nil {
			fmt.Fprintf(&b, ", quality %.0f (%s)", d.SpreadScore.Total, d.SpreadScore.Rating)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Sizing: %s (%d contracts, $%.0f at risk)\n",
		d.Sizing.Size, d.Sizing.MaxContracts, d.Sizing.MaxRiskDollars)

	writeSection(&b, "Reasoning", d.Reasoning)
	writeSection(&b, "Entry guidance", d.EntryGuidance)
	writeSection(&b, "Risk management", d.RiskManagement)
	writeSection(&b, "Warnings", d.Warnings)
	return b.String()
}

func renderScan(results []scan.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-18s %10s %8s %10s\n", "SYMBOL", "ACTION", "CONFIDENCE", "SCORE", "CONTRACTS")
	for _, r := range results {
		if r.Decision == nil {
			reason := "no data"
			if r.Err != nil {
				reason = "provider error"
			}
			fmt.Fprintf(&b, "%-8s %-18s %s\n", r.Symbol, "skipped", reason)
			continue
		}
		d := r.Decision
		fmt.Fprintf(&b, "%-8s %-18s %10.0f %8d %10d\n",
			r.Symbol, d.Action, d.Confidence.Total, d.StockScore, d.Sizing.MaxContracts)
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "  - %s\n", line)
	}
}
