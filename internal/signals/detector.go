package signals

import (
	"github.com/spreadscan/spreadscan/internal/market"
)

// Signal categories.
const (
	CategoryTechnical = "technical"
	CategoryAnalyst   = "analyst"
)

// Signal is one independent graded observation about a price series. Many
// signals can coexist for a single evaluation; each carries its own points.
type Signal struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Points      int     `json:"points"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// Config holds thresholds, point values and capping rules for the detector.
type Config struct {
	RSIPeriod int `yaml:"rsi_period"` // Default: 14

	// Divergence scan parameters (shared by RSI and MACD histogram)
	DivergenceLookback  int     `yaml:"divergence_lookback"`    // Default: 20 bars
	SwingRadius         int     `yaml:"swing_radius"`           // Default: 2 bars each side
	SwingMinSeparation  int     `yaml:"swing_min_separation"`   // Default: 3 bars
	DivergenceMinDropPc float64 `yaml:"divergence_min_drop_pc"` // Default: 1.0 (% lower low)

	// MinBars is the detector's absolute minimum; shorter series yield an
	// empty result with score 0.
	MinBars int `yaml:"min_bars"` // Default: 20

	// MaxScore is the global ceiling after group capping.
	MaxScore int `yaml:"max_score"` // Default: 50

	// Groups maps signal name to its theme group; GroupCaps bounds the sum
	// of points within each group before the global cap applies.
	Groups    map[string]string `yaml:"groups"`
	GroupCaps map[string]int    `yaml:"group_caps"`
}

// DefaultConfig returns the production signal-detection configuration.
func DefaultConfig() *Config {
	return &Config{
		RSIPeriod:           14,
		DivergenceLookback:  20,
		SwingRadius:         2,
		SwingMinSeparation:  3,
		DivergenceMinDropPc: 1.0,
		MinBars:             20,
		MaxScore:            50,
		Groups: map[string]string{
			"rsi_zone":            "momentum",
			"rsi_divergence":      "momentum",
			"macd_divergence":     "momentum",
			"ma50_support_test":   "moving_average",
			"ma20_support_test":   "moving_average",
			"pullback_in_uptrend": "moving_average",
			"ma200_reclaim_setup": "moving_average",
			"adx_trend":           "trend",
			"range_52w_position":  "trend",
			"bollinger_position":  "volatility",
		},
		GroupCaps: map[string]int{
			"momentum":       20,
			"moving_average": 15,
			"trend":          12,
			"volatility":     8,
		},
	}
}

// Detector scans a price series and emits independent graded signals.
type Detector struct {
	config *Config
}

// NewDetector creates a signal detector; nil config selects defaults.
func NewDetector(config *Config) *Detector {
	if config == nil {
		config = DefaultConfig()
	}
	return &Detector{config: config}
}

// Detect runs every sub-signal against the series and returns the capped
// composite score plus the emitted signals. Sub-signals whose minimum
// bar-count requirement is unmet are skipped, not errors. A series shorter
// than MinBars yields (0, nil).
func (d *Detector) Detect(bars market.Series) (int, []Signal) {
	if len(bars) < d.config.MinBars {
		return 0, nil
	}

	closes := bars.Closes()
	var out []Signal
	checks := []func(market.Series, []float64) *Signal{
		d.rsiZone,
		d.rsiDivergence,
		d.macdDivergence,
		d.ma50SupportTest,
		d.ma20SupportTest,
		d.pullbackInUptrend,
		d.ma200ReclaimSetup,
		d.adxTrend,
		d.range52wPosition,
		d.bollingerPosition,
	}
	for _, check := range checks {
		if sig := check(bars, closes); sig != nil {
			out = append(out, *sig)
		}
	}

	return d.CappedScore(out), out
}

// CappedScore sums signal points with per-group caps applied first, then
// clamps the total to MaxScore. Applying it to an already-capped set is a
// no-op, so correlated weak signals inside one theme cannot outweigh a
// strong independent one.
func (d *Detector) CappedScore(sigs []Signal) int {
	groupTotals := make(map[string]int)
	for _, s := range sigs {
		group, ok := d.config.Groups[s.Name]
		if !ok {
			group = s.Name // Ungrouped signals cap on themselves
		}
		groupTotals[group] += s.Points
	}

	total := 0
	for group, sum := range groupTotals {
		if cap, ok := d.config.GroupCaps[group]; ok && sum > cap {
			sum = cap
		}
		total += sum
	}
	if total > d.config.MaxScore {
		total = d.config.MaxScore
	}
	return total
}
