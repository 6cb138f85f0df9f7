package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/market"
	"github.com/spreadscan/spreadscan/internal/spread"
)

// FileStore serves bars, chains and context from JSON snapshot files in one
// directory: <SYMBOL>_bars.json, <SYMBOL>_chain.json, <SYMBOL>_context.json.
// Missing files mean no data, not an error.
type FileStore struct {
	dir string
}

// NewFileStore creates a snapshot-directory provider.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Bars implements BarProvider.
func (fsr *FileStore) Bars(_ context.Context, symbol string) (market.Series, error) {
	var bars market.Series
	ok, err := fsr.readJSON(symbol, "bars", &bars)
	if err != nil || !ok {
		return nil, err
	}
	return bars, nil
}

// Candidates implements ChainProvider.
func (fsr *FileStore) Candidates(_ context.Context, symbol string) ([]spread.Candidate, error) {
	var chain []spread.Candidate
	ok, err := fsr.readJSON(symbol, "chain", &chain)
	if err != nil || !ok {
		return nil, err
	}
	return chain, nil
}

// Context implements ContextProvider. Without a context file the symbol
// gets a neutral default: no known earnings, stable trends.
func (fsr *FileStore) Context(_ context.Context, symbol string) (StockContext, error) {
	sc := StockContext{
		DaysToEarnings:   -1,
		Momentum:         confidence.Stable,
		RelativeStrength: confidence.Stable,
	}
	_, err := fsr.readJSON(symbol, "context", &sc)
	return sc, err
}

func (fsr *FileStore) readJSON(symbol, kind string, v interface{}) (bool, error) {
	path := filepath.Join(fsr.dir, fmt.Sprintf("%s_%s.json", strings.ToUpper(symbol), kind))
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}
