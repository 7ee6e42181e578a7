package collector

import (
	"fmt"

	"go.uber.org/zap"

	"tradethrust/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	Name() string
}

// MultiSource tries a list of fetchers in order and returns the first
// successful series tagged with the source that produced it.
type MultiSource struct {
	sources []Fetcher
	logger  *zap.Logger
}

// NewMultiSource builds a source chain. The logger may not be nil.
func NewMultiSource(logger *zap.Logger, sources ...Fetcher) *MultiSource {
	return &MultiSource{sources: sources, logger: logger}
}

// Fetch returns the series and the name of the source that served it.
func (m *MultiSource) Fetch(symbol string, days int) (*model.PriceSeries, string, error) {
	if len(m.sources) == 0 {
		return nil, "", fmt.Errorf("no data sources configured")
	}
	var lastErr error
	for _, src := range m.sources {
		bars, err := src.FetchDailyBars(symbol, days)
		if err != nil {
			m.logger.Warn("data source failed",
				zap.String("source", src.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			lastErr = err
			continue
		}
		if len(bars) == 0 {
			m.logger.Warn("data source returned no bars",
				zap.String("source", src.Name()),
				zap.String("symbol", symbol))
			lastErr = fmt.Errorf("%s: no bars for %s", src.Name(), symbol)
			continue
		}
		series := &model.PriceSeries{Symbol: symbol, Bars: bars}
		return series, src.Name(), nil
	}
	return nil, "", fmt.Errorf("all sources failed for %s: %w", symbol, lastErr)
}
