package collector

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"tradethrust/internal/model"
)

// Collector fetches the analysis inputs for a symbol: its own daily series
// plus the benchmark series used for relative strength.
type Collector struct {
	sources     *MultiSource
	benchmark   string
	historyDays int
	logger      *zap.Logger
}

// NewCollector wires the source chain. benchmark may be empty to disable
// benchmark-relative strength.
func NewCollector(sources *MultiSource, benchmark string, historyDays int, logger *zap.Logger) *Collector {
	return &Collector{
		sources:     sources,
		benchmark:   benchmark,
		historyDays: historyDays,
		logger:      logger,
	}
}

// Collect returns the symbol series, the benchmark series and the name of
// the source that served the symbol. A benchmark failure is logged and
// yields a nil benchmark rather than an error.
func (c *Collector) Collect(symbol string) (*model.PriceSeries, *model.PriceSeries, string, error) {
	series, source, err := c.sources.Fetch(symbol, c.historyDays)
	if err != nil {
		return nil, nil, "", fmt.Errorf("collect %s: %w", symbol, err)
	}
	series.FetchedAt = time.Now()

	var bench *model.PriceSeries
	if c.benchmark != "" && c.benchmark != symbol {
		bench, _, err = c.sources.Fetch(c.benchmark, c.historyDays)
		if err != nil {
			c.logger.Warn("benchmark fetch failed, relative strength will self-rank",
				zap.String("benchmark", c.benchmark),
				zap.Error(err))
			bench = nil
		}
	}
	return series, bench, source, nil
}
