package scan

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradethrust/internal/cache"
	"tradethrust/internal/collector"
	"tradethrust/internal/engine"
	"tradethrust/internal/model"
	"tradethrust/internal/recorder"
)

// Service runs analyses end to end: fetch, analyze, cache, record. Symbol
// analyses are independent, so watchlist scans fan out across workers.
type Service struct {
	Collector *collector.Collector
	Engine    *engine.Engine
	Cache     cache.Cache // optional
	Recorder  recorder.Recorder
	Logger    *zap.Logger
	Workers   int
}

// AnalyzeSymbol fetches data for one symbol and runs the pipeline. Cached
// results are reused when the fetched series ends on the same bar.
func (s *Service) AnalyzeSymbol(symbol string) (*model.AnalysisResult, error) {
	series, bench, source, err := s.Collector.Collect(symbol)
	if err != nil {
		return nil, err
	}

	key := cacheKey(series)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			s.Logger.Debug("analysis cache hit", zap.String("symbol", symbol))
			return cached, nil
		}
	}

	result := s.Engine.Analyze(series, bench)
	if s.Cache != nil {
		s.Cache.Put(key, result)
	}
	if s.Recorder != nil {
		if err := s.Recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
			RunID:      uuid.NewString(),
			DataSource: source,
			Result:     result,
		}); err != nil {
			s.Logger.Error("record analysis", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	return result, nil
}

// ScanWatchlist analyzes every symbol concurrently and returns results
// ordered by composite score, best first. Failed symbols are logged and
// skipped. The whole run shares one run id in the recorder.
func (s *Service) ScanWatchlist(symbols []string, trigger string) []*model.AnalysisResult {
	runID := uuid.NewString()
	started := time.Now()

	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}

	type outcome struct {
		result *model.AnalysisResult
		source string
		err    error
	}
	outcomes := make([]outcome, len(symbols))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			series, bench, source, err := s.Collector.Collect(symbol)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return
			}
			key := cacheKey(series)
			if s.Cache != nil {
				if cached, ok := s.Cache.Get(key); ok {
					outcomes[i] = outcome{result: cached, source: source}
					return
				}
			}
			result := s.Engine.Analyze(series, bench)
			if s.Cache != nil {
				s.Cache.Put(key, result)
			}
			outcomes[i] = outcome{result: result, source: source}
		}(i, symbol)
	}
	wg.Wait()

	results := make([]*model.AnalysisResult, 0, len(symbols))
	errCount := 0
	for i, o := range outcomes {
		if o.err != nil {
			errCount++
			s.Logger.Warn("symbol scan failed", zap.String("symbol", symbols[i]), zap.Error(o.err))
			continue
		}
		results = append(results, o.result)
		if s.Recorder != nil {
			if err := s.Recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
				RunID:      runID,
				DataSource: o.source,
				Result:     o.result,
			}); err != nil {
				s.Logger.Error("record analysis", zap.String("symbol", symbols[i]), zap.Error(err))
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})

	run := &recorder.ScanRun{
		RunID:       runID,
		Trigger:     trigger,
		SymbolCount: len(symbols),
		ErrorCount:  errCount,
		DurationMs:  time.Since(started).Milliseconds(),
	}
	if len(results) > 0 {
		run.TopSymbol = results[0].Symbol
		run.TopComposite = results[0].CompositeScore
	}
	if s.Recorder != nil {
		if err := s.Recorder.RecordScanRun(run); err != nil {
			s.Logger.Error("record scan run", zap.Error(err))
		}
	}
	s.Logger.Info("watchlist scan complete",
		zap.String("run_id", runID),
		zap.Int("symbols", len(symbols)),
		zap.Int("errors", errCount),
		zap.Duration("took", time.Since(started)))
	return results
}

func cacheKey(series *model.PriceSeries) string {
	if series.Len() == 0 {
		return series.Symbol
	}
	return fmt.Sprintf("%s@%s#%d", series.Symbol, series.Last().Date.Format("2006-01-02"), series.Len())
}
