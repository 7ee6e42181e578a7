package recorder

import "tradethrust/internal/model"

// AnalysisSnapshot is one recorded analysis, tagged with the scan run it
// belongs to and the data source that served the bars.
type AnalysisSnapshot struct {
	RunID      string
	DataSource string
	Result     *model.AnalysisResult
}

// ScanRun summarizes one watchlist scan.
type ScanRun struct {
	RunID        string
	Trigger      string // "scheduled", "manual", "api"
	SymbolCount  int
	ErrorCount   int
	DurationMs   int64
	TopSymbol    string
	TopComposite float64
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecordScanRun(run *ScanRun) error
	Close() error
}
