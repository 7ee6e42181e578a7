package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			data_source        TEXT,
			bars_analyzed      INTEGER,
			insufficient_data  INTEGER,
			current_price      REAL,
			trend_score        INTEGER,
			trend_total        INTEGER,
			trend_passed       INTEGER,
			rs_source          TEXT,
			rs_value           REAL,
			contraction_count  INTEGER,
			vcp_detected       INTEGER,
			vcp_confidence     REAL,
			base_weeks         REAL,
			pivot              REAL,
			breakout_confirmed INTEGER,
			breakout_score     INTEGER,
			composite_score    REAL,
			buy_point          REAL,
			stop_loss          REAL,
			target1            REAL,
			target2            REAL,
			target3            REAL,
			reward_risk        REAL,
			position_size      INTEGER,
			risk_acceptable    INTEGER,
			recommendation     TEXT,
			rationale          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_run ON analyses(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_runs (
			run_id        TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			trigger_type  TEXT,
			symbol_count  INTEGER,
			error_count   INTEGER,
			duration_ms   INTEGER,
			top_symbol    TEXT,
			top_composite REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_runs_ts ON scan_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := snap.Result
	_, err := r.db.Exec(`INSERT INTO analyses
		(run_id, timestamp, symbol, data_source, bars_analyzed, insufficient_data,
		 current_price, trend_score, trend_total, trend_passed, rs_source, rs_value,
		 contraction_count, vcp_detected, vcp_confidence, base_weeks, pivot,
		 breakout_confirmed, breakout_score, composite_score,
		 buy_point, stop_loss, target1, target2, target3,
		 reward_risk, position_size, risk_acceptable, recommendation, rationale)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.RunID, time.Now().Unix(), res.Symbol, snap.DataSource,
		res.BarsAnalyzed, boolToInt(res.InsufficientData),
		res.CurrentPrice, res.TrendScore, res.TrendTotal, boolToInt(res.TrendPassed),
		string(res.RS.Source), res.RS.Value,
		len(res.Contractions), boolToInt(res.VCPDetected), res.VCPConfidence,
		res.BaseWeeks, res.Pivot,
		boolToInt(res.BreakoutConfirmed), res.BreakoutScore, res.CompositeScore,
		res.Plan.BuyPoint, res.Plan.StopLoss,
		res.Plan.Targets[0], res.Plan.Targets[1], res.Plan.Targets[2],
		res.Plan.RewardRiskRatio, res.Plan.PositionSize, boolToInt(res.Plan.RiskAcceptable),
		string(res.Recommendation), res.Rationale,
	)
	return err
}

func (r *SQLiteRecorder) RecordScanRun(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(run_id, timestamp, trigger_type, symbol_count, error_count, duration_ms, top_symbol, top_composite)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), run.Trigger,
		run.SymbolCount, run.ErrorCount, run.DurationMs,
		run.TopSymbol, run.TopComposite,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
