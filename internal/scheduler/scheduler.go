package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tradethrust/internal/model"
	"tradethrust/internal/notifier"
	"tradethrust/internal/scan"
	"tradethrust/internal/watchlist"
)

// Scheduler runs the daily watchlist scan and serves chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Scan      *scan.Service
	Watchlist *watchlist.Manager
	Notifier  *notifier.TelegramNotifier // nil when telegram is not configured
	Logger    *zap.Logger
	Ctx       context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, svc *scan.Service, wl *watchlist.Manager, tn *notifier.TelegramNotifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Scan:      svc,
		Watchlist: wl,
		Notifier:  tn,
		Logger:    logger,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily scan.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}

// RunScanNow executes the daily scan immediately (manual trigger or
// RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.dailyScan()
}

func (s *Scheduler) dailyScan() {
	symbols := s.Watchlist.Symbols()
	s.Logger.Info("running daily scan", zap.Int("symbols", len(symbols)))
	if len(symbols) == 0 {
		return
	}

	results := s.Scan.ScanWatchlist(symbols, "scheduled")
	s.trySend(notifier.FormatScanSummary(results))

	// Actionable setups get their own full report.
	for _, r := range results {
		if r.Recommendation == model.StrongBuy || r.Recommendation == model.BuyOnBreakout {
			s.trySend(notifier.FormatAnalysisReport(r))
		}
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/scan":
		go s.dailyScan()
		return "Scanning watchlist..."
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		result, err := s.Scan.AnalyzeSymbol(fields[1])
		if err != nil {
			return fmt.Sprintf("❌ analyze %s: %v", strings.ToUpper(fields[1]), err)
		}
		return notifier.FormatAnalysisReport(result)
	case "/watchlist":
		symbols := s.Watchlist.Symbols()
		if len(symbols) == 0 {
			return "Watchlist is empty."
		}
		return "📋 Watchlist:\n" + strings.Join(symbols, "\n")
	case "/add":
		if len(fields) < 2 {
			return "Usage: /add SYMBOL"
		}
		if err := s.Watchlist.Add(fields[1]); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("Added %s", strings.ToUpper(fields[1]))
	case "/remove":
		if len(fields) < 2 {
			return "Usage: /remove SYMBOL"
		}
		if err := s.Watchlist.Remove(fields[1]); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("Removed %s", strings.ToUpper(fields[1]))
	default:
		return "Commands:\n• /scan\n• /analyze SYMBOL\n• /watchlist\n• /add SYMBOL\n• /remove SYMBOL"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
