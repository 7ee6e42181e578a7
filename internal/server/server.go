package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradethrust/internal/scan"
	"tradethrust/internal/watchlist"
)

// Server exposes the analysis pipeline over a small JSON API.
type Server struct {
	scan      *scan.Service
	watchlist *watchlist.Manager
	logger    *zap.Logger
	engine    *gin.Engine
	listen    string
	started   time.Time
}

// New builds the server and its routes.
func New(svc *scan.Service, wl *watchlist.Manager, listen string, debug bool, logger *zap.Logger) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		scan:      svc,
		watchlist: wl,
		logger:    logger,
		engine:    gin.New(),
		listen:    listen,
		started:   time.Now(),
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/analyze/:symbol", s.getAnalysis)
	s.engine.GET("/api/scan", s.getScan)
	s.engine.GET("/api/watchlist", s.getWatchlist)
	s.engine.POST("/api/watchlist/:symbol", s.addWatchlist)
	s.engine.DELETE("/api/watchlist/:symbol", s.removeWatchlist)
}

// Start blocks serving HTTP until the process exits.
func (s *Server) Start() error {
	s.logger.Info("starting api server", zap.String("listen", s.listen))
	return s.engine.Run(s.listen)
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"watchlist_size": len(s.watchlist.Symbols()),
	})
}

func (s *Server) getAnalysis(c *gin.Context) {
	symbol := c.Param("symbol")
	result, err := s.scan.AnalyzeSymbol(symbol)
	if err != nil {
		s.logger.Warn("api analyze failed", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getScan(c *gin.Context) {
	symbols := s.watchlist.Symbols()
	results := s.scan.ScanWatchlist(symbols, "api")
	c.JSON(http.StatusOK, gin.H{
		"scanned": len(symbols),
		"results": results,
	})
}

func (s *Server) getWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symbols": s.watchlist.Symbols()})
}

func (s *Server) addWatchlist(c *gin.Context) {
	symbol := c.Param("symbol")
	if err := s.watchlist.Add(symbol); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"symbols": s.watchlist.Symbols()})
}

func (s *Server) removeWatchlist(c *gin.Context) {
	symbol := c.Param("symbol")
	if err := s.watchlist.Remove(symbol); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbols": s.watchlist.Symbols()})
}
