package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/metrics"
	"github.com/famsdev/fams_backend/internal/store/localstore"
	"github.com/famsdev/fams_backend/internal/syncengine"
)

// SyncController exposes the synchronization flows. Engine is nil when the
// process booted offline; every flow then reports the missing remote rather
// than pretending to run.
type SyncController struct {
	Engine *syncengine.Engine
	Local  *localstore.Store
}

func (s *SyncController) run(c *gin.Context, flow string, fn func() (*syncengine.Report, error)) {
	if s.Engine == nil {
		metrics.SyncRuns.WithLabelValues(flow, "unavailable").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no remote store configured in offline mode"})
		return
	}
	rep, err := fn()
	if err != nil {
		metrics.SyncRuns.WithLabelValues(flow, "failed").Inc()
		fail(c, err)
		return
	}
	result := "ok"
	if rep.Partial {
		result = "partial"
		metrics.SyncRowErrors.WithLabelValues(flow).Add(float64(len(rep.Errors)))
	}
	metrics.SyncRuns.WithLabelValues(flow, result).Inc()
	c.JSON(http.StatusOK, rep)
}

// Hydrate pulls every entity down from the remote store into the mirror.
func (s *SyncController) Hydrate(c *gin.Context) {
	s.run(c, "hydrate", func() (*syncengine.Report, error) {
		return s.Engine.Hydrate(c.Request.Context())
	})
}

// FlushLogs pushes queued attendance logs up to the remote store.
func (s *SyncController) FlushLogs(c *gin.Context) {
	s.run(c, "flush_logs", func() (*syncengine.Report, error) {
		return s.Engine.FlushLogs(c.Request.Context())
	})
}

// FlushChanges replays queued offline mutations against the remote store.
func (s *SyncController) FlushChanges(c *gin.Context) {
	s.run(c, "flush_changes", func() (*syncengine.Report, error) {
		return s.Engine.FlushChanges(c.Request.Context())
	})
}

// PurgeLogs trims synced log rows from the mirror. The remote store keeps
// the full history; the mirror only needs what local reporting reads.
func (s *SyncController) PurgeLogs(c *gin.Context) {
	olderThan := 30 * 24 * time.Hour
	if raw := c.Query("older_than"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "older_than must be a positive duration such as 720h"})
			return
		}
		olderThan = d
	}
	purged, err := s.Local.PurgeSyncedLogs(c.Request.Context(), olderThan)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

// Status reports mirror row counts and outstanding sync work.
func (s *SyncController) Status(c *gin.Context) {
	stats, err := s.Local.GetStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"online": s.Engine != nil,
		"local":  stats,
	})
}
