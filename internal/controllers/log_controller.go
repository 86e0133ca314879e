package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
)

type LogController struct {
	Logs *services.LogService
}

func (l *LogController) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		logs []*models.AttendanceLog
		err  error
	)
	switch {
	case c.Query("date") != "":
		logs, err = l.Logs.ListByDate(ctx, c.Query("date"))
	case c.Query("schedule_id") != "":
		logs, err = l.Logs.ListBySchedule(ctx, c.Query("schedule_id"))
	default:
		logs, err = l.Logs.List(ctx)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

func (l *LogController) Get(c *gin.Context) {
	logRow, err := l.Logs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if logRow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	c.JSON(http.StatusOK, logRow)
}

type overrideStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// OverrideStatus lets an admin correct a log after the fact, for example
// excusing an absence.
func (l *LogController) OverrideStatus(c *gin.Context) {
	var req overrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logRow, err := l.Logs.SetStatus(c.Request.Context(), c.Param("id"), req.Status, req.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	if logRow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	c.JSON(http.StatusOK, logRow)
}

func (l *LogController) Delete(c *gin.Context) {
	existed, err := l.Logs.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
