package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/attendance"
	"github.com/famsdev/fams_backend/internal/metrics"
	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/ws"
)

// RecognitionController is the surface the face-recognition client calls.
// That caller retries and double-fires, so every write here leans on the
// attendance machine's idempotence.
type RecognitionController struct {
	Machine   *attendance.Machine
	Schedules *services.ScheduleService
	Hub       *ws.LiveHub
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts.Local(), true
}

type timeInRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required"`
	Timestamp  string `json:"timestamp"`
	Late       bool   `json:"late"`
}

func (r *RecognitionController) TimeIn(c *gin.Context) {
	var req timeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC3339"})
		return
	}

	logRow, err := r.Machine.TimeIn(c.Request.Context(), req.ScheduleID, ts, req.Late)
	if err != nil {
		if errors.Is(err, attendance.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		fail(c, err)
		return
	}

	metrics.TimeIns.WithLabelValues(logRow.Status).Inc()
	r.Hub.Broadcast(attendanceEvent("time_in", logRow))
	c.JSON(http.StatusOK, logRow)
}

type timeOutRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required"`
	Timestamp  string `json:"timestamp"`
}

func (r *RecognitionController) TimeOut(c *gin.Context) {
	var req timeOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC3339"})
		return
	}

	logRow, err := r.Machine.TimeOut(c.Request.Context(), req.ScheduleID, ts)
	if err != nil {
		if errors.Is(err, attendance.ErrTimeInNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		fail(c, err)
		return
	}

	metrics.TimeOuts.WithLabelValues(logRow.Status).Inc()
	r.Hub.Broadcast(attendanceEvent("time_out", logRow))
	c.JSON(http.StatusOK, logRow)
}

type unscheduledRequest struct {
	InstructorID string `json:"instructor_id" binding:"required"`
	Timestamp    string `json:"timestamp"`
	CameraID     string `json:"camera_id"`
}

func (r *RecognitionController) Unscheduled(c *gin.Context) {
	var req unscheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC3339"})
		return
	}

	logRow, err := r.Machine.LogUnscheduled(c.Request.Context(), req.InstructorID, ts, req.CameraID)
	if err != nil {
		fail(c, err)
		return
	}
	r.Hub.Broadcast(attendanceEvent("no_schedule", logRow))
	c.JSON(http.StatusOK, logRow)
}

type resolveRequest struct {
	Name      string `json:"name" binding:"required"`
	Room      string `json:"room"`
	Timestamp string `json:"timestamp"`
}

// Resolve answers whether the recognized person is on schedule right now.
func (r *RecognitionController) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC3339"})
		return
	}

	res, err := r.Machine.ResolveCurrent(c.Request.Context(), req.Name, req.Room, ts)
	if err != nil {
		fail(c, err)
		return
	}
	metrics.Resolutions.WithLabelValues(string(res.Outcome)).Inc()
	c.JSON(http.StatusOK, res)
}

// ListSchedules serves the recognition client's local schedule cache.
// Optional start and end date bounds narrow it to schedules whose semester
// overlaps that window.
func (r *RecognitionController) ListSchedules(c *gin.Context) {
	instructorID := c.Query("instructor_id")
	if instructorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instructor_id is required"})
		return
	}
	var (
		schedules []*models.Schedule
		err       error
	)
	if start, end := c.Query("start"), c.Query("end"); start != "" && end != "" {
		schedules, err = r.Schedules.ListByInstructorWindow(c.Request.Context(), instructorID, start, end)
	} else {
		schedules, err = r.Schedules.ListByInstructor(c.Request.Context(), instructorID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules, "count": len(schedules)})
}

func attendanceEvent(kind string, l *models.AttendanceLog) ws.AttendancePayload {
	return ws.AttendancePayload{
		Type:           kind,
		LogID:          l.ID,
		ScheduleID:     l.ScheduleID,
		InstructorID:   l.InstructorID,
		InstructorName: l.InstructorName,
		Course:         l.Course,
		Date:           l.Date,
		Status:         l.Status,
		TimeIn:         l.TimeIn,
		TimeOut:        l.TimeOut,
	}
}
