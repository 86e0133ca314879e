package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/syncengine"
)

// ScheduleController serves schedule CRUD and the semester re-upload. The
// engine is nil in offline mode; the replace flow then runs directly against
// the bound store and its changes queue for the next flush.
type ScheduleController struct {
	Schedules *services.ScheduleService
	Store     store.Store
	Engine    *syncengine.Engine
	Log       zerolog.Logger
}

type scheduleRequest struct {
	CourseCode    string          `json:"course_code" binding:"required"`
	CourseTitle   string          `json:"course_title"`
	InstructorID  string          `json:"instructor_id" binding:"required"`
	SectionID     string          `json:"section_id"`
	Room          string          `json:"room" binding:"required"`
	StartTime     string          `json:"start_time" binding:"required"`
	EndTime       string          `json:"end_time" binding:"required"`
	Days          models.DayMask  `json:"days" binding:"required"`
	SemesterStart string          `json:"semester_start" binding:"required"`
	SemesterEnd   string          `json:"semester_end" binding:"required"`
}

func (r *scheduleRequest) toModel() *models.Schedule {
	return &models.Schedule{
		CourseCode:    r.CourseCode,
		CourseTitle:   r.CourseTitle,
		InstructorID:  r.InstructorID,
		SectionID:     r.SectionID,
		Room:          r.Room,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Days:          r.Days,
		SemesterStart: r.SemesterStart,
		SemesterEnd:   r.SemesterEnd,
	}
}

func (s *ScheduleController) Create(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sch := req.toModel()
	if err := s.Schedules.Create(c.Request.Context(), sch); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sch)
}

func (s *ScheduleController) List(c *gin.Context) {
	var (
		schedules []*models.Schedule
		err       error
	)
	if instructorID := c.Query("instructor_id"); instructorID != "" {
		schedules, err = s.Schedules.ListByInstructor(c.Request.Context(), instructorID)
	} else {
		schedules, err = s.Schedules.List(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules, "count": len(schedules)})
}

func (s *ScheduleController) Get(c *gin.Context) {
	sch, err := s.Schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	c.JSON(http.StatusOK, sch)
}

func (s *ScheduleController) Update(c *gin.Context) {
	sch, err := s.Schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated := req.toModel()
	updated.ID = sch.ID
	updated.CreatedAt = sch.CreatedAt
	if err := s.Schedules.Update(c.Request.Context(), updated); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *ScheduleController) Delete(c *gin.Context) {
	existed, err := s.Schedules.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type replaceRequest struct {
	InstructorID string            `json:"instructor_id" binding:"required"`
	Schedules    []scheduleRequest `json:"schedules" binding:"required,min=1"`
}

// Replace swaps an instructor's schedules for a re-uploaded set, remapping
// attendance logs onto the new rows by structural identity. All incoming
// rows are validated before anything is written.
func (s *ScheduleController) Replace(c *gin.Context) {
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incoming := make([]*models.Schedule, 0, len(req.Schedules))
	for i := range req.Schedules {
		sch := req.Schedules[i].toModel()
		sch.InstructorID = req.InstructorID
		if err := s.Schedules.Validate(c.Request.Context(), sch); err != nil {
			fail(c, err)
			return
		}
		incoming = append(incoming, sch)
	}

	var (
		rep *syncengine.RemapReport
		err error
	)
	if s.Engine != nil {
		rep, err = s.Engine.ReplaceSchedules(c.Request.Context(), req.InstructorID, incoming)
	} else {
		rep, err = syncengine.ReplaceSchedules(c.Request.Context(), s.Store, s.Log, req.InstructorID, incoming)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
