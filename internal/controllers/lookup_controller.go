package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
)

// LookupController covers the reference entities schedules and users hang
// off: colleges, courses, sections, rooms and semesters.
type LookupController struct {
	Colleges  *services.CollegeService
	Courses   *services.CourseService
	Sections  *services.SectionService
	Rooms     *services.RoomService
	Semesters *services.SemesterService
}

// Colleges

type collegeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (l *LookupController) CreateCollege(c *gin.Context) {
	var req collegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	college := &models.College{Code: req.Code, Name: req.Name}
	if err := l.Colleges.Create(c.Request.Context(), college); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, college)
}

func (l *LookupController) ListColleges(c *gin.Context) {
	colleges, err := l.Colleges.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": colleges, "count": len(colleges)})
}

func (l *LookupController) GetCollege(c *gin.Context) {
	college, err := l.Colleges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if college == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "college not found"})
		return
	}
	c.JSON(http.StatusOK, college)
}

func (l *LookupController) UpdateCollege(c *gin.Context) {
	college, err := l.Colleges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if college == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "college not found"})
		return
	}
	var req collegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	college.Code = req.Code
	college.Name = req.Name
	if err := l.Colleges.Update(c.Request.Context(), college); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, college)
}

func (l *LookupController) DeleteCollege(c *gin.Context) {
	existed, err := l.Colleges.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "college not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Courses

type courseRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	CollegeID string `json:"college_id"`
}

func (l *LookupController) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course := &models.Course{Code: req.Code, Name: req.Name, CollegeID: req.CollegeID}
	if err := l.Courses.Create(c.Request.Context(), course); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (l *LookupController) ListCourses(c *gin.Context) {
	var (
		courses []*models.Course
		err     error
	)
	if collegeID := c.Query("college_id"); collegeID != "" {
		courses, err = l.Courses.ListByCollege(c.Request.Context(), collegeID)
	} else {
		courses, err = l.Courses.List(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (l *LookupController) GetCourse(c *gin.Context) {
	course, err := l.Courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (l *LookupController) UpdateCourse(c *gin.Context) {
	course, err := l.Courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course.Code = req.Code
	course.Name = req.Name
	course.CollegeID = req.CollegeID
	if err := l.Courses.Update(c.Request.Context(), course); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (l *LookupController) DeleteCourse(c *gin.Context) {
	existed, err := l.Courses.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Sections

type sectionRequest struct {
	CollegeID string `json:"college_id"`
	CourseID  string `json:"course_id"`
	Level     string `json:"level" binding:"required"`
	Block     string `json:"block" binding:"required"`
}

func (l *LookupController) CreateSection(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	section := &models.Section{CollegeID: req.CollegeID, CourseID: req.CourseID, Level: req.Level, Block: req.Block}
	if err := l.Sections.Create(c.Request.Context(), section); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (l *LookupController) ListSections(c *gin.Context) {
	var (
		sections []*models.Section
		err      error
	)
	if courseID := c.Query("course_id"); courseID != "" {
		sections, err = l.Sections.ListByCourse(c.Request.Context(), courseID)
	} else {
		sections, err = l.Sections.List(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "count": len(sections)})
}

func (l *LookupController) DeleteSection(c *gin.Context) {
	existed, err := l.Sections.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Rooms

type roomRequest struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location"`
	CollegeID string `json:"college_id"`
}

func (l *LookupController) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room := &models.Room{Name: req.Name, Location: req.Location, CollegeID: req.CollegeID}
	if err := l.Rooms.Create(c.Request.Context(), room); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (l *LookupController) ListRooms(c *gin.Context) {
	rooms, err := l.Rooms.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}

func (l *LookupController) UpdateRoom(c *gin.Context) {
	room, err := l.Rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.Name = req.Name
	room.Location = req.Location
	room.CollegeID = req.CollegeID
	if err := l.Rooms.Update(c.Request.Context(), room); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (l *LookupController) DeleteRoom(c *gin.Context) {
	existed, err := l.Rooms.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Semesters

type semesterRequest struct {
	Label        string `json:"label" binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

func (l *LookupController) CreateSemester(c *gin.Context) {
	var req semesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	semester := &models.Semester{Label: req.Label, AcademicYear: req.AcademicYear, StartDate: req.StartDate, EndDate: req.EndDate}
	if err := l.Semesters.Create(c.Request.Context(), semester); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, semester)
}

func (l *LookupController) ListSemesters(c *gin.Context) {
	semesters, err := l.Semesters.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"semesters": semesters, "count": len(semesters)})
}

func (l *LookupController) GetActiveSemester(c *gin.Context) {
	semester, err := l.Semesters.GetActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if semester == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active semester"})
		return
	}
	c.JSON(http.StatusOK, semester)
}

func (l *LookupController) ActivateSemester(c *gin.Context) {
	semester, err := l.Semesters.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if semester == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "semester not found"})
		return
	}
	c.JSON(http.StatusOK, semester)
}

func (l *LookupController) DeleteSemester(c *gin.Context) {
	existed, err := l.Semesters.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "semester not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
