package localstore

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/famsdev/fams_backend/internal/models"
)

// Row types are the physical SQLite shapes. They never leave this package;
// every exported method translates to and from the canonical models.

type userRow struct {
	ID         string `gorm:"primaryKey"`
	FirstName  string
	MiddleName string
	LastName   string
	ExtName    string
	Username   string `gorm:"uniqueIndex"`
	Email      string `gorm:"index"`
	Password   string
	Role       string `gorm:"index"`
	Status     string
	CollegeID  string `gorm:"index"`
	CourseID   string `gorm:"index"`

	FacePath       string
	CapturedImages datatypes.JSON

	HighestEducationalAttainment string
	AcademicRank                 string
	StatusOfAppointment          string
	NumberOfPrep                 int
	TotalTeachingLoad            int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toUserRow(u *models.User) (*userRow, error) {
	var captured datatypes.JSON
	if len(u.CapturedImages) > 0 {
		raw, err := json.Marshal(u.CapturedImages)
		if err != nil {
			return nil, err
		}
		captured = datatypes.JSON(raw)
	}
	return &userRow{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		ExtName:    u.ExtName,
		Username:   u.Username,
		Email:      u.Email,
		Password:   u.Password,
		Role:       u.Role,
		Status:     u.Status,
		CollegeID:  u.CollegeID,
		CourseID:   u.CourseID,

		FacePath:       u.FacePath,
		CapturedImages: captured,

		HighestEducationalAttainment: u.HighestEducationalAttainment,
		AcademicRank:                 u.AcademicRank,
		StatusOfAppointment:          u.StatusOfAppointment,
		NumberOfPrep:                 u.NumberOfPrep,
		TotalTeachingLoad:            u.TotalTeachingLoad,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (r *userRow) toModel() (*models.User, error) {
	var captured []models.CapturedImage
	if len(r.CapturedImages) > 0 {
		if err := json.Unmarshal(r.CapturedImages, &captured); err != nil {
			return nil, err
		}
	}
	return &models.User{
		ID:         r.ID,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		ExtName:    r.ExtName,
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		Role:       r.Role,
		Status:     r.Status,
		CollegeID:  r.CollegeID,
		CourseID:   r.CourseID,

		FacePath:       r.FacePath,
		CapturedImages: captured,

		HighestEducationalAttainment: r.HighestEducationalAttainment,
		AcademicRank:                 r.AcademicRank,
		StatusOfAppointment:          r.StatusOfAppointment,
		NumberOfPrep:                 r.NumberOfPrep,
		TotalTeachingLoad:            r.TotalTeachingLoad,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type collegeRow struct {
	ID        string `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (collegeRow) TableName() string { return "colleges" }

func (r *collegeRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toCollegeRow(c *models.College) *collegeRow {
	return &collegeRow{ID: c.ID, Code: c.Code, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r *collegeRow) toModel() *models.College {
	return &models.College{ID: r.ID, Code: r.Code, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type courseRow struct {
	ID        string `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex"`
	Name      string
	CollegeID string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (courseRow) TableName() string { return "courses" }

func (r *courseRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toCourseRow(c *models.Course) *courseRow {
	return &courseRow{ID: c.ID, Code: c.Code, Name: c.Name, CollegeID: c.CollegeID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r *courseRow) toModel() *models.Course {
	return &models.Course{ID: r.ID, Code: r.Code, Name: r.Name, CollegeID: r.CollegeID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type sectionRow struct {
	ID        string `gorm:"primaryKey"`
	CollegeID string `gorm:"index"`
	CourseID  string `gorm:"index"`
	Level     string
	Block     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sectionRow) TableName() string { return "sections" }

func (r *sectionRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toSectionRow(s *models.Section) *sectionRow {
	return &sectionRow{ID: s.ID, CollegeID: s.CollegeID, CourseID: s.CourseID, Level: s.Level, Block: s.Block, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func (r *sectionRow) toModel() *models.Section {
	return &models.Section{ID: r.ID, CollegeID: r.CollegeID, CourseID: r.CourseID, Level: r.Level, Block: r.Block, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type roomRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Location  string
	CollegeID string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (roomRow) TableName() string { return "rooms" }

func (r *roomRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toRoomRow(m *models.Room) *roomRow {
	return &roomRow{ID: m.ID, Name: m.Name, Location: m.Location, CollegeID: m.CollegeID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (r *roomRow) toModel() *models.Room {
	return &models.Room{ID: r.ID, Name: r.Name, Location: r.Location, CollegeID: r.CollegeID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type semesterRow struct {
	ID           string `gorm:"primaryKey"`
	Label        string
	AcademicYear string
	StartDate    string `gorm:"index"`
	EndDate      string `gorm:"index"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (semesterRow) TableName() string { return "semesters" }

func (r *semesterRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toSemesterRow(s *models.Semester) *semesterRow {
	return &semesterRow{ID: s.ID, Label: s.Label, AcademicYear: s.AcademicYear, StartDate: s.StartDate, EndDate: s.EndDate, IsActive: s.IsActive, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func (r *semesterRow) toModel() *models.Semester {
	return &models.Semester{ID: r.ID, Label: r.Label, AcademicYear: r.AcademicYear, StartDate: r.StartDate, EndDate: r.EndDate, IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type scheduleRow struct {
	ID           string `gorm:"primaryKey"`
	CourseCode   string `gorm:"index"`
	CourseTitle  string
	InstructorID string `gorm:"index:idx_schedules_instructor"`
	SectionID    string `gorm:"index"`
	Room         string
	StartTime    string
	EndTime      string
	Days         uint8
	SemStart     string `gorm:"index:idx_schedules_window"`
	SemEnd       string `gorm:"index:idx_schedules_window"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (scheduleRow) TableName() string { return "schedules" }

func (r *scheduleRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toScheduleRow(s *models.Schedule) *scheduleRow {
	return &scheduleRow{
		ID:           s.ID,
		CourseCode:   s.CourseCode,
		CourseTitle:  s.CourseTitle,
		InstructorID: s.InstructorID,
		SectionID:    s.SectionID,
		Room:         s.Room,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Days:         uint8(s.Days),
		SemStart:     s.SemesterStart,
		SemEnd:       s.SemesterEnd,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (r *scheduleRow) toModel() *models.Schedule {
	return &models.Schedule{
		ID:            r.ID,
		CourseCode:    r.CourseCode,
		CourseTitle:   r.CourseTitle,
		InstructorID:  r.InstructorID,
		SectionID:     r.SectionID,
		Room:          r.Room,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Days:          models.DayMask(r.Days),
		SemesterStart: r.SemStart,
		SemesterEnd:   r.SemEnd,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type logRow struct {
	ID             string `gorm:"primaryKey"`
	ScheduleID     string `gorm:"index:idx_logs_schedule_date"`
	Date           string `gorm:"index:idx_logs_schedule_date;index:idx_logs_date"`
	InstructorID   string `gorm:"index"`
	InstructorName string
	Course         string
	Status         string
	TimeIn         string
	TimeOut        string
	Remarks        string
	CameraID       string

	Synced   bool `gorm:"index:idx_logs_synced"`
	SyncedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (logRow) TableName() string { return "attendance_logs" }

func (r *logRow) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toLogRow(l *models.AttendanceLog) *logRow {
	return &logRow{
		ID:             l.ID,
		ScheduleID:     l.ScheduleID,
		Date:           l.Date,
		InstructorID:   l.InstructorID,
		InstructorName: l.InstructorName,
		Course:         l.Course,
		Status:         l.Status,
		TimeIn:         l.TimeIn,
		TimeOut:        l.TimeOut,
		Remarks:        l.Remarks,
		CameraID:       l.CameraID,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (r *logRow) toModel() *models.AttendanceLog {
	return &models.AttendanceLog{
		ID:             r.ID,
		ScheduleID:     r.ScheduleID,
		Date:           r.Date,
		InstructorID:   r.InstructorID,
		InstructorName: r.InstructorName,
		Course:         r.Course,
		Status:         r.Status,
		TimeIn:         r.TimeIn,
		TimeOut:        r.TimeOut,
		Remarks:        r.Remarks,
		CameraID:       r.CameraID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// changeRow records one offline mutation of a non-log entity for the change
// flush. Mirror upserts from hydration never write here.
type changeRow struct {
	ID          uint   `gorm:"primaryKey"`
	EntityType  string `gorm:"index:idx_changes_pending"`
	EntityID    string
	Op          string // create, update, delete
	Processed   bool   `gorm:"index:idx_changes_pending"`
	LastError   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func (changeRow) TableName() string { return "change_log" }
