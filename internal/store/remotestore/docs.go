package remotestore

import (
	"time"

	smodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/famsdev/fams_backend/internal/models"
)

// Document shapes. time.Time never appears directly: SurrealDB expects its
// own datetime encoding, so every timestamp goes through CustomDateTime.

func dt(t time.Time) smodels.CustomDateTime {
	return smodels.CustomDateTime{Time: t}
}

type capturedImageDoc struct {
	Path       string                 `json:"path"`
	Angle      string                 `json:"angle"`
	CapturedAt smodels.CustomDateTime `json:"capturedAt"`
}

type userDoc struct {
	ID         *smodels.RecordID `json:"id,omitempty"`
	FirstName  string            `json:"firstName"`
	MiddleName string            `json:"middleName,omitempty"`
	LastName   string            `json:"lastName"`
	ExtName    string            `json:"extName,omitempty"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Role       string            `json:"role"`
	Status     string            `json:"status"`
	CollegeID  string            `json:"collegeId,omitempty"`
	CourseID   string            `json:"courseId,omitempty"`

	FacePath       string             `json:"facePath,omitempty"`
	CapturedImages []capturedImageDoc `json:"capturedImages,omitempty"`

	HighestEducationalAttainment string `json:"highestEducationalAttainment,omitempty"`
	AcademicRank                 string `json:"academicRank,omitempty"`
	StatusOfAppointment          string `json:"statusOfAppointment,omitempty"`
	NumberOfPrep                 int    `json:"numberOfPrep,omitempty"`
	TotalTeachingLoad            int    `json:"totalTeachingLoad,omitempty"`

	CreatedAt smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt smodels.CustomDateTime `json:"updatedAt"`
}

func toUserDoc(u *models.User) *userDoc {
	doc := &userDoc{
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
		FacePath:   u.FacePath,

		HighestEducationalAttainment: u.HighestEducationalAttainment,
		AcademicRank:                 u.AcademicRank,
		StatusOfAppointment:          u.StatusOfAppointment,
		NumberOfPrep:                 u.NumberOfPrep,
		TotalTeachingLoad:            u.TotalTeachingLoad,

		CreatedAt: dt(u.CreatedAt),
		UpdatedAt: dt(u.UpdatedAt),
	}
	if u.ID != "" {
		r := rid(tableUsers, u.ID)
		doc.ID = &r
	}
	for _, img := range u.CapturedImages {
		doc.CapturedImages = append(doc.CapturedImages, capturedImageDoc{
			Path: img.Path, Angle: img.Angle, CapturedAt: dt(img.CapturedAt),
		})
	}
	return doc
}

func (d *userDoc) toModel() *models.User {
	u := &models.User{
		ID:         ridString(d.ID),
		FirstName:  d.FirstName,
		MiddleName: d.MiddleName,
		LastName:   d.LastName,
		ExtName:    d.ExtName,
		Username:   d.Username,
		Email:      d.Email,
		Password:   d.Password,
		Role:       d.Role,
		Status:     d.Status,
		CollegeID:  d.CollegeID,
		CourseID:   d.CourseID,
		FacePath:   d.FacePath,

		HighestEducationalAttainment: d.HighestEducationalAttainment,
		AcademicRank:                 d.AcademicRank,
		StatusOfAppointment:          d.StatusOfAppointment,
		NumberOfPrep:                 d.NumberOfPrep,
		TotalTeachingLoad:            d.TotalTeachingLoad,

		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
	}
	for _, img := range d.CapturedImages {
		u.CapturedImages = append(u.CapturedImages, models.CapturedImage{
			Path: img.Path, Angle: img.Angle, CapturedAt: img.CapturedAt.Time,
		})
	}
	return u
}

type collegeDoc struct {
	ID        *smodels.RecordID      `json:"id,omitempty"`
	Code      string                 `json:"code"`
	Name      string                 `json:"name"`
	CreatedAt smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt smodels.CustomDateTime `json:"updatedAt"`
}

func toCollegeDoc(c *models.College) *collegeDoc {
	doc := &collegeDoc{Code: c.Code, Name: c.Name, CreatedAt: dt(c.CreatedAt), UpdatedAt: dt(c.UpdatedAt)}
	if c.ID != "" {
		r := rid(tableColleges, c.ID)
		doc.ID = &r
	}
	return doc
}

func (d *collegeDoc) toModel() *models.College {
	return &models.College{ID: ridString(d.ID), Code: d.Code, Name: d.Name, CreatedAt: d.CreatedAt.Time, UpdatedAt: d.UpdatedAt.Time}
}

type courseDoc struct {
	ID        *smodels.RecordID      `json:"id,omitempty"`
	Code      string                 `json:"code"`
	Name      string                 `json:"name"`
	CollegeID string                 `json:"collegeId"`
	CreatedAt smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt smodels.CustomDateTime `json:"updatedAt"`
}

func toCourseDoc(c *models.Course) *courseDoc {
	doc := &courseDoc{Code: c.Code, Name: c.Name, CollegeID: c.CollegeID, CreatedAt: dt(c.CreatedAt), UpdatedAt: dt(c.UpdatedAt)}
	if c.ID != "" {
		r := rid(tableCourses, c.ID)
		doc.ID = &r
	}
	return doc
}

func (d *courseDoc) toModel() *models.Course {
	return &models.Course{ID: ridString(d.ID), Code: d.Code, Name: d.Name, CollegeID: d.CollegeID, CreatedAt: d.CreatedAt.Time, UpdatedAt: d.UpdatedAt.Time}
}

type sectionDoc struct {
	ID        *smodels.RecordID      `json:"id,omitempty"`
	CollegeID string                 `json:"collegeId"`
	CourseID  string                 `json:"courseId"`
	Level     string                 `json:"level"`
	Block     string                 `json:"block"`
	CreatedAt smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt smodels.CustomDateTime `json:"updatedAt"`
}

func toSectionDoc(s *models.Section) *sectionDoc {
	doc := &sectionDoc{CollegeID: s.CollegeID, CourseID: s.CourseID, Level: s.Level, Block: s.Block, CreatedAt: dt(s.CreatedAt), UpdatedAt: dt(s.UpdatedAt)}
	if s.ID != "" {
		r := rid(tableSections, s.ID)
		doc.ID = &r
	}
	return doc
}

func (d *sectionDoc) toModel() *models.Section {
	return &models.Section{ID: ridString(d.ID), CollegeID: d.CollegeID, CourseID: d.CourseID, Level: d.Level, Block: d.Block, CreatedAt: d.CreatedAt.Time, UpdatedAt: d.UpdatedAt.Time}
}

type roomDoc struct {
	ID        *smodels.RecordID      `json:"id,omitempty"`
	Name      string                 `json:"name"`
	Location  string                 `json:"location,omitempty"`
	CollegeID string                 `json:"collegeId,omitempty"`
	CreatedAt smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt smodels.CustomDateTime `json:"updatedAt"`
}

func toRoomDoc(r *models.Room) *roomDoc {
	doc := &roomDoc{Name: r.Name, Location: r.Location, CollegeID: r.CollegeID, CreatedAt: dt(r.CreatedAt), UpdatedAt: dt(r.UpdatedAt)}
	if r.ID != "" {
		rec := rid(tableRooms, r.ID)
		doc.ID = &rec
	}
	return doc
}

func (d *roomDoc) toModel() *models.Room {
	return &models.Room{ID: ridString(d.ID), Name: d.Name, Location: d.Location, CollegeID: d.CollegeID, CreatedAt: d.CreatedAt.Time, UpdatedAt: d.UpdatedAt.Time}
}

type semesterDoc struct {
	ID           *smodels.RecordID      `json:"id,omitempty"`
	Label        string                 `json:"label"`
	AcademicYear string                 `json:"academicYear"`
	StartDate    string                 `json:"startDate"`
	EndDate      string                 `json:"endDate"`
	IsActive     bool                   `json:"isActive"`
	CreatedAt    smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt    smodels.CustomDateTime `json:"updatedAt"`
}

func toSemesterDoc(s *models.Semester) *semesterDoc {
	doc := &semesterDoc{Label: s.Label, AcademicYear: s.AcademicYear, StartDate: s.StartDate, EndDate: s.EndDate, IsActive: s.IsActive, CreatedAt: dt(s.CreatedAt), UpdatedAt: dt(s.UpdatedAt)}
	if s.ID != "" {
		r := rid(tableSemesters, s.ID)
		doc.ID = &r
	}
	return doc
}

func (d *semesterDoc) toModel() *models.Semester {
	return &models.Semester{ID: ridString(d.ID), Label: d.Label, AcademicYear: d.AcademicYear, StartDate: d.StartDate, EndDate: d.EndDate, IsActive: d.IsActive, CreatedAt: d.CreatedAt.Time, UpdatedAt: d.UpdatedAt.Time}
}

type scheduleDoc struct {
	ID            *smodels.RecordID      `json:"id,omitempty"`
	CourseCode    string                 `json:"courseCode"`
	CourseTitle   string                 `json:"courseTitle"`
	InstructorID  string                 `json:"instructorId"`
	SectionID     string                 `json:"sectionId,omitempty"`
	Room          string                 `json:"room"`
	StartTime     string                 `json:"startTime"`
	EndTime       string                 `json:"endTime"`
	Days          uint8                  `json:"days"`
	SemesterStart string                 `json:"semesterStartDate"`
	SemesterEnd   string                 `json:"semesterEndDate"`
	CreatedAt     smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt     smodels.CustomDateTime `json:"updatedAt"`
}

func toScheduleDoc(s *models.Schedule) *scheduleDoc {
	doc := &scheduleDoc{
		CourseCode:    s.CourseCode,
		CourseTitle:   s.CourseTitle,
		InstructorID:  s.InstructorID,
		SectionID:     s.SectionID,
		Room:          s.Room,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Days:          uint8(s.Days),
		SemesterStart: s.SemesterStart,
		SemesterEnd:   s.SemesterEnd,
		CreatedAt:     dt(s.CreatedAt),
		UpdatedAt:     dt(s.UpdatedAt),
	}
	if s.ID != "" {
		r := rid(tableSchedules, s.ID)
		doc.ID = &r
	}
	return doc
}

func (d *scheduleDoc) toModel() *models.Schedule {
	return &models.Schedule{
		ID:            ridString(d.ID),
		CourseCode:    d.CourseCode,
		CourseTitle:   d.CourseTitle,
		InstructorID:  d.InstructorID,
		SectionID:     d.SectionID,
		Room:          d.Room,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		Days:          models.DayMask(d.Days),
		SemesterStart: d.SemesterStart,
		SemesterEnd:   d.SemesterEnd,
		CreatedAt:     d.CreatedAt.Time,
		UpdatedAt:     d.UpdatedAt.Time,
	}
}

type logDoc struct {
	ID             *smodels.RecordID      `json:"id,omitempty"`
	ScheduleID     string                 `json:"scheduleId,omitempty"`
	InstructorID   string                 `json:"instructorId,omitempty"`
	InstructorName string                 `json:"instructorName"`
	Course         string                 `json:"course,omitempty"`
	Date           string                 `json:"date"`
	Status         string                 `json:"status"`
	TimeIn         string                 `json:"timeIn,omitempty"`
	TimeOut        string                 `json:"timeOut,omitempty"`
	Remarks        string                 `json:"remarks,omitempty"`
	CameraID       string                 `json:"cameraId,omitempty"`
	CreatedAt      smodels.CustomDateTime `json:"createdAt"`
	UpdatedAt      smodels.CustomDateTime `json:"updatedAt"`
}

func toLogDoc(l *models.AttendanceLog) *logDoc {
	doc := &logDoc{
		ScheduleID:     l.ScheduleID,
		InstructorID:   l.InstructorID,
		InstructorName: l.InstructorName,
		Course:         l.Course,
		Date:           l.Date,
		Status:         l.Status,
		TimeIn:         l.TimeIn,
		TimeOut:        l.TimeOut,
		Remarks:        l.Remarks,
		CameraID:       l.CameraID,
		CreatedAt:      dt(l.CreatedAt),
		UpdatedAt:      dt(l.UpdatedAt),
	}
	if l.ID != "" {
		r := rid(tableLogs, l.ID)
		doc.ID = &r
	}
	return doc
}

func (d *logDoc) toModel() *models.AttendanceLog {
	return &models.AttendanceLog{
		ID:             ridString(d.ID),
		ScheduleID:     d.ScheduleID,
		InstructorID:   d.InstructorID,
		InstructorName: d.InstructorName,
		Course:         d.Course,
		Date:           d.Date,
		Status:         d.Status,
		TimeIn:         d.TimeIn,
		TimeOut:        d.TimeOut,
		Remarks:        d.Remarks,
		CameraID:       d.CameraID,
		CreatedAt:      d.CreatedAt.Time,
		UpdatedAt:      d.UpdatedAt.Time,
	}
}
