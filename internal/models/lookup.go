package models

import "time"

// College is a top-level academic unit keyed by a short code (e.g. "CIT").
type College struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Course is a degree program offered by a college.
type Course struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CollegeID string    `json:"collegeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Section identifies a class grouping as (college, course, level, block).
type Section struct {
	ID        string    `json:"id"`
	CollegeID string    `json:"collegeId"`
	CourseID  string    `json:"courseId"`
	Level     string    `json:"level"`
	Block     string    `json:"block"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Room is a physical or virtual space schedules refer to by name.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CollegeID string    `json:"collegeId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Semester bounds a term. Dates are calendar days in "2006-01-02" form so
// they compare correctly as strings. At most one semester is active at a
// time; the services enforce that, not the stores.
type Semester struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	AcademicYear string    `json:"academicYear"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
