package models

import "time"

// Roles recognized by the platform. Role gates in the HTTP layer compare
// against these values; superadmin passes every gate.
const (
	RoleSuperAdmin         = "superadmin"
	RoleDean               = "dean"
	RoleProgramChairperson = "programchairperson"
	RoleInstructor         = "instructor"
)

// Account lifecycle states.
const (
	StatusForVerification = "forverification"
	StatusActive          = "active"
	StatusInactive        = "inactive"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleDean, RoleProgramChairperson, RoleInstructor:
		return true
	}
	return false
}

// CapturedImage is one face-enrollment capture. The image files themselves
// are handled by the streaming side; only the references live here.
type CapturedImage struct {
	Path       string    `json:"path"`
	Angle      string    `json:"angle"`
	CapturedAt time.Time `json:"capturedAt"`
}

// User is the canonical account shape shared by every caller regardless of
// which store backs it. Password always holds a bcrypt hash once persisted.
type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	ExtName    string `json:"extName,omitempty"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	CollegeID  string `json:"collegeId,omitempty"`
	CourseID   string `json:"courseId,omitempty"`

	// Face enrollment artifacts.
	FacePath       string          `json:"facePath,omitempty"`
	CapturedImages []CapturedImage `json:"capturedImages,omitempty"`

	// Faculty profile.
	HighestEducationalAttainment string `json:"highestEducationalAttainment,omitempty"`
	AcademicRank                 string `json:"academicRank,omitempty"`
	StatusOfAppointment          string `json:"statusOfAppointment,omitempty"`
	NumberOfPrep                 int    `json:"numberOfPrep,omitempty"`
	TotalTeachingLoad            int    `json:"totalTeachingLoad,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName returns the "Last, First" form the recognition client and the
// schedule listings use.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.LastName + ", " + u.FirstName
}
