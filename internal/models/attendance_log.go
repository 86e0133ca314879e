package models

import "time"

// Attendance statuses. "Returned" and "Left early" keep their historical
// casing because rendered reports print the status verbatim.
const (
	LogPresent    = "present"
	LogLate       = "late"
	LogAbsent     = "absent"
	LogExcuse     = "excuse"
	LogReturned   = "Returned"
	LogLeftEarly  = "Left early"
	LogNoSchedule = "no schedule"
)

// AttendanceLog is one attendance record keyed by (schedule, date), or by
// (instructor, date) when ScheduleID is empty — an appearance with no
// matching class. TimeIn/TimeOut are "15:04:05" strings; Date is a
// "2006-01-02" calendar day, not a timestamp.
type AttendanceLog struct {
	ID             string `json:"id"`
	ScheduleID     string `json:"scheduleId,omitempty"`
	InstructorID   string `json:"instructorId,omitempty"`
	InstructorName string `json:"instructorName"`
	Course         string `json:"course,omitempty"` // denormalized course code for reporting
	Date           string `json:"date"`
	Status         string `json:"status"`
	TimeIn         string `json:"timeIn,omitempty"`
	TimeOut        string `json:"timeOut,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
	CameraID       string `json:"cameraId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Open reports whether the row is live for time-out: time-in recorded,
// time-out still pending.
func (l *AttendanceLog) Open() bool {
	return l.TimeIn != "" && l.TimeOut == ""
}
