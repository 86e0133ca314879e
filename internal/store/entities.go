package store

// Entity type names shared by the change log, the sync engine, and its
// reports.
const (
	EntityUser     = "user"
	EntityCollege  = "college"
	EntityCourse   = "course"
	EntitySection  = "section"
	EntityRoom     = "room"
	EntitySemester = "semester"
	EntitySchedule = "schedule"
	EntityLog      = "attendance_log"
)
