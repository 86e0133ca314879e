// Package store defines the capability contract both backing stores
// implement. Entity services are bound to exactly one implementation at
// construction time; the synchronization engine is the only caller allowed
// to hold both at once.
package store

import (
	"context"
	"errors"

	"github.com/famsdev/fams_backend/internal/models"
)

// ErrUnavailable wraps any failure to reach a required store. Callers use it
// to tell connectivity problems apart from ordinary domain outcomes such as
// a missing row, which is never an error (lookups return nil, nil).
var ErrUnavailable = errors.New("store unavailable")

// Store is the uniform surface over the local mirror and the remote
// document database. Every method returns canonical shapes from the models
// package; field-name translation to the physical row or document happens
// inside each adapter. Get/Find methods return (nil, nil) when absent.
// Delete methods report whether a row existed.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByName matches flexible display-name input: "Last, First",
	// "First Last", or a substring of either.
	FindUserByName(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) (bool, error)

	// Colleges
	CreateCollege(ctx context.Context, c *models.College) error
	GetCollege(ctx context.Context, id string) (*models.College, error)
	GetCollegeByCode(ctx context.Context, code string) (*models.College, error)
	ListColleges(ctx context.Context) ([]*models.College, error)
	UpdateCollege(ctx context.Context, c *models.College) error
	DeleteCollege(ctx context.Context, id string) (bool, error)

	// Courses
	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListCoursesByCollege(ctx context.Context, collegeID string) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, c *models.Course) error
	DeleteCourse(ctx context.Context, id string) (bool, error)

	// Sections
	CreateSection(ctx context.Context, s *models.Section) error
	GetSection(ctx context.Context, id string) (*models.Section, error)
	ListSections(ctx context.Context) ([]*models.Section, error)
	ListSectionsByCourse(ctx context.Context, courseID string) ([]*models.Section, error)
	UpdateSection(ctx context.Context, s *models.Section) error
	DeleteSection(ctx context.Context, id string) (bool, error)

	// Rooms
	CreateRoom(ctx context.Context, r *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	GetRoomByName(ctx context.Context, name string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, r *models.Room) error
	DeleteRoom(ctx context.Context, id string) (bool, error)

	// Semesters
	CreateSemester(ctx context.Context, s *models.Semester) error
	GetSemester(ctx context.Context, id string) (*models.Semester, error)
	GetActiveSemester(ctx context.Context) (*models.Semester, error)
	ListSemesters(ctx context.Context) ([]*models.Semester, error)
	UpdateSemester(ctx context.Context, s *models.Semester) error
	DeleteSemester(ctx context.Context, id string) (bool, error)

	// Schedules
	CreateSchedule(ctx context.Context, s *models.Schedule) error
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	ListSchedules(ctx context.Context) ([]*models.Schedule, error)
	ListSchedulesByInstructor(ctx context.Context, instructorID string) ([]*models.Schedule, error)
	// ListSchedulesByInstructorWindow returns the instructor's schedules
	// whose semester window overlaps [start, end] ("2006-01-02" strings).
	ListSchedulesByInstructorWindow(ctx context.Context, instructorID, start, end string) ([]*models.Schedule, error)
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, id string) (bool, error)

	// Attendance logs
	CreateLog(ctx context.Context, l *models.AttendanceLog) error
	GetLog(ctx context.Context, id string) (*models.AttendanceLog, error)
	// GetLogByScheduleDate returns the live row for a (schedule, date) pair.
	GetLogByScheduleDate(ctx context.Context, scheduleID, date string) (*models.AttendanceLog, error)
	// GetUnscheduledLog returns the (instructor, date) row with no schedule.
	GetUnscheduledLog(ctx context.Context, instructorID, date string) (*models.AttendanceLog, error)
	ListLogs(ctx context.Context) ([]*models.AttendanceLog, error)
	ListLogsByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error)
	ListLogsBySchedule(ctx context.Context, scheduleID string) ([]*models.AttendanceLog, error)
	UpdateLog(ctx context.Context, l *models.AttendanceLog) error
	DeleteLog(ctx context.Context, id string) (bool, error)
}
