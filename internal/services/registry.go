// Package services holds the entity services. Each service is bound to
// exactly one store implementation at construction; callers never pick a
// backend per request.
package services

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/store"
)

// ErrValidation marks input the caller can fix. HTTP handlers map it to a
// 400 instead of a 500.
var ErrValidation = errors.New("validation")

// Registry bundles every entity service over the same store.
type Registry struct {
	Users     *UserService
	Colleges  *CollegeService
	Courses   *CourseService
	Sections  *SectionService
	Rooms     *RoomService
	Semesters *SemesterService
	Schedules *ScheduleService
	Logs      *LogService
}

// NewRegistry wires all services to the given store.
func NewRegistry(st store.Store, log zerolog.Logger) *Registry {
	return &Registry{
		Users:     &UserService{st: st, log: log.With().Str("service", "users").Logger()},
		Colleges:  &CollegeService{st: st},
		Courses:   &CourseService{st: st},
		Sections:  &SectionService{st: st},
		Rooms:     &RoomService{st: st},
		Semesters: &SemesterService{st: st},
		Schedules: &ScheduleService{st: st, log: log.With().Str("service", "schedules").Logger()},
		Logs:      &LogService{st: st},
	}
}
