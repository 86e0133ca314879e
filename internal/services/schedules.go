package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

const clockLayout = "15:04"

// ScheduleService validates and serves class schedules. Reads resolve the
// instructor's display name so clients never join against the user table.
type ScheduleService struct {
	st  store.Store
	log zerolog.Logger
}

// Create stores a schedule after validating the time window, the day set and
// the semester window. Validation runs before any store call so a bad row is
// rejected identically online and offline.
func (s *ScheduleService) Create(ctx context.Context, sch *models.Schedule) error {
	if err := s.validate(ctx, sch); err != nil {
		return err
	}
	return s.st.CreateSchedule(ctx, sch)
}

// Validate checks a schedule without storing it, for callers that batch
// their own inserts.
func (s *ScheduleService) Validate(ctx context.Context, sch *models.Schedule) error {
	return s.validate(ctx, sch)
}

func (s *ScheduleService) validate(ctx context.Context, sch *models.Schedule) error {
	if strings.TrimSpace(sch.CourseCode) == "" {
		return fmt.Errorf("%w: course code is required", ErrValidation)
	}
	if strings.TrimSpace(sch.Room) == "" {
		return fmt.Errorf("%w: room is required", ErrValidation)
	}
	start, err := time.Parse(clockLayout, sch.StartTime)
	if err != nil {
		return fmt.Errorf("%w: bad start time %q", ErrValidation, sch.StartTime)
	}
	end, err := time.Parse(clockLayout, sch.EndTime)
	if err != nil {
		return fmt.Errorf("%w: bad end time %q", ErrValidation, sch.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if sch.Days.None() {
		return fmt.Errorf("%w: at least one meeting day is required", ErrValidation)
	}
	semStart, err := time.Parse(dateLayout, sch.SemesterStart)
	if err != nil {
		return fmt.Errorf("%w: bad semester start %q", ErrValidation, sch.SemesterStart)
	}
	semEnd, err := time.Parse(dateLayout, sch.SemesterEnd)
	if err != nil {
		return fmt.Errorf("%w: bad semester end %q", ErrValidation, sch.SemesterEnd)
	}
	if !semEnd.After(semStart) {
		return fmt.Errorf("%w: semester end must be after start", ErrValidation)
	}
	if sch.InstructorID != "" {
		instructor, err := s.st.GetUser(ctx, sch.InstructorID)
		if err != nil {
			return err
		}
		if instructor == nil {
			return fmt.Errorf("%w: instructor %s not found", ErrValidation, sch.InstructorID)
		}
	}
	return nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	sch, err := s.st.GetSchedule(ctx, id)
	if err != nil || sch == nil {
		return nil, err
	}
	s.embedInstructorNames(ctx, []*models.Schedule{sch})
	return sch, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]*models.Schedule, error) {
	schedules, err := s.st.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, schedules), nil
}

func (s *ScheduleService) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Schedule, error) {
	schedules, err := s.st.ListSchedulesByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, schedules), nil
}

// ListByInstructorWindow returns schedules whose semester overlaps the date
// window, both bounds "2006-01-02".
func (s *ScheduleService) ListByInstructorWindow(ctx context.Context, instructorID, start, end string) ([]*models.Schedule, error) {
	schedules, err := s.st.ListSchedulesByInstructorWindow(ctx, instructorID, start, end)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, schedules), nil
}

func (s *ScheduleService) Update(ctx context.Context, sch *models.Schedule) error {
	if err := s.validate(ctx, sch); err != nil {
		return err
	}
	return s.st.UpdateSchedule(ctx, sch)
}

func (s *ScheduleService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteSchedule(ctx, id)
}

// withNames drops schedules whose instructor no longer exists and embeds the
// display name on the rest. A dangling reference is a warning, not an error:
// one stale row must not take the whole listing down.
func (s *ScheduleService) withNames(ctx context.Context, schedules []*models.Schedule) []*models.Schedule {
	names := map[string]string{}
	out := make([]*models.Schedule, 0, len(schedules))
	for _, sch := range schedules {
		if sch.InstructorID == "" {
			out = append(out, sch)
			continue
		}
		name, ok := names[sch.InstructorID]
		if !ok {
			u, err := s.st.GetUser(ctx, sch.InstructorID)
			if err != nil {
				s.log.Warn().Err(err).Str("schedule_id", sch.ID).Msg("instructor lookup failed, keeping schedule without name")
				out = append(out, sch)
				continue
			}
			if u == nil {
				s.log.Warn().Str("schedule_id", sch.ID).Str("instructor_id", sch.InstructorID).Msg("schedule references missing instructor, dropping from listing")
				names[sch.InstructorID] = ""
				continue
			}
			name = u.DisplayName()
			names[sch.InstructorID] = name
		}
		if name == "" {
			continue
		}
		sch.InstructorName = name
		out = append(out, sch)
	}
	return out
}

func (s *ScheduleService) embedInstructorNames(ctx context.Context, schedules []*models.Schedule) {
	for _, sch := range schedules {
		if sch.InstructorID == "" {
			continue
		}
		u, err := s.st.GetUser(ctx, sch.InstructorID)
		if err != nil || u == nil {
			continue
		}
		sch.InstructorName = u.DisplayName()
	}
}
