// Package attendance implements the time-in/time-out state machine over
// whichever store the process is bound to. Per (schedule, date) a row moves
// NONE -> IN_PROGRESS -> CLOSED, with absent and no-schedule rows reachable
// only from NONE.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	stampLayout = "15:04:05"

	// earlyLead is how far before the scheduled start a check-in counts
	// as on schedule.
	earlyLead = 30 * time.Minute
	// leftEarlyThreshold is how far before the scheduled end a time-out
	// downgrades the row to "Left early".
	leftEarlyThreshold = 15 * time.Minute
)

// Domain outcomes the caller must tell apart from connectivity failures,
// which arrive wrapped in store.ErrUnavailable instead.
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrTimeInNotFound   = errors.New("time-in log not found")
)

// Machine runs the attendance flows. The clock is injectable for tests;
// everything else rides on the bound store.
type Machine struct {
	st  store.Store
	log zerolog.Logger
	now func() time.Time
}

// New builds a machine over the given store using the wall clock.
func New(st store.Store, log zerolog.Logger) *Machine {
	return &Machine{st: st, log: log.With().Str("component", "attendance").Logger(), now: time.Now}
}

// NewWithClock is New with a fixed clock source.
func NewWithClock(st store.Store, log zerolog.Logger, now func() time.Time) *Machine {
	m := New(st, log)
	m.now = now
	return m
}

// TimeIn opens the attendance row for (schedule, date). Duplicate calls are
// a no-op success returning the existing row: the recognition client retries
// and double-fires, and both callers must see one row afterward. A sweep-
// inserted absent row is reopened in place as "Returned" rather than gaining
// a sibling. The late flag is the caller's judgment; the machine records it
// as the status.
func (m *Machine) TimeIn(ctx context.Context, scheduleID string, ts time.Time, late bool) (*models.AttendanceLog, error) {
	sch, err := m.st.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, scheduleID)
	}

	date := ts.Format(dateLayout)
	existing, err := m.st.GetLogByScheduleDate(ctx, scheduleID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.TimeIn != "" {
			return existing, nil
		}
		existing.Status = models.LogReturned
		existing.TimeIn = ts.Format(stampLayout)
		if existing.InstructorName == "" {
			if u, err := m.st.GetUser(ctx, sch.InstructorID); err == nil && u != nil {
				existing.InstructorName = u.DisplayName()
			}
		}
		if err := m.st.UpdateLog(ctx, existing); err != nil {
			return nil, err
		}
		m.log.Info().Str("schedule_id", scheduleID).Str("date", date).Msg("absent row reopened by time-in")
		return existing, nil
	}

	status := models.LogPresent
	if late {
		status = models.LogLate
	}
	l := &models.AttendanceLog{
		ScheduleID:   scheduleID,
		InstructorID: sch.InstructorID,
		Course:       sch.CourseCode,
		Date:         date,
		Status:       status,
		TimeIn:       ts.Format(stampLayout),
	}
	if u, err := m.st.GetUser(ctx, sch.InstructorID); err == nil && u != nil {
		l.InstructorName = u.DisplayName()
	}
	if err := m.st.CreateLog(ctx, l); err != nil {
		return nil, err
	}
	m.log.Info().Str("schedule_id", scheduleID).Str("date", date).Str("status", status).Msg("time-in recorded")
	return l, nil
}

// TimeOut closes the in-progress row for (schedule, today). A missing row is
// an error, never a silent insert. Leaving more than the threshold before
// the scheduled end overwrites the status with "Left early" and says by how
// much in the remarks.
func (m *Machine) TimeOut(ctx context.Context, scheduleID string, ts time.Time) (*models.AttendanceLog, error) {
	date := ts.Format(dateLayout)
	l, err := m.st.GetLogByScheduleDate(ctx, scheduleID, date)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.Open() {
		return nil, fmt.Errorf("%w: schedule %s on %s", ErrTimeInNotFound, scheduleID, date)
	}

	l.TimeOut = ts.Format(stampLayout)
	if sch, err := m.st.GetSchedule(ctx, scheduleID); err == nil && sch != nil {
		if end, perr := time.Parse(clockLayout, sch.EndTime); perr == nil {
			endAt := time.Date(ts.Year(), ts.Month(), ts.Day(), end.Hour(), end.Minute(), 0, 0, ts.Location())
			if lead := endAt.Sub(ts); lead > leftEarlyThreshold {
				l.Status = models.LogLeftEarly
				remark := fmt.Sprintf("left %d minutes early", int(lead.Minutes()))
				if l.Remarks != "" {
					l.Remarks += "; " + remark
				} else {
					l.Remarks = remark
				}
			}
		}
	}
	if err := m.st.UpdateLog(ctx, l); err != nil {
		return nil, err
	}
	m.log.Info().Str("schedule_id", scheduleID).Str("date", date).Str("status", l.Status).Msg("time-out recorded")
	return l, nil
}

// LogUnscheduled records a recognition with no matching class, keyed by
// (instructor, date) instead of (schedule, date). Idempotent the same way
// time-in is.
func (m *Machine) LogUnscheduled(ctx context.Context, instructorID string, ts time.Time, cameraID string) (*models.AttendanceLog, error) {
	date := ts.Format(dateLayout)
	existing, err := m.st.GetUnscheduledLog(ctx, instructorID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	l := &models.AttendanceLog{
		InstructorID: instructorID,
		Date:         date,
		Status:       models.LogNoSchedule,
		TimeIn:       ts.Format(stampLayout),
		CameraID:     cameraID,
	}
	if u, err := m.st.GetUser(ctx, instructorID); err == nil && u != nil {
		l.InstructorName = u.DisplayName()
	}
	if err := m.st.CreateLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// SweepAbsences inserts absent rows for every schedule that met on the
// target date, finished before now, and has no log. Re-running for the same
// date is a no-op for already-logged schedules, which also makes the sweep
// safe against a concurrent time-in: the second writer sees the first row.
func (m *Machine) SweepAbsences(ctx context.Context, date time.Time) (int, error) {
	schedules, err := m.st.ListSchedules(ctx)
	if err != nil {
		return 0, err
	}

	now := m.now()
	day := date.Format(dateLayout)
	inserted := 0
	for _, sch := range schedules {
		if !sch.ActiveOn(date) {
			continue
		}
		end, err := time.Parse(clockLayout, sch.EndTime)
		if err != nil {
			m.log.Warn().Str("schedule_id", sch.ID).Str("end_time", sch.EndTime).Msg("unparseable end time, skipping in sweep")
			continue
		}
		endAt := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, now.Location())
		if now.Before(endAt) {
			continue
		}
		existing, err := m.st.GetLogByScheduleDate(ctx, sch.ID, day)
		if err != nil {
			return inserted, err
		}
		if existing != nil {
			continue
		}
		l := &models.AttendanceLog{
			ScheduleID:   sch.ID,
			InstructorID: sch.InstructorID,
			Course:       sch.CourseCode,
			Date:         day,
			Status:       models.LogAbsent,
		}
		if err := m.st.CreateLog(ctx, l); err != nil {
			return inserted, err
		}
		inserted++
	}
	if inserted > 0 {
		m.log.Info().Str("date", day).Int("inserted", inserted).Msg("absence sweep inserted rows")
	}
	return inserted, nil
}
