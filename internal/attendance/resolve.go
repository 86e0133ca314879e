package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/famsdev/fams_backend/internal/models"
)

// Outcome classifies a current-schedule resolution.
type Outcome string

const (
	OutcomeNoInstructor    Outcome = "no_instructor"
	OutcomeNoScheduleToday Outcome = "no_schedule_today"
	OutcomeTimeMismatch    Outcome = "time_mismatch"
	OutcomeRoomMismatch    Outcome = "room_mismatch"
	OutcomeValid           Outcome = "valid"
)

// Resolution is the answer to "is this person on schedule right now".
// Instructor is set for every outcome past no-instructor; Schedule is set
// once a time-matching schedule exists, including the room-mismatch case.
type Resolution struct {
	Outcome    Outcome          `json:"outcome"`
	Instructor *models.User     `json:"instructor,omitempty"`
	Schedule   *models.Schedule `json:"schedule,omitempty"`
}

// ResolveCurrent finds the schedule an instructor should be in at ts.
// The name is whatever the recognition model was labeled with, "Last, First"
// or "First Last". The time window is extended by the early-check-in lead
// before the start. Overlapping schedules are not tie-broken beyond first
// match: one instructor is not expected to be double-booked.
func (m *Machine) ResolveCurrent(ctx context.Context, displayName, room string, ts time.Time) (*Resolution, error) {
	instructor, err := m.st.FindUserByName(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return &Resolution{Outcome: OutcomeNoInstructor}, nil
	}

	schedules, err := m.st.ListSchedulesByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	var today []*models.Schedule
	for _, sch := range schedules {
		if sch.ActiveOn(ts) {
			today = append(today, sch)
		}
	}
	if len(today) == 0 {
		return &Resolution{Outcome: OutcomeNoScheduleToday, Instructor: instructor}, nil
	}

	var match *models.Schedule
	for _, sch := range today {
		if windowContains(sch, ts) {
			match = sch
			break
		}
	}
	if match == nil {
		return &Resolution{Outcome: OutcomeTimeMismatch, Instructor: instructor}, nil
	}

	if room != "" && !roomMatches(match.Room, room) {
		return &Resolution{Outcome: OutcomeRoomMismatch, Instructor: instructor, Schedule: match}, nil
	}
	return &Resolution{Outcome: OutcomeValid, Instructor: instructor, Schedule: match}, nil
}

// windowContains reports whether ts falls inside the schedule's time window
// extended backward by the early-check-in lead.
func windowContains(sch *models.Schedule, ts time.Time) bool {
	start, err := time.Parse(clockLayout, sch.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse(clockLayout, sch.EndTime)
	if err != nil {
		return false
	}
	minute := ts.Hour()*60 + ts.Minute()
	startMin := start.Hour()*60 + start.Minute() - int(earlyLead.Minutes())
	endMin := end.Hour()*60 + end.Minute()
	return minute >= startMin && minute <= endMin
}

// roomMatches compares room names ignoring case and spaces, accepting exact
// or substring matches in either direction. Camera labels and schedule
// uploads rarely agree on the full form ("Lab 1" vs "ComLab 1").
func roomMatches(scheduled, observed string) bool {
	a := normalizeRoom(scheduled)
	b := normalizeRoom(observed)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeRoom(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
