package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayMask is a bitset over the days of the week, bit i = time.Weekday(i).
type DayMask uint8

const (
	Sunday DayMask = 1 << iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Has reports whether the mask includes the given weekday.
func (m DayMask) Has(d time.Weekday) bool {
	return m&(1<<uint(d)) != 0
}

// None reports whether no day bit is set.
func (m DayMask) None() bool { return m == 0 }

// MarshalJSON encodes the mask as the wire shape the recognition client and
// the upload parser exchange: {"sun":false,"mon":true,...}.
func (m DayMask) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, 7)
	for i, key := range dayKeys {
		out[key] = m&(1<<uint(i)) != 0
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the day-name map form. Unknown keys are rejected so
// a misspelled day never silently drops a meeting.
func (m *DayMask) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var mask DayMask
	for key, on := range raw {
		idx := -1
		for i, k := range dayKeys {
			if k == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown day name %q", key)
		}
		if on {
			mask |= 1 << uint(idx)
		}
	}
	*m = mask
	return nil
}

// String lists the set days, e.g. "mon,wed,fri".
func (m DayMask) String() string {
	out := ""
	for i, key := range dayKeys {
		if m&(1<<uint(i)) != 0 {
			if out != "" {
				out += ","
			}
			out += key
		}
	}
	return out
}

// Schedule is one recurring class meeting. Times of day are "15:04" strings,
// semester bounds are "2006-01-02" date strings.
type Schedule struct {
	ID             string  `json:"id"`
	CourseCode     string  `json:"courseCode"`
	CourseTitle    string  `json:"courseTitle"`
	InstructorID   string  `json:"instructorId"`
	InstructorName string  `json:"instructorName,omitempty"` // resolved at read time, never stored remotely
	SectionID      string  `json:"sectionId,omitempty"`
	Room           string  `json:"room"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Days           DayMask `json:"days"`
	SemesterStart  string  `json:"semesterStartDate"`
	SemesterEnd    string  `json:"semesterEndDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StructuralKey identifies a logical schedule across a replace-and-remap:
// two schedules with equal keys are treated as the same class meeting even
// though their store identifiers differ.
type StructuralKey struct {
	CourseCode string
	Room       string
	StartTime  string
	EndTime    string
	Days       DayMask
}

// Structural returns the schedule's structural identity.
func (s *Schedule) Structural() StructuralKey {
	return StructuralKey{
		CourseCode: s.CourseCode,
		Room:       s.Room,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Days:       s.Days,
	}
}

// ActiveOn reports whether the schedule meets on the given calendar day:
// the weekday bit is set and the day falls inside the semester window.
func (s *Schedule) ActiveOn(day time.Time) bool {
	if !s.Days.Has(day.Weekday()) {
		return false
	}
	d := day.Format("2006-01-02")
	return s.SemesterStart <= d && d <= s.SemesterEnd
}
