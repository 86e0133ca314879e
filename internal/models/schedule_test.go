package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayMaskJSON(t *testing.T) {
	var m DayMask
	require.NoError(t, json.Unmarshal([]byte(`{"mon":true,"wed":true,"fri":false}`), &m))
	assert.True(t, m.Has(time.Monday))
	assert.True(t, m.Has(time.Wednesday))
	assert.False(t, m.Has(time.Friday))
	assert.False(t, m.Has(time.Sunday))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	var round map[string]bool
	require.NoError(t, json.Unmarshal(out, &round))
	assert.True(t, round["mon"])
	assert.False(t, round["sat"])

	err = json.Unmarshal([]byte(`{"monday":true}`), &m)
	assert.Error(t, err)
}

func TestScheduleActiveOn(t *testing.T) {
	sch := &Schedule{
		Days:          Monday | Wednesday,
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-05-29",
	}
	monday := time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local)
	assert.True(t, sch.ActiveOn(monday))
	assert.False(t, sch.ActiveOn(monday.AddDate(0, 0, 1)))       // tuesday
	assert.False(t, sch.ActiveOn(monday.AddDate(0, 6, 0)))       // past semester end
	assert.False(t, sch.ActiveOn(monday.AddDate(0, 0, -7)))      // before semester start
	assert.True(t, sch.ActiveOn(monday.AddDate(0, 0, 2)))        // wednesday
}

func TestStructuralKey(t *testing.T) {
	a := &Schedule{ID: "a", CourseCode: "CS101", Room: "Lab 1", StartTime: "09:00", EndTime: "10:00", Days: Monday}
	b := &Schedule{ID: "b", CourseCode: "CS101", Room: "Lab 1", StartTime: "09:00", EndTime: "10:00", Days: Monday}
	c := &Schedule{ID: "c", CourseCode: "CS101", Room: "Lab 2", StartTime: "09:00", EndTime: "10:00", Days: Monday}
	assert.Equal(t, a.Structural(), b.Structural())
	assert.NotEqual(t, a.Structural(), c.Structural())
}

func TestUserDisplayName(t *testing.T) {
	u := &User{FirstName: "Juan", LastName: "Dela Cruz"}
	assert.Equal(t, "Dela Cruz, Juan", u.DisplayName())
}

func TestLogOpen(t *testing.T) {
	l := &AttendanceLog{TimeIn: "09:00:00"}
	assert.True(t, l.Open())
	l.TimeOut = "09:55:00"
	assert.False(t, l.Open())
	assert.False(t, (&AttendanceLog{}).Open())
}
