package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/models"
)

func validSchedule(instructorID string) *models.Schedule {
	return &models.Schedule{
		CourseCode:    "CS101",
		CourseTitle:   "Intro to Computing",
		InstructorID:  instructorID,
		Room:          "Lab 1",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Days:          models.Monday | models.Wednesday,
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-05-29",
	}
}

func TestScheduleValidationRejectsBeforeStore(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	instructor := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, instructor))

	cases := []struct {
		name   string
		mutate func(*models.Schedule)
	}{
		{"end before start", func(s *models.Schedule) { s.StartTime = "09:00"; s.EndTime = "08:00" }},
		{"bad start time", func(s *models.Schedule) { s.StartTime = "9 o'clock" }},
		{"no days", func(s *models.Schedule) { s.Days = 0 }},
		{"semester end before start", func(s *models.Schedule) { s.SemesterStart = "2026-05-29"; s.SemesterEnd = "2026-01-05" }},
		{"missing room", func(s *models.Schedule) { s.Room = "" }},
		{"unknown instructor", func(s *models.Schedule) { s.InstructorID = "ghost" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sch := validSchedule(instructor.ID)
			tc.mutate(sch)
			err := reg.Schedules.Create(ctx, sch)
			if tc.name == "unknown instructor" {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				require.ErrorIs(t, err, ErrValidation)
			}
		})
	}

	// nothing reached the store
	schedules, err := reg.Schedules.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestScheduleListEmbedsInstructorName(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	instructor := newInstructor("Juan", "Dela Cruz", "jdelacruz")
	require.NoError(t, reg.Users.Create(ctx, instructor))

	sch := validSchedule(instructor.ID)
	require.NoError(t, reg.Schedules.Create(ctx, sch))

	schedules, err := reg.Schedules.ListByInstructor(ctx, instructor.ID)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Dela Cruz, Juan", schedules[0].InstructorName)
}

func TestScheduleListDropsDanglingInstructor(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	instructor := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, instructor))

	sch := validSchedule(instructor.ID)
	require.NoError(t, reg.Schedules.Create(ctx, sch))

	_, err := reg.Users.Delete(ctx, instructor.ID)
	require.NoError(t, err)

	schedules, err := reg.Schedules.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}
