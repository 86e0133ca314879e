package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.Local)
}

type fixture struct {
	st         *localstore.Store
	machine    *Machine
	instructor *models.User
	schedule   *models.Schedule
	now        time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	st, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f := &fixture{st: st, now: monday}
	f.machine = NewWithClock(st, zerolog.Nop(), func() time.Time { return f.now })

	ctx := context.Background()
	f.instructor = &models.User{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Username:  "jdelacruz",
		Password:  "hashed",
		Role:      models.RoleInstructor,
		Status:    models.StatusActive,
	}
	require.NoError(t, st.CreateUser(ctx, f.instructor))

	f.schedule = &models.Schedule{
		CourseCode:    "CS101",
		InstructorID:  f.instructor.ID,
		Room:          "Lab 1",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Days:          models.Monday | models.Wednesday,
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-05-29",
	}
	require.NoError(t, st.CreateSchedule(ctx, f.schedule))
	return f
}

func TestTimeInIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.machine.TimeIn(ctx, f.schedule.ID, at(9, 2), false)
	require.NoError(t, err)
	assert.Equal(t, models.LogPresent, first.Status)
	assert.Equal(t, "09:02:00", first.TimeIn)

	second, err := f.machine.TimeIn(ctx, f.schedule.ID, at(9, 5), false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "09:02:00", second.TimeIn)

	logs, err := f.st.ListLogsBySchedule(ctx, f.schedule.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestTimeInUnknownSchedule(t *testing.T) {
	f := setup(t)
	_, err := f.machine.TimeIn(context.Background(), "no-such-schedule", at(9, 0), false)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestTimeInLate(t *testing.T) {
	f := setup(t)

	logRow, err := f.machine.TimeIn(context.Background(), f.schedule.ID, at(9, 20), true)
	require.NoError(t, err)
	assert.Equal(t, models.LogLate, logRow.Status)
	assert.Equal(t, "09:20:00", logRow.TimeIn)
	assert.Equal(t, "Dela Cruz, Juan", logRow.InstructorName)
}

func TestTimeOutLeftEarly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.machine.TimeIn(ctx, f.schedule.ID, at(9, 0), false)
	require.NoError(t, err)

	logRow, err := f.machine.TimeOut(ctx, f.schedule.ID, at(9, 40))
	require.NoError(t, err)
	assert.Equal(t, models.LogLeftEarly, logRow.Status)
	assert.Equal(t, "09:40:00", logRow.TimeOut)
	assert.Contains(t, logRow.Remarks, "20 minutes early")
}

func TestTimeOutWithinGraceKeepsStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.machine.TimeIn(ctx, f.schedule.ID, at(9, 0), false)
	require.NoError(t, err)

	logRow, err := f.machine.TimeOut(ctx, f.schedule.ID, at(9, 50))
	require.NoError(t, err)
	assert.Equal(t, models.LogPresent, logRow.Status)
	assert.Empty(t, logRow.Remarks)
}

func TestTimeOutWithoutTimeIn(t *testing.T) {
	f := setup(t)
	_, err := f.machine.TimeOut(context.Background(), f.schedule.ID, at(9, 40))
	assert.ErrorIs(t, err, ErrTimeInNotFound)
}

func TestLogUnscheduledIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.machine.LogUnscheduled(ctx, f.instructor.ID, at(11, 0), "cam-3")
	require.NoError(t, err)
	assert.Equal(t, models.LogNoSchedule, first.Status)
	assert.Equal(t, "cam-3", first.CameraID)

	second, err := f.machine.LogUnscheduled(ctx, f.instructor.ID, at(11, 30), "cam-4")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSweepIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.now = at(10, 30) // past the schedule's end

	inserted, err := f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	inserted, err = f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	logs, err := f.st.ListLogsBySchedule(ctx, f.schedule.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.LogAbsent, logs[0].Status)
}

func TestTimeInAfterSweepReopensAbsentRow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.now = at(10, 30) // past the schedule's end

	inserted, err := f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	first, err := f.machine.TimeIn(ctx, f.schedule.ID, at(10, 35), false)
	require.NoError(t, err)
	assert.Equal(t, models.LogReturned, first.Status)
	assert.Equal(t, "10:35:00", first.TimeIn)
	assert.Equal(t, "Dela Cruz, Juan", first.InstructorName)

	// still idempotent after the reopen
	second, err := f.machine.TimeIn(ctx, f.schedule.ID, at(10, 40), false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "10:35:00", second.TimeIn)

	logs, err := f.st.ListLogsBySchedule(ctx, f.schedule.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestTimeOutAfterSweepClosesReopenedRow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.now = at(10, 30)

	_, err := f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)

	opened, err := f.machine.TimeIn(ctx, f.schedule.ID, at(10, 35), false)
	require.NoError(t, err)

	closed, err := f.machine.TimeOut(ctx, f.schedule.ID, at(10, 45))
	require.NoError(t, err)
	assert.Equal(t, opened.ID, closed.ID)
	assert.Equal(t, "10:45:00", closed.TimeOut)
	assert.Equal(t, models.LogReturned, closed.Status)
}

func TestSweepSkipsLoggedAndUnfinished(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// class still running
	f.now = at(9, 30)
	inserted, err := f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	// a time-in blocks the absent row even after the end
	_, err = f.machine.TimeIn(ctx, f.schedule.ID, at(9, 0), false)
	require.NoError(t, err)
	f.now = at(10, 30)
	inserted, err = f.machine.SweepAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestResolveOutcomes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.machine.ResolveCurrent(ctx, "Reyes, Pedro", "Lab 1", at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoInstructor, res.Outcome)

	// Tuesday: no meeting day
	tuesday := time.Date(2026, 1, 6, 9, 30, 0, 0, time.Local)
	res, err = f.machine.ResolveCurrent(ctx, "Dela Cruz, Juan", "Lab 1", tuesday)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoScheduleToday, res.Outcome)

	res, err = f.machine.ResolveCurrent(ctx, "Dela Cruz, Juan", "Lab 1", at(14, 0))
	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeMismatch, res.Outcome)

	res, err = f.machine.ResolveCurrent(ctx, "Dela Cruz, Juan", "Lab 2", at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRoomMismatch, res.Outcome)
	require.NotNil(t, res.Schedule)
	assert.Equal(t, f.schedule.ID, res.Schedule.ID)

	res, err = f.machine.ResolveCurrent(ctx, "Dela Cruz, Juan", "Lab 1", at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, res.Outcome)
}

func TestResolveEarlyLeadAndRoomForms(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// 08:40 is inside the 30 minute early check-in lead
	res, err := f.machine.ResolveCurrent(ctx, "Juan Dela Cruz", "lab1", at(8, 40))
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, res.Outcome)

	// 08:20 is not
	res, err = f.machine.ResolveCurrent(ctx, "Juan Dela Cruz", "lab1", at(8, 20))
	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeMismatch, res.Outcome)

	// substring match in either direction
	res, err = f.machine.ResolveCurrent(ctx, "Dela Cruz, Juan", "Main Building Lab 1", at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, res.Outcome)
}
