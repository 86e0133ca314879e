package syncengine

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

// fakeRemote reuses the SQLite adapter as a stand-in remote: it satisfies
// the full store surface, and the ping is controllable.
type fakeRemote struct {
	*localstore.Store
	pingErr error
}

func (f *fakeRemote) Ping(ctx context.Context) error { return f.pingErr }

func newEngine(t *testing.T) (*Engine, *localstore.Store, *fakeRemote) {
	t.Helper()
	local, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	remoteStore, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { remoteStore.Close() })

	remote := &fakeRemote{Store: remoteStore}
	return New(local, remote, zerolog.Nop()), local, remote
}

func seedRemote(t *testing.T, remote *fakeRemote) (*models.User, *models.Schedule) {
	t.Helper()
	ctx := context.Background()

	u := &models.User{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Username:  "jdelacruz",
		Password:  "hashed",
		Role:      models.RoleInstructor,
		Status:    models.StatusActive,
	}
	require.NoError(t, remote.CreateUser(ctx, u))

	sch := &models.Schedule{
		CourseCode:    "CS101",
		InstructorID:  u.ID,
		Room:          "Lab 1",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Days:          models.Monday,
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-05-29",
	}
	require.NoError(t, remote.CreateSchedule(ctx, sch))

	l := &models.AttendanceLog{
		ScheduleID:   sch.ID,
		InstructorID: u.ID,
		Course:       "CS101",
		Date:         "2026-01-05",
		Status:       models.LogPresent,
		TimeIn:       "09:00:00",
	}
	require.NoError(t, remote.CreateLog(ctx, l))
	return u, sch
}

func TestHydrateIdempotent(t *testing.T) {
	engine, local, remote := newEngine(t)
	ctx := context.Background()
	seedRemote(t, remote)

	rep, err := engine.Hydrate(ctx)
	require.NoError(t, err)
	assert.False(t, rep.Partial)
	assert.Equal(t, 1, rep.Counts[store.EntityUser])
	assert.Equal(t, 1, rep.Counts[store.EntitySchedule])
	assert.Equal(t, 1, rep.Counts[store.EntityLog])

	stats, err := local.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Users)
	assert.EqualValues(t, 1, stats.Schedules)
	assert.EqualValues(t, 1, stats.Logs)
	// hydrated rows are not sync work
	assert.EqualValues(t, 0, stats.UnsyncedLogs)
	assert.EqualValues(t, 0, stats.PendingChanges)

	_, err = engine.Hydrate(ctx)
	require.NoError(t, err)

	again, err := local.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Users, again.Users)
	assert.Equal(t, stats.Schedules, again.Schedules)
	assert.Equal(t, stats.Logs, again.Logs)
}

func TestFlowsFailFastWhenRemoteDown(t *testing.T) {
	engine, _, remote := newEngine(t)
	remote.pingErr = fmt.Errorf("%w: connection refused", store.ErrUnavailable)
	ctx := context.Background()

	_, err := engine.Hydrate(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = engine.FlushLogs(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = engine.FlushChanges(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestFlushLogs(t *testing.T) {
	engine, local, remote := newEngine(t)
	ctx := context.Background()

	l := &models.AttendanceLog{
		ScheduleID:   "sched-1",
		InstructorID: "instr-1",
		Date:         "2026-01-05",
		Status:       models.LogLate,
		TimeIn:       "09:20:00",
	}
	require.NoError(t, local.CreateLog(ctx, l))

	rep, err := engine.FlushLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Counts[store.EntityLog])

	pushed, err := remote.GetLog(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, pushed)
	assert.Equal(t, models.LogLate, pushed.Status)

	unsynced, err := local.ListUnsyncedLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, unsynced)

	// a later mutation flushes as an update, not a duplicate
	l.TimeOut = "09:55:00"
	require.NoError(t, local.UpdateLog(ctx, l))
	_, err = engine.FlushLogs(ctx)
	require.NoError(t, err)

	pushed, err = remote.GetLog(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, pushed)
	assert.Equal(t, "09:55:00", pushed.TimeOut)
}

func TestFlushChanges(t *testing.T) {
	engine, local, remote := newEngine(t)
	ctx := context.Background()

	u := &models.User{
		FirstName: "Maria",
		LastName:  "Santos",
		Username:  "msantos",
		Password:  "hashed",
		Role:      models.RoleDean,
	}
	require.NoError(t, local.CreateUser(ctx, u))
	u.Email = "maria@example.com"
	require.NoError(t, local.UpdateUser(ctx, u))

	rep, err := engine.FlushChanges(ctx)
	require.NoError(t, err)
	assert.False(t, rep.Partial)
	assert.Equal(t, 2, rep.Counts[store.EntityUser])

	pushed, err := remote.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, pushed)
	assert.Equal(t, "maria@example.com", pushed.Email)

	pending, err := local.ListPendingChanges(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// deletes replay too
	_, err = local.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	_, err = engine.FlushChanges(ctx)
	require.NoError(t, err)

	pushed, err = remote.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, pushed)
}

func TestReplaceAndRemap(t *testing.T) {
	engine, local, remote := newEngine(t)
	ctx := context.Background()

	instructorID := "instr-1"
	oldA := &models.Schedule{
		CourseCode: "CS101", InstructorID: instructorID, Room: "Lab 1",
		StartTime: "09:00", EndTime: "10:00", Days: models.Monday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	oldB := &models.Schedule{
		CourseCode: "CS102", InstructorID: instructorID, Room: "Lab 2",
		StartTime: "13:00", EndTime: "14:30", Days: models.Tuesday | models.Thursday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	require.NoError(t, remote.CreateSchedule(ctx, oldA))
	require.NoError(t, remote.CreateSchedule(ctx, oldB))

	for i, schID := range []string{oldA.ID, oldA.ID, oldB.ID} {
		require.NoError(t, remote.CreateLog(ctx, &models.AttendanceLog{
			ScheduleID:   schID,
			InstructorID: instructorID,
			Date:         fmt.Sprintf("2026-01-0%d", i+5),
			Status:       models.LogPresent,
			TimeIn:       "09:00:00",
		}))
	}

	_, err := engine.Hydrate(ctx)
	require.NoError(t, err)

	// corrected re-upload for the same term
	newA := &models.Schedule{
		CourseCode: "CS101", Room: "Lab 1",
		StartTime: "09:00", EndTime: "10:00", Days: models.Monday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	newB := &models.Schedule{
		CourseCode: "CS102", Room: "Lab 2",
		StartTime: "13:00", EndTime: "14:30", Days: models.Tuesday | models.Thursday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}

	rep, err := engine.ReplaceSchedules(ctx, instructorID, []*models.Schedule{newA, newB})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Created)
	assert.Equal(t, 2, rep.Deleted)
	assert.Equal(t, 3, rep.Remapped)
	assert.Empty(t, rep.Orphans)

	remoteSchedules, err := remote.ListSchedulesByInstructor(ctx, instructorID)
	require.NoError(t, err)
	require.Len(t, remoteSchedules, 2)
	for _, sch := range remoteSchedules {
		assert.NotEqual(t, oldA.ID, sch.ID)
		assert.NotEqual(t, oldB.ID, sch.ID)
	}

	newIDs := map[string]bool{newA.ID: true, newB.ID: true}
	remoteLogs, err := remote.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, remoteLogs, 3)
	for _, l := range remoteLogs {
		assert.True(t, newIDs[l.ScheduleID], "log %s references %s", l.ID, l.ScheduleID)
	}

	// the mirror followed
	localSchedules, err := local.ListSchedulesByInstructor(ctx, instructorID)
	require.NoError(t, err)
	require.Len(t, localSchedules, 2)
	localLogs, err := local.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, localLogs, 3)
	for _, l := range localLogs {
		assert.True(t, newIDs[l.ScheduleID], "local log %s references %s", l.ID, l.ScheduleID)
	}
}

func TestReplaceScopedToSemesterWindow(t *testing.T) {
	engine, local, remote := newEngine(t)
	ctx := context.Background()

	instructorID := "instr-1"
	spring := &models.Schedule{
		CourseCode: "CS101", InstructorID: instructorID, Room: "Lab 1",
		StartTime: "09:00", EndTime: "10:00", Days: models.Monday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	require.NoError(t, remote.CreateSchedule(ctx, spring))
	springLog := &models.AttendanceLog{
		ScheduleID: spring.ID, InstructorID: instructorID,
		Date: "2026-01-05", Status: models.LogPresent, TimeIn: "09:00:00",
	}
	require.NoError(t, remote.CreateLog(ctx, springLog))
	_, err := engine.Hydrate(ctx)
	require.NoError(t, err)

	// next term's upload must not touch the spring set
	fall := &models.Schedule{
		CourseCode: "CS201", Room: "Lab 3",
		StartTime: "10:00", EndTime: "11:30", Days: models.Monday,
		SemesterStart: "2026-08-10", SemesterEnd: "2026-12-18",
	}
	rep, err := engine.ReplaceSchedules(ctx, instructorID, []*models.Schedule{fall})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 0, rep.Deleted)
	assert.Equal(t, 0, rep.Remapped)
	assert.Empty(t, rep.Orphans)

	kept, err := remote.GetSchedule(ctx, spring.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	keptLog, err := remote.GetLog(ctx, springLog.ID)
	require.NoError(t, err)
	require.NotNil(t, keptLog)
	assert.Equal(t, spring.ID, keptLog.ScheduleID)

	localSchedules, err := local.ListSchedulesByInstructor(ctx, instructorID)
	require.NoError(t, err)
	assert.Len(t, localSchedules, 2)
}

func TestReplaceOrphansUnmatchedLogs(t *testing.T) {
	engine, _, remote := newEngine(t)
	ctx := context.Background()

	instructorID := "instr-1"
	old := &models.Schedule{
		CourseCode: "CS101", InstructorID: instructorID, Room: "Lab 1",
		StartTime: "09:00", EndTime: "10:00", Days: models.Monday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	require.NoError(t, remote.CreateSchedule(ctx, old))
	require.NoError(t, remote.CreateLog(ctx, &models.AttendanceLog{
		ScheduleID: old.ID, InstructorID: instructorID,
		Date: "2026-01-05", Status: models.LogPresent, TimeIn: "09:00:00",
	}))
	_, err := engine.Hydrate(ctx)
	require.NoError(t, err)

	// structurally different replacement for the same term: the room moved
	replacement := &models.Schedule{
		CourseCode: "CS101", Room: "Lab 9",
		StartTime: "09:00", EndTime: "10:00", Days: models.Monday,
		SemesterStart: "2026-01-05", SemesterEnd: "2026-05-29",
	}
	rep, err := engine.ReplaceSchedules(ctx, instructorID, []*models.Schedule{replacement})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Remapped)
	assert.Len(t, rep.Orphans, 1)
}
