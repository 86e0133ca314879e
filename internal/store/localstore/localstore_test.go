package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserCRUDTracksChanges(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	u := &models.User{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Username:  "jdelacruz",
		Email:     "juan@example.com",
		Password:  "hashed",
		Role:      models.RoleInstructor,
		Status:    models.StatusActive,
	}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	changes, err := s.ListPendingChanges(ctx, 0)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, store.EntityUser, changes[0].EntityType)
	assert.Equal(t, ChangeCreate, changes[0].Op)
	assert.Equal(t, u.ID, changes[0].EntityID)

	u.Email = "juan.delacruz@example.com"
	require.NoError(t, s.UpdateUser(ctx, u))

	existed, err := s.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	changes, err = s.ListPendingChanges(ctx, 0)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, ChangeDelete, changes[2].Op)
}

func TestFindUserByNameForms(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	u := &models.User{
		FirstName: "Maria",
		LastName:  "Santos",
		Username:  "msantos",
		Password:  "hashed",
		Role:      models.RoleInstructor,
	}
	require.NoError(t, s.CreateUser(ctx, u))

	for _, name := range []string{"Santos, Maria", "Maria Santos", "Santos", "msantos"} {
		got, err := s.FindUserByName(ctx, name)
		require.NoError(t, err, name)
		require.NotNil(t, got, name)
		assert.Equal(t, u.ID, got.ID, name)
	}

	got, err := s.FindUserByName(ctx, "Reyes, Pedro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogSyncLifecycle(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	l := &models.AttendanceLog{
		ScheduleID:   "sched-1",
		InstructorID: "instr-1",
		Date:         "2026-01-05",
		Status:       models.LogPresent,
		TimeIn:       "09:00:00",
	}
	require.NoError(t, s.CreateLog(ctx, l))

	unsynced, err := s.ListUnsyncedLogs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)

	require.NoError(t, s.MarkLogSynced(ctx, l.ID))
	unsynced, err = s.ListUnsyncedLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, unsynced)

	// a mutation re-queues the row
	l.TimeOut = "09:55:00"
	require.NoError(t, s.UpdateLog(ctx, l))
	unsynced, err = s.ListUnsyncedLogs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)

	// logs never write the change log
	changes, err := s.ListPendingChanges(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMirrorUpsertIdempotent(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	u := &models.User{
		ID:        "remote-user-1",
		FirstName: "Ana",
		LastName:  "Lopez",
		Username:  "alopez",
		Password:  "hashed",
		Role:      models.RoleDean,
	}
	require.NoError(t, s.UpsertUserMirror(ctx, u))
	u.Email = "ana@example.com"
	require.NoError(t, s.UpsertUserMirror(ctx, u))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ana@example.com", users[0].Email)

	// mirror writes bypass change tracking
	changes, err := s.ListPendingChanges(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestGetLogByScheduleDatePrefersLiveRow(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	absent := &models.AttendanceLog{
		ScheduleID: "sched-1",
		Date:       "2026-01-05",
		Status:     models.LogAbsent,
	}
	require.NoError(t, s.CreateLog(ctx, absent))
	live := &models.AttendanceLog{
		ScheduleID: "sched-1",
		Date:       "2026-01-05",
		Status:     models.LogPresent,
		TimeIn:     "09:02:00",
	}
	require.NoError(t, s.CreateLog(ctx, live))

	got, err := s.GetLogByScheduleDate(ctx, "sched-1", "2026-01-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, live.ID, got.ID)
}

func TestLogMirrorLandsSynced(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	l := &models.AttendanceLog{
		ID:         "remote-log-1",
		ScheduleID: "sched-1",
		Date:       "2026-01-05",
		Status:     models.LogPresent,
		TimeIn:     "09:00:00",
	}
	require.NoError(t, s.UpsertLogMirror(ctx, l))

	unsynced, err := s.ListUnsyncedLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestScheduleWindowQuery(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	sch := &models.Schedule{
		CourseCode:    "CS101",
		InstructorID:  "instr-1",
		Room:          "Lab 1",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Days:          models.Monday | models.Wednesday,
		SemesterStart: "2026-01-05",
		SemesterEnd:   "2026-05-29",
	}
	require.NoError(t, s.CreateSchedule(ctx, sch))

	in, err := s.ListSchedulesByInstructorWindow(ctx, "instr-1", "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Len(t, in, 1)

	out, err := s.ListSchedulesByInstructorWindow(ctx, "instr-1", "2026-06-01", "2026-06-30")
	require.NoError(t, err)
	assert.Empty(t, out)
}
