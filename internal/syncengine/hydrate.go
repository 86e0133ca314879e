package syncengine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/store"
)

// Hydrate copies every entity from the remote store into the local mirror.
// Rows land keyed by their remote identifier through conflict-overwriting
// upserts, so running hydration twice is a no-op rather than a duplicator.
// A row that fails is logged and skipped; the run only aborts when the
// remote is unreachable up front.
func (e *Engine) Hydrate(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.remote.Ping(ctx); err != nil {
		return nil, err
	}

	rep := newReport()
	hydrateEntity(ctx, rep, e.log, store.EntityUser, e.remote.ListUsers, e.local.UpsertUserMirror)
	hydrateEntity(ctx, rep, e.log, store.EntityCollege, e.remote.ListColleges, e.local.UpsertCollegeMirror)
	hydrateEntity(ctx, rep, e.log, store.EntityCourse, e.remote.ListCourses, e.local.UpsertCourseMirror)
	hydrateEntity(ctx, rep, e.log, store.EntitySection, e.remote.ListSections, e.local.UpsertSectionMirror)
	hydrateEntity(ctx, rep, e.log, store.EntityRoom, e.remote.ListRooms, e.local.UpsertRoomMirror)
	hydrateEntity(ctx, rep, e.log, store.EntitySemester, e.remote.ListSemesters, e.local.UpsertSemesterMirror)
	hydrateEntity(ctx, rep, e.log, store.EntitySchedule, e.remote.ListSchedules, e.local.UpsertScheduleMirror)
	hydrateEntity(ctx, rep, e.log, store.EntityLog, e.remote.ListLogs, e.local.UpsertLogMirror)

	e.log.Info().Interface("counts", rep.Counts).Bool("partial", rep.Partial).Msg("hydration finished")
	return rep, nil
}

func hydrateEntity[T any](
	ctx context.Context,
	rep *Report,
	log zerolog.Logger,
	entity string,
	list func(context.Context) ([]*T, error),
	upsert func(context.Context, *T) error,
) {
	rows, err := list(ctx)
	if err != nil {
		log.Warn().Err(err).Str("entity", entity).Msg("hydration list failed")
		rep.addError(fmt.Sprintf("%s: list: %v", entity, err))
		return
	}
	for _, row := range rows {
		if err := upsert(ctx, row); err != nil {
			log.Warn().Err(err).Str("entity", entity).Msg("hydration upsert failed")
			rep.addError(fmt.Sprintf("%s: upsert: %v", entity, err))
			continue
		}
		rep.Counts[entity]++
	}
}
