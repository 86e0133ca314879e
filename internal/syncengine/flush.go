package syncengine

import (
	"context"
	"fmt"

	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

// FlushLogs pushes queued attendance logs to the remote store oldest first.
// A log that lands remotely is flagged synced locally; one that fails stays
// queued for the next run.
func (e *Engine) FlushLogs(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.remote.Ping(ctx); err != nil {
		return nil, err
	}

	rep := newReport()
	logs, err := e.local.ListUnsyncedLogs(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list unsynced logs: %w", err)
	}
	for _, l := range logs {
		existing, err := e.remote.GetLog(ctx, l.ID)
		if err != nil {
			rep.addError(fmt.Sprintf("log %s: lookup: %v", l.ID, err))
			continue
		}
		if existing == nil {
			err = e.remote.CreateLog(ctx, l)
		} else {
			err = e.remote.UpdateLog(ctx, l)
		}
		if err != nil {
			rep.addError(fmt.Sprintf("log %s: push: %v", l.ID, err))
			continue
		}
		if err := e.local.MarkLogSynced(ctx, l.ID); err != nil {
			rep.addError(fmt.Sprintf("log %s: mark synced: %v", l.ID, err))
			continue
		}
		rep.Counts[store.EntityLog]++
	}
	e.log.Info().Int("pushed", rep.Counts[store.EntityLog]).Bool("partial", rep.Partial).Msg("log flush finished")
	return rep, nil
}

// FlushChanges drains the change log, replaying offline mutations against
// the remote store oldest first. Each entry is retired on success; a failed
// entry keeps its error message and is retried next run.
func (e *Engine) FlushChanges(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.remote.Ping(ctx); err != nil {
		return nil, err
	}

	rep := newReport()
	changes, err := e.local.ListPendingChanges(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending changes: %w", err)
	}
	for _, ch := range changes {
		if err := e.pushChange(ctx, ch); err != nil {
			rep.addError(fmt.Sprintf("%s %s %s: %v", ch.Op, ch.EntityType, ch.EntityID, err))
			if err := e.local.MarkChangeError(ctx, ch.ID, err.Error()); err != nil {
				e.log.Warn().Err(err).Uint("change_id", ch.ID).Msg("could not record change error")
			}
			continue
		}
		if err := e.local.MarkChangeProcessed(ctx, ch.ID); err != nil {
			rep.addError(fmt.Sprintf("%s %s %s: retire: %v", ch.Op, ch.EntityType, ch.EntityID, err))
			continue
		}
		rep.Counts[ch.EntityType]++
	}
	e.log.Info().Interface("counts", rep.Counts).Bool("partial", rep.Partial).Msg("change flush finished")
	return rep, nil
}

func (e *Engine) pushChange(ctx context.Context, ch localstore.Change) error {
	switch ch.EntityType {
	case store.EntityUser:
		return pushEntity(ctx, ch, e.local.GetUser, e.remote.GetUser, e.remote.CreateUser, e.remote.UpdateUser, e.remote.DeleteUser)
	case store.EntityCollege:
		return pushEntity(ctx, ch, e.local.GetCollege, e.remote.GetCollege, e.remote.CreateCollege, e.remote.UpdateCollege, e.remote.DeleteCollege)
	case store.EntityCourse:
		return pushEntity(ctx, ch, e.local.GetCourse, e.remote.GetCourse, e.remote.CreateCourse, e.remote.UpdateCourse, e.remote.DeleteCourse)
	case store.EntitySection:
		return pushEntity(ctx, ch, e.local.GetSection, e.remote.GetSection, e.remote.CreateSection, e.remote.UpdateSection, e.remote.DeleteSection)
	case store.EntityRoom:
		return pushEntity(ctx, ch, e.local.GetRoom, e.remote.GetRoom, e.remote.CreateRoom, e.remote.UpdateRoom, e.remote.DeleteRoom)
	case store.EntitySemester:
		return pushEntity(ctx, ch, e.local.GetSemester, e.remote.GetSemester, e.remote.CreateSemester, e.remote.UpdateSemester, e.remote.DeleteSemester)
	case store.EntitySchedule:
		return pushEntity(ctx, ch, e.local.GetSchedule, e.remote.GetSchedule, e.remote.CreateSchedule, e.remote.UpdateSchedule, e.remote.DeleteSchedule)
	default:
		return fmt.Errorf("unknown entity type %q", ch.EntityType)
	}
}

// pushEntity replays one change. Deletes go straight through; for creates
// and updates the local row is the source of truth and the remote side is
// created or overwritten depending on whether it already exists. A local
// row that vanished since the change was recorded means a later delete is
// queued behind it, so the entry retires as a no-op.
func pushEntity[T any](
	ctx context.Context,
	ch localstore.Change,
	getLocal func(context.Context, string) (*T, error),
	getRemote func(context.Context, string) (*T, error),
	create func(context.Context, *T) error,
	update func(context.Context, *T) error,
	del func(context.Context, string) (bool, error),
) error {
	if ch.Op == localstore.ChangeDelete {
		_, err := del(ctx, ch.EntityID)
		return err
	}
	row, err := getLocal(ctx, ch.EntityID)
	if err != nil {
		return fmt.Errorf("local lookup: %w", err)
	}
	if row == nil {
		return nil
	}
	existing, err := getRemote(ctx, ch.EntityID)
	if err != nil {
		return fmt.Errorf("remote lookup: %w", err)
	}
	if existing == nil {
		return create(ctx, row)
	}
	return update(ctx, row)
}
