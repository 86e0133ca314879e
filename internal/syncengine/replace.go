package syncengine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

// RemapReport summarizes a schedule replacement.
type RemapReport struct {
	Created  int `json:"created"`
	Deleted  int `json:"deleted"`
	Remapped int `json:"remapped"`
	// Orphans lists log ids whose old schedule has no structural match in
	// the incoming set. They keep their stale reference and are surfaced
	// for manual review rather than silently detached.
	Orphans []string `json:"orphans,omitempty"`
}

// ReplaceSchedules swaps an instructor's schedule set for a freshly uploaded
// one while preserving attendance history. The replacement is scoped to the
// semester window the upload covers, so re-uploading one term never touches
// another term's schedules or logs. The order is additive before
// destructive: insert the incoming rows, remap existing logs onto them by
// structural identity (course code, room, time window and day set), and only
// then delete the old rows. A crash mid-flow can leave both generations
// present but never a log pointing at a schedule that no longer exists
// because of this flow.
func ReplaceSchedules(ctx context.Context, st store.Store, log zerolog.Logger, instructorID string, incoming []*models.Schedule) (*RemapReport, error) {
	if len(incoming) == 0 {
		return &RemapReport{}, nil
	}
	winStart, winEnd := semesterWindow(incoming)
	old, err := st.ListSchedulesByInstructorWindow(ctx, instructorID, winStart, winEnd)
	if err != nil {
		return nil, fmt.Errorf("list current schedules: %w", err)
	}

	rep := &RemapReport{}
	newByKey := map[models.StructuralKey]string{}
	for _, sch := range incoming {
		sch.InstructorID = instructorID
		if err := st.CreateSchedule(ctx, sch); err != nil {
			return nil, fmt.Errorf("insert schedule %s: %w", sch.CourseCode, err)
		}
		rep.Created++
		key := sch.Structural()
		if _, dup := newByKey[key]; dup {
			log.Warn().Str("course", sch.CourseCode).Msg("duplicate structural key in upload, logs remap to the first")
			continue
		}
		newByKey[key] = sch.ID
	}

	for _, oldSch := range old {
		logs, err := st.ListLogsBySchedule(ctx, oldSch.ID)
		if err != nil {
			return nil, fmt.Errorf("list logs for schedule %s: %w", oldSch.ID, err)
		}
		newID, matched := newByKey[oldSch.Structural()]
		for _, l := range logs {
			if !matched {
				rep.Orphans = append(rep.Orphans, l.ID)
				log.Warn().Str("log_id", l.ID).Str("schedule_id", oldSch.ID).Msg("no structural match for log, keeping stale reference")
				continue
			}
			l.ScheduleID = newID
			if err := st.UpdateLog(ctx, l); err != nil {
				return nil, fmt.Errorf("remap log %s: %w", l.ID, err)
			}
			rep.Remapped++
		}
	}

	for _, oldSch := range old {
		if _, err := st.DeleteSchedule(ctx, oldSch.ID); err != nil {
			return nil, fmt.Errorf("delete schedule %s: %w", oldSch.ID, err)
		}
		rep.Deleted++
	}
	return rep, nil
}

// semesterWindow returns the date span the incoming set covers.
func semesterWindow(schedules []*models.Schedule) (string, string) {
	start, end := schedules[0].SemesterStart, schedules[0].SemesterEnd
	for _, sch := range schedules[1:] {
		if sch.SemesterStart < start {
			start = sch.SemesterStart
		}
		if sch.SemesterEnd > end {
			end = sch.SemesterEnd
		}
	}
	return start, end
}

// ReplaceSchedules runs the replacement against the remote store, then
// brings the local mirror in line: incoming schedules and their remapped
// logs are mirrored down and the superseded local rows removed.
func (e *Engine) ReplaceSchedules(ctx context.Context, instructorID string, incoming []*models.Schedule) (*RemapReport, error) {
	if len(incoming) == 0 {
		return &RemapReport{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.remote.Ping(ctx); err != nil {
		return nil, err
	}

	rep, err := ReplaceSchedules(ctx, e.remote, e.log, instructorID, incoming)
	if err != nil {
		return nil, err
	}

	keep := map[string]bool{}
	for _, sch := range incoming {
		keep[sch.ID] = true
		if err := e.local.UpsertScheduleMirror(ctx, sch); err != nil {
			e.log.Warn().Err(err).Str("schedule_id", sch.ID).Msg("could not mirror schedule locally")
			continue
		}
		logs, err := e.remote.ListLogsBySchedule(ctx, sch.ID)
		if err != nil {
			e.log.Warn().Err(err).Str("schedule_id", sch.ID).Msg("could not list remapped logs")
			continue
		}
		for _, l := range logs {
			if err := e.local.UpsertLogMirror(ctx, l); err != nil {
				e.log.Warn().Err(err).Str("log_id", l.ID).Msg("could not mirror remapped log locally")
			}
		}
	}

	winStart, winEnd := semesterWindow(incoming)
	localOld, err := e.local.ListSchedulesByInstructorWindow(ctx, instructorID, winStart, winEnd)
	if err != nil {
		e.log.Warn().Err(err).Msg("could not list local schedules for cleanup")
		return rep, nil
	}
	for _, sch := range localOld {
		if keep[sch.ID] {
			continue
		}
		if err := e.local.DeleteScheduleMirror(ctx, sch.ID); err != nil {
			e.log.Warn().Err(err).Str("schedule_id", sch.ID).Msg("could not remove superseded local schedule")
		}
	}
	return rep, nil
}
