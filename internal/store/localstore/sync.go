package localstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/famsdev/fams_backend/internal/models"
)

// Change-log operations.
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// Change is one pending offline mutation awaiting a flush.
type Change struct {
	ID         uint
	EntityType string
	EntityID   string
	Op         string
	CreatedAt  time.Time
}

func track(tx *gorm.DB, entityType, entityID, op string) error {
	return tx.Create(&changeRow{EntityType: entityType, EntityID: entityID, Op: op}).Error
}

// ListPendingChanges returns unprocessed change-log entries oldest first.
func (s *Store) ListPendingChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 500
	}
	var rows []changeRow
	if err := s.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Change, 0, len(rows))
	for _, r := range rows {
		out = append(out, Change{ID: r.ID, EntityType: r.EntityType, EntityID: r.EntityID, Op: r.Op, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

// MarkChangeProcessed retires a change-log entry after a successful push.
func (s *Store) MarkChangeProcessed(ctx context.Context, id uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&changeRow{}).Where("id = ?", id).
		Updates(map[string]any{"processed": true, "processed_at": &now, "last_error": ""}).Error
}

// MarkChangeError records the failure so the entry is retried next flush.
func (s *Store) MarkChangeError(ctx context.Context, id uint, msg string) error {
	return s.db.WithContext(ctx).Model(&changeRow{}).Where("id = ?", id).
		Update("last_error", msg).Error
}

// ListUnsyncedLogs returns queued attendance logs oldest first.
func (s *Store) ListUnsyncedLogs(ctx context.Context, limit int) ([]*models.AttendanceLog, error) {
	if limit <= 0 {
		limit = 500
	}
	var rows []logRow
	if err := s.db.WithContext(ctx).
		Where("synced = ?", false).
		Order("created_at").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return logsToModels(rows), nil
}

// MarkLogSynced flags a log row as pushed to the remote store.
func (s *Store) MarkLogSynced(ctx context.Context, id string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&logRow{}).Where("id = ?", id).
		Updates(map[string]any{"synced": true, "synced_at": &now}).Error
}

// PurgeSyncedLogs deletes synced log rows older than the retention window.
// The remote store keeps them indefinitely; the mirror only needs recent
// history for local reporting.
func (s *Store) PurgeSyncedLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.WithContext(ctx).
		Where("synced = ? AND synced_at < ?", true, cutoff).
		Delete(&logRow{})
	return res.RowsAffected, res.Error
}

// Mirror upserts, used only by hydration. Rows keep the remote identifier as
// their primary key and conflict resolution overwrites in place, which is
// what makes a re-run of hydration a no-op instead of a duplicator. None of
// these write the change log.

func upsert[T any](db *gorm.DB, row *T) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

func (s *Store) UpsertUserMirror(ctx context.Context, u *models.User) error {
	row, err := toUserRow(u)
	if err != nil {
		return err
	}
	return upsert(s.db.WithContext(ctx), row)
}

func (s *Store) UpsertCollegeMirror(ctx context.Context, c *models.College) error {
	return upsert(s.db.WithContext(ctx), toCollegeRow(c))
}

func (s *Store) UpsertCourseMirror(ctx context.Context, c *models.Course) error {
	return upsert(s.db.WithContext(ctx), toCourseRow(c))
}

func (s *Store) UpsertSectionMirror(ctx context.Context, sec *models.Section) error {
	return upsert(s.db.WithContext(ctx), toSectionRow(sec))
}

func (s *Store) UpsertRoomMirror(ctx context.Context, r *models.Room) error {
	return upsert(s.db.WithContext(ctx), toRoomRow(r))
}

func (s *Store) UpsertSemesterMirror(ctx context.Context, sem *models.Semester) error {
	return upsert(s.db.WithContext(ctx), toSemesterRow(sem))
}

func (s *Store) UpsertScheduleMirror(ctx context.Context, sch *models.Schedule) error {
	return upsert(s.db.WithContext(ctx), toScheduleRow(sch))
}

// DeleteScheduleMirror removes a schedule row without writing the change
// log, for cleanup after the remote side already deleted it.
func (s *Store) DeleteScheduleMirror(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&scheduleRow{}).Error
}

// UpsertLogMirror lands a remote log locally already marked synced: it came
// from the remote store, so there is nothing to flush back.
func (s *Store) UpsertLogMirror(ctx context.Context, l *models.AttendanceLog) error {
	row := toLogRow(l)
	row.Synced = true
	now := time.Now()
	row.SyncedAt = &now
	return upsert(s.db.WithContext(ctx), row)
}
