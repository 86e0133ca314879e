package localstore

import (
	"context"

	"github.com/famsdev/fams_backend/internal/models"
)

// Attendance logs are the only entity without change-log tracking: their
// sync state is the synced flag itself, matching the queue the recognition
// side drains. New and mutated rows are unsynced until a flush succeeds.

func (s *Store) CreateLog(ctx context.Context, l *models.AttendanceLog) error {
	row := toLogRow(l)
	row.Synced = false
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	l.ID = row.ID
	l.CreatedAt = row.CreatedAt
	l.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetLog(ctx context.Context, id string) (*models.AttendanceLog, error) {
	row, err := first[logRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

// GetLogByScheduleDate returns the live row for the pair: one with a time-in
// recorded wins over a sweep-inserted absent row that may share the key.
func (s *Store) GetLogByScheduleDate(ctx context.Context, scheduleID, date string) (*models.AttendanceLog, error) {
	row, err := first[logRow](s.db.WithContext(ctx).
		Where("schedule_id = ? AND date = ?", scheduleID, date).
		Order("time_in = ''").Order("created_at"))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) GetUnscheduledLog(ctx context.Context, instructorID, date string) (*models.AttendanceLog, error) {
	row, err := first[logRow](s.db.WithContext(ctx).
		Where("instructor_id = ? AND date = ? AND schedule_id = ''", instructorID, date).
		Order("created_at"))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListLogs(ctx context.Context) ([]*models.AttendanceLog, error) {
	var rows []logRow
	if err := s.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return logsToModels(rows), nil
}

func (s *Store) ListLogsByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error) {
	var rows []logRow
	if err := s.db.WithContext(ctx).Where("date = ?", date).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return logsToModels(rows), nil
}

func (s *Store) ListLogsBySchedule(ctx context.Context, scheduleID string) ([]*models.AttendanceLog, error) {
	var rows []logRow
	if err := s.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).Order("date").Find(&rows).Error; err != nil {
		return nil, err
	}
	return logsToModels(rows), nil
}

// UpdateLog persists the row and resets its synced flag so the next flush
// pushes the mutation (a time-out landing after the time-in already synced).
func (s *Store) UpdateLog(ctx context.Context, l *models.AttendanceLog) error {
	row := toLogRow(l)
	row.Synced = false
	row.SyncedAt = nil
	return s.db.WithContext(ctx).Save(row).Error
}

func (s *Store) DeleteLog(ctx context.Context, id string) (bool, error) {
	return deleteByID(s.db.WithContext(ctx), &logRow{}, id)
}

func logsToModels(rows []logRow) []*models.AttendanceLog {
	out := make([]*models.AttendanceLog, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out
}
