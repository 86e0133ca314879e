package remotestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/famsdev/fams_backend/internal/models"
)

func (s *Store) CreateLog(ctx context.Context, l *models.AttendanceLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	stamp(&l.CreatedAt, &l.UpdatedAt)
	if _, err := surrealdb.Upsert[logDoc](ctx, s.db, rid(tableLogs, l.ID), toLogDoc(l)); err != nil {
		return fmt.Errorf("remote create log: %w", err)
	}
	return nil
}

func (s *Store) GetLog(ctx context.Context, id string) (*models.AttendanceLog, error) {
	doc, err := selectOne[logDoc](ctx, s, tableLogs, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// GetLogByScheduleDate returns the live row for the pair: one with a time-in
// recorded wins over a sweep-inserted absent row that may share the key.
func (s *Store) GetLogByScheduleDate(ctx context.Context, scheduleID, date string) (*models.AttendanceLog, error) {
	docs, err := queryRows[logDoc](ctx, s, `
		SELECT * FROM attendance_logs
		WHERE scheduleId = $schedule AND date = $date
		ORDER BY createdAt ASC`,
		map[string]any{"schedule": scheduleID, "date": date})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	for i := range docs {
		if docs[i].TimeIn != "" {
			return docs[i].toModel(), nil
		}
	}
	return docs[0].toModel(), nil
}

func (s *Store) GetUnscheduledLog(ctx context.Context, instructorID, date string) (*models.AttendanceLog, error) {
	doc, err := queryOne[logDoc](ctx, s, `
		SELECT * FROM attendance_logs
		WHERE instructorId = $instructor AND date = $date
			AND (scheduleId = NONE OR scheduleId = '')
		ORDER BY createdAt ASC LIMIT 1`,
		map[string]any{"instructor": instructorID, "date": date})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListLogs(ctx context.Context) ([]*models.AttendanceLog, error) {
	docs, err := queryRows[logDoc](ctx, s,
		"SELECT * FROM attendance_logs ORDER BY date DESC, createdAt DESC", nil)
	if err != nil {
		return nil, err
	}
	return logDocsToModels(docs), nil
}

func (s *Store) ListLogsByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error) {
	docs, err := queryRows[logDoc](ctx, s,
		"SELECT * FROM attendance_logs WHERE date = $date ORDER BY createdAt ASC",
		map[string]any{"date": date})
	if err != nil {
		return nil, err
	}
	return logDocsToModels(docs), nil
}

func (s *Store) ListLogsBySchedule(ctx context.Context, scheduleID string) ([]*models.AttendanceLog, error) {
	docs, err := queryRows[logDoc](ctx, s,
		"SELECT * FROM attendance_logs WHERE scheduleId = $schedule ORDER BY date ASC",
		map[string]any{"schedule": scheduleID})
	if err != nil {
		return nil, err
	}
	return logDocsToModels(docs), nil
}

func (s *Store) UpdateLog(ctx context.Context, l *models.AttendanceLog) error {
	l.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[logDoc](ctx, s.db, rid(tableLogs, l.ID), toLogDoc(l)); err != nil {
		return fmt.Errorf("remote update log: %w", err)
	}
	return nil
}

func (s *Store) DeleteLog(ctx context.Context, id string) (bool, error) {
	return deleteOne[logDoc](ctx, s, tableLogs, id)
}

func logDocsToModels(docs []logDoc) []*models.AttendanceLog {
	out := make([]*models.AttendanceLog, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out
}
