package remotestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/famsdev/fams_backend/internal/models"
)

func (s *Store) CreateSchedule(ctx context.Context, sch *models.Schedule) error {
	if sch.ID == "" {
		sch.ID = uuid.NewString()
	}
	stamp(&sch.CreatedAt, &sch.UpdatedAt)
	if _, err := surrealdb.Upsert[scheduleDoc](ctx, s.db, rid(tableSchedules, sch.ID), toScheduleDoc(sch)); err != nil {
		return fmt.Errorf("remote create schedule: %w", err)
	}
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	doc, err := selectOne[scheduleDoc](ctx, s, tableSchedules, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListSchedules(ctx context.Context) ([]*models.Schedule, error) {
	docs, err := queryRows[scheduleDoc](ctx, s,
		"SELECT * FROM schedules ORDER BY courseCode ASC, startTime ASC", nil)
	if err != nil {
		return nil, err
	}
	return scheduleDocsToModels(docs), nil
}

func (s *Store) ListSchedulesByInstructor(ctx context.Context, instructorID string) ([]*models.Schedule, error) {
	docs, err := queryRows[scheduleDoc](ctx, s,
		"SELECT * FROM schedules WHERE instructorId = $instructor ORDER BY startTime ASC",
		map[string]any{"instructor": instructorID})
	if err != nil {
		return nil, err
	}
	return scheduleDocsToModels(docs), nil
}

func (s *Store) ListSchedulesByInstructorWindow(ctx context.Context, instructorID, start, end string) ([]*models.Schedule, error) {
	docs, err := queryRows[scheduleDoc](ctx, s, `
		SELECT * FROM schedules
		WHERE instructorId = $instructor
			AND semesterStartDate <= $end
			AND semesterEndDate >= $start
		ORDER BY startTime ASC`,
		map[string]any{"instructor": instructorID, "start": start, "end": end})
	if err != nil {
		return nil, err
	}
	return scheduleDocsToModels(docs), nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sch *models.Schedule) error {
	sch.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[scheduleDoc](ctx, s.db, rid(tableSchedules, sch.ID), toScheduleDoc(sch)); err != nil {
		return fmt.Errorf("remote update schedule: %w", err)
	}
	return nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) (bool, error) {
	return deleteOne[scheduleDoc](ctx, s, tableSchedules, id)
}

func scheduleDocsToModels(docs []scheduleDoc) []*models.Schedule {
	out := make([]*models.Schedule, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out
}
