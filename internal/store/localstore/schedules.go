package localstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

func (s *Store) CreateSchedule(ctx context.Context, sch *models.Schedule) error {
	row := toScheduleRow(sch)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySchedule, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	sch.ID = row.ID
	sch.CreatedAt = row.CreatedAt
	sch.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	row, err := first[scheduleRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListSchedules(ctx context.Context) ([]*models.Schedule, error) {
	var rows []scheduleRow
	if err := s.db.WithContext(ctx).Order("course_code, start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return schedulesToModels(rows), nil
}

func (s *Store) ListSchedulesByInstructor(ctx context.Context, instructorID string) ([]*models.Schedule, error) {
	var rows []scheduleRow
	if err := s.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return schedulesToModels(rows), nil
}

func (s *Store) ListSchedulesByInstructorWindow(ctx context.Context, instructorID, start, end string) ([]*models.Schedule, error) {
	var rows []scheduleRow
	if err := s.db.WithContext(ctx).
		Where("instructor_id = ? AND sem_start <= ? AND sem_end >= ?", instructorID, end, start).
		Order("start_time").Find(&rows).Error; err != nil {
		return nil, err
	}
	return schedulesToModels(rows), nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sch *models.Schedule) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toScheduleRow(sch)).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySchedule, sch.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &scheduleRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntitySchedule, id, ChangeDelete)
	})
	return existed, err
}

func schedulesToModels(rows []scheduleRow) []*models.Schedule {
	out := make([]*models.Schedule, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out
}
