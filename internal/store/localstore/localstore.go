// Package localstore implements store.Store on an embedded SQLite database
// through GORM. It is a structural mirror of the remote schema: rows are
// keyed by the same string identifiers the remote store uses, so hydration
// can re-run without creating duplicates. On top of the shared contract it
// carries the offline machinery the sync engine drains: a synced flag on
// attendance logs and a change log for every other entity.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/famsdev/fams_backend/internal/store"
)

// Store is the SQLite-backed adapter.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates the
// mirror schema. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", store.ErrUnavailable, path, err)
	}
	if err := db.AutoMigrate(
		&userRow{}, &collegeRow{}, &courseRow{}, &sectionRow{},
		&roomRow{}, &semesterRow{}, &scheduleRow{}, &logRow{}, &changeRow{},
	); err != nil {
		return nil, fmt.Errorf("migrate local schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for the seeding path.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// first runs the query and translates "no rows" into a nil result.
func first[T any](db *gorm.DB) (*T, error) {
	var row T
	if err := db.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// deleteByID removes a row and reports whether one existed.
func deleteByID(db *gorm.DB, model any, id string) (bool, error) {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Stats summarizes the mirror for the sync status surface.
type Stats struct {
	Users          int64 `json:"users"`
	Colleges       int64 `json:"colleges"`
	Courses        int64 `json:"courses"`
	Sections       int64 `json:"sections"`
	Rooms          int64 `json:"rooms"`
	Semesters      int64 `json:"semesters"`
	Schedules      int64 `json:"schedules"`
	Logs           int64 `json:"logs"`
	UnsyncedLogs   int64 `json:"unsyncedLogs"`
	PendingChanges int64 `json:"pendingChanges"`
}

// GetStats counts mirror rows and pending sync work.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var st Stats
	counts := []struct {
		model any
		dst   *int64
	}{
		{&userRow{}, &st.Users},
		{&collegeRow{}, &st.Colleges},
		{&courseRow{}, &st.Courses},
		{&sectionRow{}, &st.Sections},
		{&roomRow{}, &st.Rooms},
		{&semesterRow{}, &st.Semesters},
		{&scheduleRow{}, &st.Schedules},
		{&logRow{}, &st.Logs},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	if err := db.Model(&logRow{}).Where("synced = ?", false).Count(&st.UnsyncedLogs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&changeRow{}).Where("processed = ?", false).Count(&st.PendingChanges).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
