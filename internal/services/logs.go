package services

import (
	"context"
	"fmt"
	"time"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

// LogService serves attendance history. Writes normally come from the
// attendance machine; the service only exposes the read paths plus the
// manual corrections an admin can make.
type LogService struct {
	st store.Store
}

func (s *LogService) Get(ctx context.Context, id string) (*models.AttendanceLog, error) {
	return s.st.GetLog(ctx, id)
}

func (s *LogService) List(ctx context.Context) ([]*models.AttendanceLog, error) {
	return s.st.ListLogs(ctx)
}

func (s *LogService) ListByDate(ctx context.Context, date string) ([]*models.AttendanceLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrValidation, date)
	}
	return s.st.ListLogsByDate(ctx, date)
}

func (s *LogService) ListBySchedule(ctx context.Context, scheduleID string) ([]*models.AttendanceLog, error) {
	return s.st.ListLogsBySchedule(ctx, scheduleID)
}

// SetStatus overrides a log's status, for excusing an absence after the fact.
func (s *LogService) SetStatus(ctx context.Context, id, status, remarks string) (*models.AttendanceLog, error) {
	switch status {
	case models.LogPresent, models.LogLate, models.LogAbsent, models.LogExcuse,
		models.LogReturned, models.LogLeftEarly, models.LogNoSchedule:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	l, err := s.st.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	l.Status = status
	if remarks != "" {
		l.Remarks = remarks
	}
	if err := s.st.UpdateLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteLog(ctx, id)
}
