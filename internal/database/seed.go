package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/config"
	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
)

// SeedAdmin creates the initial superadmin account when none exists, so a
// fresh install is reachable with the configured credentials.
func SeedAdmin(ctx context.Context, users *services.UserService, cfg *config.Config, log zerolog.Logger) error {
	existing, err := users.ListByRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	admin := &models.User{
		FirstName: cfg.AdminFirstName,
		LastName:  cfg.AdminLastName,
		Username:  cfg.AdminUsername,
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		Role:      models.RoleSuperAdmin,
		Status:    models.StatusActive,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("username", admin.Username).Msg("seeded initial superadmin")
	return nil
}

// SeedSemesters populates an empty term catalog with the academic years
// around the current one. The ongoing first semester starts active; the
// rest wait for manual activation.
func SeedSemesters(ctx context.Context, semesters *services.SemesterService, log zerolog.Logger) error {
	existing, err := semesters.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	year := time.Now().Year()
	defaults := []*models.Semester{
		{
			Label:        "1st Semester",
			AcademicYear: fmt.Sprintf("%d-%d", year-1, year),
			StartDate:    fmt.Sprintf("%d-08-01", year-1),
			EndDate:      fmt.Sprintf("%d-12-31", year-1),
		},
		{
			Label:        "2nd Semester",
			AcademicYear: fmt.Sprintf("%d-%d", year-1, year),
			StartDate:    fmt.Sprintf("%d-01-01", year),
			EndDate:      fmt.Sprintf("%d-05-31", year),
		},
		{
			Label:        "1st Semester",
			AcademicYear: fmt.Sprintf("%d-%d", year, year+1),
			StartDate:    fmt.Sprintf("%d-08-01", year),
			EndDate:      fmt.Sprintf("%d-12-31", year),
			IsActive:     true,
		},
		{
			Label:        "2nd Semester",
			AcademicYear: fmt.Sprintf("%d-%d", year, year+1),
			StartDate:    fmt.Sprintf("%d-01-01", year+1),
			EndDate:      fmt.Sprintf("%d-05-31", year+1),
		},
	}
	for _, sem := range defaults {
		if err := semesters.Create(ctx, sem); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(defaults)).Msg("seeded default semesters")
	return nil
}
