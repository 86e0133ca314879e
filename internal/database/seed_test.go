package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/config"
	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

func TestSeedAdmin(t *testing.T) {
	st, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	reg := services.NewRegistry(st, zerolog.Nop())
	ctx := context.Background()

	cfg := &config.Config{
		AdminUsername:  "superadmin",
		AdminPassword:  "admin123",
		AdminEmail:     "admin@example.com",
		AdminFirstName: "System",
		AdminLastName:  "Administrator",
	}
	require.NoError(t, SeedAdmin(ctx, reg.Users, cfg, zerolog.Nop()))

	admins, err := reg.Users.ListByRole(ctx, models.RoleSuperAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "System", admins[0].FirstName)
	assert.Equal(t, "Administrator", admins[0].LastName)
	assert.Equal(t, "Administrator, System", admins[0].DisplayName())

	// a second run leaves the account alone
	require.NoError(t, SeedAdmin(ctx, reg.Users, cfg, zerolog.Nop()))
	admins, err = reg.Users.ListByRole(ctx, models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestSeedSemesters(t *testing.T) {
	st, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	reg := services.NewRegistry(st, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, SeedSemesters(ctx, reg.Semesters, zerolog.Nop()))

	all, err := reg.Semesters.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := reg.Semesters.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "1st Semester", active.Label)

	// a second run leaves the catalog untouched
	require.NoError(t, SeedSemesters(ctx, reg.Semesters, zerolog.Nop()))
	all, err = reg.Semesters.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
