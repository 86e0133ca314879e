package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	st, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewRegistry(st, zerolog.Nop())
}

func newInstructor(first, last, username string) *models.User {
	return &models.User{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Password:  "secret123",
		Role:      models.RoleInstructor,
	}
}

func TestCreateUserUniquesUsername(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	first := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, first))
	assert.Equal(t, "jdoe", first.Username)

	second := newInstructor("Jose", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, second))
	assert.Equal(t, "jdoe1", second.Username)

	third := newInstructor("Julia", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, third))
	assert.Equal(t, "jdoe2", third.Username)
}

func TestCreateUserDerivesUsername(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	u := newInstructor("Maria", "Santos", "")
	require.NoError(t, reg.Users.Create(ctx, u))
	assert.Equal(t, "msantos", u.Username)
}

func TestCreateUserValidation(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	err := reg.Users.Create(ctx, &models.User{FirstName: "No", LastName: "Role", Password: "secret123", Role: "janitor"})
	assert.ErrorIs(t, err, ErrValidation)

	err = reg.Users.Create(ctx, &models.User{FirstName: "No", LastName: "Password", Role: models.RoleInstructor})
	assert.ErrorIs(t, err, ErrValidation)

	u := newInstructor("Ana", "Lopez", "alopez")
	u.Email = "ana@example.com"
	require.NoError(t, reg.Users.Create(ctx, u))

	dup := newInstructor("Anna", "Lopez", "alopez2")
	dup.Email = "ana@example.com"
	err = reg.Users.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	u := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, u))
	// stored credential is a hash, not the plaintext
	assert.NotEqual(t, "secret123", u.Password)

	got, err := reg.Users.Authenticate(ctx, "jdoe", "secret123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = reg.Users.Authenticate(ctx, "jdoe", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = reg.Users.Authenticate(ctx, "nobody", "secret123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateKeepsPasswordUnlessReplaced(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	u := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, u))
	hash := u.Password

	u.Email = "jdoe@example.com"
	require.NoError(t, reg.Users.Update(ctx, u, ""))
	assert.Equal(t, hash, u.Password)

	require.NoError(t, reg.Users.Update(ctx, u, "newsecret"))
	assert.NotEqual(t, hash, u.Password)

	got, err := reg.Users.Authenticate(ctx, "jdoe", "newsecret")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSetStatus(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	u := newInstructor("Juan", "Doe", "jdoe")
	require.NoError(t, reg.Users.Create(ctx, u))
	assert.Equal(t, models.StatusForVerification, u.Status)

	got, err := reg.Users.SetStatus(ctx, u.ID, models.StatusActive)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusActive, got.Status)

	_, err = reg.Users.SetStatus(ctx, u.ID, "frozen")
	assert.ErrorIs(t, err, ErrValidation)
}
