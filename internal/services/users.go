package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/utils"
)

// usernameAttempts caps suffix probing so a pathological dataset fails loudly
// instead of spinning.
const usernameAttempts = 50

// UserService owns account lifecycle: creation with credential hashing and
// username uniquing, lookups, updates and verification.
type UserService struct {
	st  store.Store
	log zerolog.Logger
}

// Create registers a user. The plaintext password on the model is replaced
// with its bcrypt hash before the row is stored. An empty username is derived
// from the name and suffixed until unique.
func (s *UserService) Create(ctx context.Context, u *models.User) error {
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	if !models.IsValidRole(u.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}
	if u.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if u.Email != "" {
		existing, err := s.st.GetUserByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: email %s is already registered", ErrValidation, u.Email)
		}
	}

	username, err := s.uniqueUsername(ctx, u.Username, u.FirstName, u.LastName)
	if err != nil {
		return err
	}
	u.Username = username

	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hashed

	if u.Status == "" {
		u.Status = models.StatusForVerification
	}
	if err := s.st.CreateUser(ctx, u); err != nil {
		return err
	}
	s.log.Info().Str("user_id", u.ID).Str("username", u.Username).Str("role", u.Role).Msg("user created")
	return nil
}

// uniqueUsername resolves the final username. When the requested name is
// empty a base is derived from the first initial plus last name. Collisions
// get a numeric suffix, probing up to usernameAttempts before giving up.
func (s *UserService) uniqueUsername(ctx context.Context, requested, firstName, lastName string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(requested))
	if base == "" {
		base = strings.ToLower(string([]rune(strings.TrimSpace(firstName))[0]) +
			strings.ReplaceAll(strings.TrimSpace(lastName), " ", ""))
	}
	candidate := base
	for i := 1; i <= usernameAttempts; i++ {
		existing, err := s.st.GetUserByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("%w: could not find a free username for %q after %d attempts", ErrValidation, base, usernameAttempts)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.st.GetUser(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.st.GetUserByUsername(ctx, username)
}

// FindByName matches "Last, First", "First Last" or a substring of either.
// The recognition pipeline sends whatever the face model was labeled with.
func (s *UserService) FindByName(ctx context.Context, name string) (*models.User, error) {
	return s.st.FindUserByName(ctx, name)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.st.ListUsers(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.st.ListUsersByRole(ctx, role)
}

// Update persists the user. newPassword, when non-empty, is hashed and
// replaces the stored credential; otherwise the existing hash is kept.
func (s *UserService) Update(ctx context.Context, u *models.User, newPassword string) error {
	if !models.IsValidRole(u.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}
	if newPassword != "" {
		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.Password = hashed
	}
	return s.st.UpdateUser(ctx, u)
}

// SetStatus moves a user through the verification lifecycle.
func (s *UserService) SetStatus(ctx context.Context, id, status string) (*models.User, error) {
	switch status {
	case models.StatusForVerification, models.StatusActive, models.StatusInactive:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	u, err := s.st.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	u.Status = status
	if err := s.st.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteUser(ctx, id)
}

// Authenticate checks credentials and returns the user, or nil when the
// username is unknown or the password does not match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.st.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(u.Password, password) {
		return nil, nil
	}
	return u, nil
}
