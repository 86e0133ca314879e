package remotestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/famsdev/fams_backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if _, err := surrealdb.Upsert[userDoc](ctx, s.db, rid(tableUsers, u.ID), toUserDoc(u)); err != nil {
		return fmt.Errorf("remote create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	doc, err := selectOne[userDoc](ctx, s, tableUsers, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	doc, err := queryOne[userDoc](ctx, s,
		"SELECT * FROM users WHERE username = $username LIMIT 1",
		map[string]any{"username": username})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := queryOne[userDoc](ctx, s,
		"SELECT * FROM users WHERE email = $email LIMIT 1",
		map[string]any{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	doc, err := queryOne[userDoc](ctx, s, `
		SELECT * FROM users WHERE
			string::contains(string::lowercase(lastName + ', ' + firstName), $name) OR
			string::contains(string::lowercase(firstName + ' ' + lastName), $name) OR
			string::contains(string::lowercase(username), $name)
		LIMIT 1`,
		map[string]any{"name": needle})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	docs, err := queryRows[userDoc](ctx, s,
		"SELECT * FROM users ORDER BY lastName ASC, firstName ASC", nil)
	if err != nil {
		return nil, err
	}
	return userDocsToModels(docs), nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	docs, err := queryRows[userDoc](ctx, s,
		"SELECT * FROM users WHERE role = $role ORDER BY lastName ASC, firstName ASC",
		map[string]any{"role": role})
	if err != nil {
		return nil, err
	}
	return userDocsToModels(docs), nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[userDoc](ctx, s.db, rid(tableUsers, u.ID), toUserDoc(u)); err != nil {
		return fmt.Errorf("remote update user: %w", err)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (bool, error) {
	return deleteOne[userDoc](ctx, s, tableUsers, id)
}

func userDocsToModels(docs []userDoc) []*models.User {
	out := make([]*models.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out
}
