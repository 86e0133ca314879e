package localstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	row, err := toUserRow(u)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntityUser, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	u.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	row, err := first[userRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel()
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row, err := first[userRow](s.db.WithContext(ctx).Where("username = ?", username))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel()
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := first[userRow](s.db.WithContext(ctx).Where("email = ?", email))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel()
}

func (s *Store) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	like := "%" + strings.TrimSpace(name) + "%"
	row, err := first[userRow](s.db.WithContext(ctx).
		Where("(last_name || ', ' || first_name) LIKE ? OR (first_name || ' ' || last_name) LIKE ? OR username LIKE ?",
			like, like, like))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel()
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("last_name, first_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersToModels(rows)
}

func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Where("role = ?", role).Order("last_name, first_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersToModels(rows)
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	row, err := toUserRow(u)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntityUser, row.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteUser(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &userRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntityUser, id, ChangeDelete)
	})
	return existed, err
}

func usersToModels(rows []userRow) ([]*models.User, error) {
	out := make([]*models.User, 0, len(rows))
	for i := range rows {
		u, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
