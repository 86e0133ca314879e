package localstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

// Colleges

func (s *Store) CreateCollege(ctx context.Context, c *models.College) error {
	row := toCollegeRow(c)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntityCollege, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetCollege(ctx context.Context, id string) (*models.College, error) {
	row, err := first[collegeRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) GetCollegeByCode(ctx context.Context, code string) (*models.College, error) {
	row, err := first[collegeRow](s.db.WithContext(ctx).Where("code = ?", code))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListColleges(ctx context.Context) ([]*models.College, error) {
	var rows []collegeRow
	if err := s.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.College, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateCollege(ctx context.Context, c *models.College) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toCollegeRow(c)).Error; err != nil {
			return err
		}
		return track(tx, store.EntityCollege, c.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteCollege(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &collegeRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntityCollege, id, ChangeDelete)
	})
	return existed, err
}

// Courses

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	row := toCourseRow(c)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntityCourse, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	row, err := first[courseRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	row, err := first[courseRow](s.db.WithContext(ctx).Where("code = ?", code))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	var rows []courseRow
	if err := s.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Course, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) ListCoursesByCollege(ctx context.Context, collegeID string) ([]*models.Course, error) {
	var rows []courseRow
	if err := s.db.WithContext(ctx).Where("college_id = ?", collegeID).Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Course, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateCourse(ctx context.Context, c *models.Course) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toCourseRow(c)).Error; err != nil {
			return err
		}
		return track(tx, store.EntityCourse, c.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteCourse(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &courseRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntityCourse, id, ChangeDelete)
	})
	return existed, err
}

// Sections

func (s *Store) CreateSection(ctx context.Context, sec *models.Section) error {
	row := toSectionRow(sec)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySection, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	sec.ID = row.ID
	sec.CreatedAt = row.CreatedAt
	sec.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetSection(ctx context.Context, id string) (*models.Section, error) {
	row, err := first[sectionRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListSections(ctx context.Context) ([]*models.Section, error) {
	var rows []sectionRow
	if err := s.db.WithContext(ctx).Order("level, block").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Section, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) ListSectionsByCourse(ctx context.Context, courseID string) ([]*models.Section, error) {
	var rows []sectionRow
	if err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Order("level, block").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Section, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateSection(ctx context.Context, sec *models.Section) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toSectionRow(sec)).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySection, sec.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteSection(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &sectionRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntitySection, id, ChangeDelete)
	})
	return existed, err
}

// Rooms

func (s *Store) CreateRoom(ctx context.Context, r *models.Room) error {
	row := toRoomRow(r)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntityRoom, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	r.ID = row.ID
	r.CreatedAt = row.CreatedAt
	r.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	row, err := first[roomRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	row, err := first[roomRow](s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListRooms(ctx context.Context) ([]*models.Room, error) {
	var rows []roomRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Room, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateRoom(ctx context.Context, r *models.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toRoomRow(r)).Error; err != nil {
			return err
		}
		return track(tx, store.EntityRoom, r.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteRoom(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &roomRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntityRoom, id, ChangeDelete)
	})
	return existed, err
}

// Semesters

func (s *Store) CreateSemester(ctx context.Context, sem *models.Semester) error {
	row := toSemesterRow(sem)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySemester, row.ID, ChangeCreate)
	})
	if err != nil {
		return err
	}
	sem.ID = row.ID
	sem.CreatedAt = row.CreatedAt
	sem.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) GetSemester(ctx context.Context, id string) (*models.Semester, error) {
	row, err := first[semesterRow](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) GetActiveSemester(ctx context.Context) (*models.Semester, error) {
	row, err := first[semesterRow](s.db.WithContext(ctx).Where("is_active = ?", true))
	if err != nil || row == nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Store) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	var rows []semesterRow
	if err := s.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Semester, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateSemester(ctx context.Context, sem *models.Semester) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toSemesterRow(sem)).Error; err != nil {
			return err
		}
		return track(tx, store.EntitySemester, sem.ID, ChangeUpdate)
	})
}

func (s *Store) DeleteSemester(ctx context.Context, id string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		existed, err = deleteByID(tx, &semesterRow{}, id)
		if err != nil || !existed {
			return err
		}
		return track(tx, store.EntitySemester, id, ChangeDelete)
	})
	return existed, err
}
