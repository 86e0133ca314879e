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

// stamp fills creation/update timestamps for a new document.
func stamp(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// Colleges

func (s *Store) CreateCollege(ctx context.Context, c *models.College) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	stamp(&c.CreatedAt, &c.UpdatedAt)
	if _, err := surrealdb.Upsert[collegeDoc](ctx, s.db, rid(tableColleges, c.ID), toCollegeDoc(c)); err != nil {
		return fmt.Errorf("remote create college: %w", err)
	}
	return nil
}

func (s *Store) GetCollege(ctx context.Context, id string) (*models.College, error) {
	doc, err := selectOne[collegeDoc](ctx, s, tableColleges, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetCollegeByCode(ctx context.Context, code string) (*models.College, error) {
	doc, err := queryOne[collegeDoc](ctx, s,
		"SELECT * FROM colleges WHERE code = $code LIMIT 1",
		map[string]any{"code": code})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListColleges(ctx context.Context) ([]*models.College, error) {
	docs, err := queryRows[collegeDoc](ctx, s, "SELECT * FROM colleges ORDER BY name ASC", nil)
	if err != nil {
		return nil, err
	}
	out := make([]*models.College, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateCollege(ctx context.Context, c *models.College) error {
	c.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[collegeDoc](ctx, s.db, rid(tableColleges, c.ID), toCollegeDoc(c)); err != nil {
		return fmt.Errorf("remote update college: %w", err)
	}
	return nil
}

func (s *Store) DeleteCollege(ctx context.Context, id string) (bool, error) {
	return deleteOne[collegeDoc](ctx, s, tableColleges, id)
}

// Courses

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	stamp(&c.CreatedAt, &c.UpdatedAt)
	if _, err := surrealdb.Upsert[courseDoc](ctx, s.db, rid(tableCourses, c.ID), toCourseDoc(c)); err != nil {
		return fmt.Errorf("remote create course: %w", err)
	}
	return nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	doc, err := selectOne[courseDoc](ctx, s, tableCourses, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	doc, err := queryOne[courseDoc](ctx, s,
		"SELECT * FROM courses WHERE code = $code LIMIT 1",
		map[string]any{"code": code})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	docs, err := queryRows[courseDoc](ctx, s, "SELECT * FROM courses ORDER BY name ASC", nil)
	if err != nil {
		return nil, err
	}
	return courseDocsToModels(docs), nil
}

func (s *Store) ListCoursesByCollege(ctx context.Context, collegeID string) ([]*models.Course, error) {
	docs, err := queryRows[courseDoc](ctx, s,
		"SELECT * FROM courses WHERE collegeId = $college ORDER BY name ASC",
		map[string]any{"college": collegeID})
	if err != nil {
		return nil, err
	}
	return courseDocsToModels(docs), nil
}

func (s *Store) UpdateCourse(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[courseDoc](ctx, s.db, rid(tableCourses, c.ID), toCourseDoc(c)); err != nil {
		return fmt.Errorf("remote update course: %w", err)
	}
	return nil
}

func (s *Store) DeleteCourse(ctx context.Context, id string) (bool, error) {
	return deleteOne[courseDoc](ctx, s, tableCourses, id)
}

func courseDocsToModels(docs []courseDoc) []*models.Course {
	out := make([]*models.Course, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out
}

// Sections

func (s *Store) CreateSection(ctx context.Context, sec *models.Section) error {
	if sec.ID == "" {
		sec.ID = uuid.NewString()
	}
	stamp(&sec.CreatedAt, &sec.UpdatedAt)
	if _, err := surrealdb.Upsert[sectionDoc](ctx, s.db, rid(tableSections, sec.ID), toSectionDoc(sec)); err != nil {
		return fmt.Errorf("remote create section: %w", err)
	}
	return nil
}

func (s *Store) GetSection(ctx context.Context, id string) (*models.Section, error) {
	doc, err := selectOne[sectionDoc](ctx, s, tableSections, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListSections(ctx context.Context) ([]*models.Section, error) {
	docs, err := queryRows[sectionDoc](ctx, s, "SELECT * FROM sections ORDER BY level ASC, block ASC", nil)
	if err != nil {
		return nil, err
	}
	return sectionDocsToModels(docs), nil
}

func (s *Store) ListSectionsByCourse(ctx context.Context, courseID string) ([]*models.Section, error) {
	docs, err := queryRows[sectionDoc](ctx, s,
		"SELECT * FROM sections WHERE courseId = $course ORDER BY level ASC, block ASC",
		map[string]any{"course": courseID})
	if err != nil {
		return nil, err
	}
	return sectionDocsToModels(docs), nil
}

func (s *Store) UpdateSection(ctx context.Context, sec *models.Section) error {
	sec.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[sectionDoc](ctx, s.db, rid(tableSections, sec.ID), toSectionDoc(sec)); err != nil {
		return fmt.Errorf("remote update section: %w", err)
	}
	return nil
}

func (s *Store) DeleteSection(ctx context.Context, id string) (bool, error) {
	return deleteOne[sectionDoc](ctx, s, tableSections, id)
}

func sectionDocsToModels(docs []sectionDoc) []*models.Section {
	out := make([]*models.Section, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out
}

// Rooms

func (s *Store) CreateRoom(ctx context.Context, r *models.Room) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	stamp(&r.CreatedAt, &r.UpdatedAt)
	if _, err := surrealdb.Upsert[roomDoc](ctx, s.db, rid(tableRooms, r.ID), toRoomDoc(r)); err != nil {
		return fmt.Errorf("remote create room: %w", err)
	}
	return nil
}

func (s *Store) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	doc, err := selectOne[roomDoc](ctx, s, tableRooms, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	doc, err := queryOne[roomDoc](ctx, s,
		"SELECT * FROM rooms WHERE string::lowercase(name) = $name LIMIT 1",
		map[string]any{"name": strings.ToLower(name)})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListRooms(ctx context.Context) ([]*models.Room, error) {
	docs, err := queryRows[roomDoc](ctx, s, "SELECT * FROM rooms ORDER BY name ASC", nil)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Room, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateRoom(ctx context.Context, r *models.Room) error {
	r.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[roomDoc](ctx, s.db, rid(tableRooms, r.ID), toRoomDoc(r)); err != nil {
		return fmt.Errorf("remote update room: %w", err)
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id string) (bool, error) {
	return deleteOne[roomDoc](ctx, s, tableRooms, id)
}

// Semesters

func (s *Store) CreateSemester(ctx context.Context, sem *models.Semester) error {
	if sem.ID == "" {
		sem.ID = uuid.NewString()
	}
	stamp(&sem.CreatedAt, &sem.UpdatedAt)
	if _, err := surrealdb.Upsert[semesterDoc](ctx, s.db, rid(tableSemesters, sem.ID), toSemesterDoc(sem)); err != nil {
		return fmt.Errorf("remote create semester: %w", err)
	}
	return nil
}

func (s *Store) GetSemester(ctx context.Context, id string) (*models.Semester, error) {
	doc, err := selectOne[semesterDoc](ctx, s, tableSemesters, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) GetActiveSemester(ctx context.Context) (*models.Semester, error) {
	doc, err := queryOne[semesterDoc](ctx, s,
		"SELECT * FROM semesters WHERE isActive = true LIMIT 1", nil)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	docs, err := queryRows[semesterDoc](ctx, s, "SELECT * FROM semesters ORDER BY startDate DESC", nil)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Semester, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (s *Store) UpdateSemester(ctx context.Context, sem *models.Semester) error {
	sem.UpdatedAt = time.Now()
	if _, err := surrealdb.Upsert[semesterDoc](ctx, s.db, rid(tableSemesters, sem.ID), toSemesterDoc(sem)); err != nil {
		return fmt.Errorf("remote update semester: %w", err)
	}
	return nil
}

func (s *Store) DeleteSemester(ctx context.Context, id string) (bool, error) {
	return deleteOne[semesterDoc](ctx, s, tableSemesters, id)
}
