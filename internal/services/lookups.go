package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/store"
)

const dateLayout = "2006-01-02"

// CollegeService manages the college catalog.
type CollegeService struct {
	st store.Store
}

func (s *CollegeService) Create(ctx context.Context, c *models.College) error {
	if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: college code and name are required", ErrValidation)
	}
	existing, err := s.st.GetCollegeByCode(ctx, c.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: college code %s already exists", ErrValidation, c.Code)
	}
	return s.st.CreateCollege(ctx, c)
}

func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	return s.st.GetCollege(ctx, id)
}

func (s *CollegeService) List(ctx context.Context) ([]*models.College, error) {
	return s.st.ListColleges(ctx)
}

func (s *CollegeService) Update(ctx context.Context, c *models.College) error {
	if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: college code and name are required", ErrValidation)
	}
	return s.st.UpdateCollege(ctx, c)
}

func (s *CollegeService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteCollege(ctx, id)
}

// CourseService manages degree programs under a college.
type CourseService struct {
	st store.Store
}

func (s *CourseService) Create(ctx context.Context, c *models.Course) error {
	if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: course code and name are required", ErrValidation)
	}
	existing, err := s.st.GetCourseByCode(ctx, c.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: course code %s already exists", ErrValidation, c.Code)
	}
	if c.CollegeID != "" {
		college, err := s.st.GetCollege(ctx, c.CollegeID)
		if err != nil {
			return err
		}
		if college == nil {
			return fmt.Errorf("%w: college %s not found", ErrValidation, c.CollegeID)
		}
	}
	return s.st.CreateCourse(ctx, c)
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.st.GetCourse(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.st.ListCourses(ctx)
}

func (s *CourseService) ListByCollege(ctx context.Context, collegeID string) ([]*models.Course, error) {
	return s.st.ListCoursesByCollege(ctx, collegeID)
}

func (s *CourseService) Update(ctx context.Context, c *models.Course) error {
	if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: course code and name are required", ErrValidation)
	}
	return s.st.UpdateCourse(ctx, c)
}

func (s *CourseService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteCourse(ctx, id)
}

// SectionService manages class sections (year level plus block).
type SectionService struct {
	st store.Store
}

func (s *SectionService) Create(ctx context.Context, sec *models.Section) error {
	if strings.TrimSpace(sec.Level) == "" || strings.TrimSpace(sec.Block) == "" {
		return fmt.Errorf("%w: section level and block are required", ErrValidation)
	}
	return s.st.CreateSection(ctx, sec)
}

func (s *SectionService) Get(ctx context.Context, id string) (*models.Section, error) {
	return s.st.GetSection(ctx, id)
}

func (s *SectionService) List(ctx context.Context) ([]*models.Section, error) {
	return s.st.ListSections(ctx)
}

func (s *SectionService) ListByCourse(ctx context.Context, courseID string) ([]*models.Section, error) {
	return s.st.ListSectionsByCourse(ctx, courseID)
}

func (s *SectionService) Update(ctx context.Context, sec *models.Section) error {
	return s.st.UpdateSection(ctx, sec)
}

func (s *SectionService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteSection(ctx, id)
}

// RoomService manages physical rooms referenced by schedules and cameras.
type RoomService struct {
	st store.Store
}

func (s *RoomService) Create(ctx context.Context, r *models.Room) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: room name is required", ErrValidation)
	}
	existing, err := s.st.GetRoomByName(ctx, r.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: room %s already exists", ErrValidation, r.Name)
	}
	return s.st.CreateRoom(ctx, r)
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	return s.st.GetRoom(ctx, id)
}

func (s *RoomService) GetByName(ctx context.Context, name string) (*models.Room, error) {
	return s.st.GetRoomByName(ctx, name)
}

func (s *RoomService) List(ctx context.Context) ([]*models.Room, error) {
	return s.st.ListRooms(ctx)
}

func (s *RoomService) Update(ctx context.Context, r *models.Room) error {
	return s.st.UpdateRoom(ctx, r)
}

func (s *RoomService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteRoom(ctx, id)
}

// SemesterService manages academic terms. At most one semester is active at
// a time; activating one deactivates the rest.
type SemesterService struct {
	st store.Store
}

func (s *SemesterService) Create(ctx context.Context, sem *models.Semester) error {
	if err := validateSemesterDates(sem); err != nil {
		return err
	}
	return s.st.CreateSemester(ctx, sem)
}

func (s *SemesterService) Get(ctx context.Context, id string) (*models.Semester, error) {
	return s.st.GetSemester(ctx, id)
}

func (s *SemesterService) GetActive(ctx context.Context) (*models.Semester, error) {
	return s.st.GetActiveSemester(ctx)
}

func (s *SemesterService) List(ctx context.Context) ([]*models.Semester, error) {
	return s.st.ListSemesters(ctx)
}

func (s *SemesterService) Update(ctx context.Context, sem *models.Semester) error {
	if err := validateSemesterDates(sem); err != nil {
		return err
	}
	return s.st.UpdateSemester(ctx, sem)
}

// Activate marks the semester active and clears the flag on every other term.
func (s *SemesterService) Activate(ctx context.Context, id string) (*models.Semester, error) {
	target, err := s.st.GetSemester(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	all, err := s.st.ListSemesters(ctx)
	if err != nil {
		return nil, err
	}
	for _, sem := range all {
		if sem.IsActive && sem.ID != id {
			sem.IsActive = false
			if err := s.st.UpdateSemester(ctx, sem); err != nil {
				return nil, err
			}
		}
	}
	target.IsActive = true
	if err := s.st.UpdateSemester(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *SemesterService) Delete(ctx context.Context, id string) (bool, error) {
	return s.st.DeleteSemester(ctx, id)
}

func validateSemesterDates(sem *models.Semester) error {
	start, err := time.Parse(dateLayout, sem.StartDate)
	if err != nil {
		return fmt.Errorf("%w: bad start date %q", ErrValidation, sem.StartDate)
	}
	end, err := time.Parse(dateLayout, sem.EndDate)
	if err != nil {
		return fmt.Errorf("%w: bad end date %q", ErrValidation, sem.EndDate)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: semester end must be after start", ErrValidation)
	}
	return nil
}
