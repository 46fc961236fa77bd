package student

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

const defaultRecentCount = 5

type (
	// Repository persists the grade book.
	// Students are returned in store order (insertion order).
	Repository interface {
		CreateStudent(ctx context.Context, s Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, ns NewStudent) (Student, error)
		Import(ctx context.Context, nss []NewStudent) (int, []error)
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		Recent(ctx context.Context) ([]Student, error)
		Search(ctx context.Context, term string) ([]Student, error)
		Update(ctx context.Context, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, id string) error
		Stats(ctx context.Context) (Statistics, error)
		Report(ctx context.Context) (core.Report, error)
	}

	Service struct {
		repo       Repository
		validate   *validator.Validate
		translator ut.Translator
		lenient    bool
		recent     int
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator, conf *core.Config) *Service {
	recent := conf.Grades.RecentCount
	if recent <= 0 {
		recent = defaultRecentCount
	}
	return &Service{
		repo:       repo,
		validate:   validate,
		translator: translator,
		lenient:    conf.Grades.Lenient,
		recent:     recent,
	}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate, svc.translator); err != nil {
		return Student{}, err
	}

	if _, err := svc.repo.GetStudent(ctx, ns.ID); err == nil {
		return Student{}, errors.Wrapf(core.ErrDuplicateKey, "student %s", ns.ID)
	} else if errors.Cause(err) != core.ErrNotFound {
		return Student{}, errors.Wrap(err, "checking student uniqueness")
	}

	grades, err := ParseGrades(ns.Grades, svc.lenient)
	if err != nil {
		return Student{}, err
	}

	now := core.NewTimestamp(core.Now())
	s := Student{
		ID:          ns.ID,
		Name:        ns.Name,
		AddedDate:   now,
		LastUpdated: now,
	}
	s.SetGrades(grades)
	return svc.repo.CreateStudent(ctx, s)
}

// Import creates every student it can; it returns how many were created and the errors of the others.
func (svc *Service) Import(ctx context.Context, nss []NewStudent) (int, []error) {
	var (
		count int
		errs  []error
	)
	for _, ns := range nss {
		if _, err := svc.Create(ctx, ns); err != nil {
			if core.IsStorage(err) {
				return count, append(errs, err)
			}
			errs = append(errs, errors.Wrapf(err, "importing student %q", ns.ID))
			continue
		}
		count++
	}
	return count, errs
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	id = core.CleanString(id)
	if id == "" {
		return Student{}, core.ErrNotFound
	}
	return svc.repo.GetStudent(ctx, id)
}

// Recent returns the most recently added students, oldest first.
func (svc *Service) Recent(ctx context.Context) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(students) > svc.recent {
		students = students[len(students)-svc.recent:]
	}
	return students, nil
}

// Search does a case-insensitive substring match on the students' ID and name.
// An empty term matches nothing.
func (svc *Service) Search(ctx context.Context, term string) ([]Student, error) {
	term = core.CleanString(term, true /* lower */)
	if term == "" {
		return nil, nil
	}
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]Student, 0)
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.ID), term) || strings.Contains(strings.ToLower(s.Name), term) {
			results = append(results, s)
		}
	}
	return results, nil
}

func (svc *Service) Update(ctx context.Context, us UpdateStudent) (Student, error) {
	us.Clean()
	s, err := svc.GetByID(ctx, us.ID)
	if err != nil {
		return Student{}, err
	}

	if us.Name != "" {
		s.Name = us.Name
	}
	if us.Grades != "" {
		grades, err := ParseGrades(us.Grades, svc.lenient)
		if err != nil {
			return Student{}, err
		}
		s.SetGrades(grades)
	}
	s.LastUpdated = core.NewTimestamp(core.Now())
	return svc.repo.UpdateStudent(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	id = core.CleanString(id)
	if id == "" {
		return core.ErrNotFound
	}
	return svc.repo.DeleteStudent(ctx, id)
}

// Stats returns core.ErrNoData when the grade book is empty.
func (svc *Service) Stats(ctx context.Context) (Statistics, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Summarize(students)
}

// Report returns core.ErrNoData when the grade book is empty.
func (svc *Service) Report(ctx context.Context) (core.Report, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return core.Report{}, err
	}
	return WriteReport(students, core.Now())
}
