package student

import (
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

var (
	errAllFieldsRequired = errors.New("All fields are required!")
	errInvalidGrades     = errors.New("Please enter valid grades!")
)

type Student struct {
	ID          string         `json:"-"` // key of the document object
	Name        string         `json:"name"`
	Grades      []float64      `json:"grades"`
	Average     float64        `json:"average"` // always Average(Grades)
	AddedDate   core.Timestamp `json:"added_date"`
	LastUpdated core.Timestamp `json:"last_updated"`
}

// SetGrades replaces the grades and recomputes the average.
func (s *Student) SetGrades(grades []float64) {
	s.Grades = grades
	s.Average = Average(grades)
}

// Grade returns the band label of the student's average.
func (s Student) Grade() string { return Grade(s.Average) }

// GradesText formats grades with one decimal, e.g. "85.0, 90.0, 78.0".
func (s Student) GradesText() string {
	parts := make([]string, len(s.Grades))
	for i, g := range s.Grades {
		parts[i] = strconv.FormatFloat(g, 'f', 1, 64)
	}
	return strings.Join(parts, ", ")
}

// GradesInput formats grades the way they are typed in the forms, e.g. "85,90,78.5".
func (s Student) GradesInput() string {
	parts := make([]string, len(s.Grades))
	for i, g := range s.Grades {
		parts[i] = strconv.FormatFloat(g, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	ID     string `form:"student_id" validate:"required"`
	Name   string `form:"name" validate:"required"`
	Grades string `form:"grades" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Grades = core.CleanString(ns.Grades)

	if err := validate.Struct(ns); err != nil {
		if verr, ok := core.TranslateValidationErrors(err, translator).(*core.ValidationError); ok {
			verr.Err = errAllFieldsRequired
			return verr
		}
		return err
	}
	return nil
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields leave the stored values unchanged.
type UpdateStudent struct {
	ID     string `form:"student_id"`
	Name   string `form:"name"`
	Grades string `form:"grades"`
}

func (us *UpdateStudent) Clean() {
	us.ID = core.CleanString(us.ID)
	us.Name = core.CleanString(us.Name)
	us.Grades = core.CleanString(us.Grades)
}
