package student

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

var leadingNumberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Average returns the arithmetic mean of grades rounded to 2 decimals.
// grades must not be empty.
func Average(grades []float64) float64 {
	var sum float64
	for _, g := range grades {
		sum += g
	}
	return core.Round(sum/float64(len(grades)), 2)
}

// ParseGrades parses a comma-separated list of grades. Blank entries are skipped.
// Grades whose sum overflows a float64 are rejected.
//
// In strict mode any non-numeric entry is a validation error.
// In lenient mode it is coerced like a loose numeric cast: its leading number is kept ("85abc" -> 85)
// and anything else becomes 0.
func ParseGrades(text string, lenient bool) ([]float64, error) {
	grades := make([]float64, 0, strings.Count(text, ",")+1)
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		g, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
			if !lenient {
				return nil, core.NewValidationError(
					errInvalidGrades,
					core.FieldError{Field: "grades", Error: errors.Errorf("%q is not a number", tok).Error()},
				)
			}
			g = coerce(tok)
		}
		grades = append(grades, g)
	}
	if len(grades) == 0 {
		return nil, core.NewValidationError(errInvalidGrades, core.FieldError{Field: "grades", Error: "no grades given"})
	}
	var sum float64
	for _, g := range grades {
		sum += g
	}
	if math.IsInf(sum, 0) {
		return nil, core.NewValidationError(errInvalidGrades, core.FieldError{Field: "grades", Error: "grades are out of range"})
	}
	return grades, nil
}

func coerce(tok string) float64 {
	g, err := strconv.ParseFloat(leadingNumberRegex.FindString(tok), 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return 0
	}
	return g
}
