package student

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/tally/core"
)

const (
	reportTitle       = "STUDENT GRADE REPORT"
	reportContentType = "text/plain; charset=utf-8"
)

// WriteReport renders the plain-text grade report of students.
// It returns core.ErrNoData when there are no students.
func WriteReport(students []Student, now time.Time) (core.Report, error) {
	if len(students) == 0 {
		return core.Report{}, core.ErrNoData
	}

	rule := strings.Repeat("=", 61)
	b := new(strings.Builder)
	fmt.Fprintln(b, reportTitle)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, "Generated on: "+now.Format(core.TimeLayout))
	fmt.Fprintln(b, "Total Students: "+strconv.Itoa(len(students)))
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)

	for _, s := range students {
		fmt.Fprintf(b, "Student ID: %s\n", s.ID)
		fmt.Fprintf(b, "Name: %s\n", s.Name)
		fmt.Fprintf(b, "Grades: %s\n", s.GradesText())
		fmt.Fprintf(b, "Average: %.2f\n", s.Average)
		fmt.Fprintf(b, "Added: %s\n", s.AddedDate)
		fmt.Fprintf(b, "Last Updated: %s\n", s.LastUpdated)
		fmt.Fprintln(b, strings.Repeat("-", 40))
	}

	return core.Report{
		Filename:    "student_report_" + now.Format("2006-01-02") + ".txt",
		ContentType: reportContentType,
		Body:        []byte(b.String()),
	}, nil
}
