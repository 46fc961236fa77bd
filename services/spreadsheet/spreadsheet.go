// Package spreadsheet exports records to XLSX workbooks and imports students from them.
package spreadsheet

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/core/student"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	studentHeader = []interface{}{"ID", "Name", "Grades", "Average", "Grade", "Added", "Last Updated"}
	statsHeader   = []interface{}{"Category", "Students", "Percentage"}
	phoneHeader   = []interface{}{"ID", "Name", "Brand", "Model", "Price", "Stock", "Color", "Storage (GB)", "Release Year", "Value", "Created At"}
)

func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "naming sheet")
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := writeRow(f, sheet, 1, header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// WriteStudents writes the grade book and its statistics as an XLSX workbook.
func WriteStudents(w io.Writer, students []student.Student) error {
	const sheet = "Students"
	f, err := newWorkbook(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeHeader(f, sheet, studentHeader); err != nil {
		return err
	}
	for i, s := range students {
		row := []interface{}{s.ID, s.Name, s.GradesText(), s.Average, s.Grade(), s.AddedDate.String(), s.LastUpdated.String()}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return errors.Wrapf(err, "writing student %q", s.ID)
		}
	}
	_ = f.SetColWidth(sheet, "B", "C", 24)
	_ = f.SetColWidth(sheet, "F", "G", 20)

	if stats, err := student.Summarize(students); err == nil {
		if err := writeStatistics(f, stats); err != nil {
			return err
		}
	}
	return errors.Wrap(f.Write(w), "writing workbook")
}

func writeStatistics(f *excelize.File, stats student.Statistics) error {
	const sheet = "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "creating statistics sheet")
	}
	if err := writeHeader(f, sheet, statsHeader); err != nil {
		return err
	}
	row := 2
	for _, c := range stats.Categories {
		if err := writeRow(f, sheet, row, []interface{}{c.Label, c.Count, c.Percentage}); err != nil {
			return err
		}
		row++
	}
	row++
	for _, kv := range [][]interface{}{
		{"Total Students", stats.Total},
		{"Class Average", stats.ClassAvg},
		{"Highest Average", stats.MaxAvg},
		{"Lowest Average", stats.MinAvg},
	} {
		if err := writeRow(f, sheet, row, kv); err != nil {
			return err
		}
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 18)
	return nil
}

// WritePhones writes the inventory as an XLSX workbook.
func WritePhones(w io.Writer, phones []phone.Phone) error {
	const sheet = "Phones"
	f, err := newWorkbook(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeHeader(f, sheet, phoneHeader); err != nil {
		return err
	}
	for i, p := range phones {
		row := []interface{}{
			p.ID, p.Name, p.Brand, p.Model, p.Price, p.Stock, p.Color, p.Storage, p.ReleaseYear, p.Value(), p.CreatedAt.String(),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return errors.Wrapf(err, "writing phone %q", p.ID)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 38)
	return errors.Wrap(f.Write(w), "writing workbook")
}

// ReadStudents reads students from the first sheet of an XLSX workbook.
// Row 1 is a header. Column A is the ID, B the name and the grades are either a
// comma-separated list in column C or one grade per column from C onward. Grade columns
// stop at an "Average" header, so workbooks written by WriteStudents can be read back.
// Rows missing an ID or a name are skipped.
func ReadStudents(r io.Reader) ([]student.NewStudent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("closing workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, core.NewValidationError(errors.New("workbook does not contain any sheets"))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rows of sheet %q", sheet)
	}

	lastGradeCol := -1 // exclusive; -1 means the end of the row
	if len(rows) > 0 {
		for i, cell := range rows[0] {
			if i > 2 && strings.EqualFold(core.CleanString(cell), "average") {
				lastGradeCol = i
				break
			}
		}
	}

	students := make([]student.NewStudent, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		ns := student.NewStudent{}
		if len(row) > 0 {
			ns.ID = core.CleanString(row[0])
		}
		if len(row) > 1 {
			ns.Name = core.CleanString(row[1])
		}
		if ns.ID == "" || ns.Name == "" {
			continue
		}
		if len(row) > 2 {
			cells := row[2:]
			if lastGradeCol > 0 && len(row) > lastGradeCol {
				cells = row[2:lastGradeCol]
			}
			grades := make([]string, 0, len(cells))
			for _, cell := range cells {
				if cell = core.CleanString(cell); cell != "" {
					grades = append(grades, cell)
				}
			}
			ns.Grades = strings.Join(grades, ",")
		}
		students = append(students, ns)
	}
	return students, nil
}

// Filename returns the export file name for prefix, e.g. "student_report_2024-05-01.xlsx".
func Filename(prefix string, now time.Time) string {
	return prefix + "_report_" + now.Format("2006-01-02") + ".xlsx"
}
