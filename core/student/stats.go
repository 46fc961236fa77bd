package student

import (
	"math"

	"github.com/trezcool/tally/core"
)

// Band is a grade category; an average belongs to the first band whose Min it reaches.
type Band struct {
	Label string
	Min   float64
}

// Bands are ordered top-down.
var Bands = []Band{
	{Label: "A (90-100)", Min: 90},
	{Label: "B (80-89)", Min: 80},
	{Label: "C (70-79)", Min: 70},
	{Label: "D (60-69)", Min: 60},
	{Label: "F (0-59)", Min: math.Inf(-1)},
}

func bandIndex(avg float64) int {
	for i, b := range Bands {
		if avg >= b.Min {
			return i
		}
	}
	return len(Bands) - 1 // NaN
}

// Grade returns the label of the band avg falls in.
func Grade(avg float64) string {
	return Bands[bandIndex(avg)].Label
}

type Category struct {
	Label      string
	Count      int
	Percentage float64 // share of Total, 1 decimal
}

type Statistics struct {
	Total      int
	ClassAvg   float64 // mean of the students' averages
	MaxAvg     float64
	MinAvg     float64
	Categories []Category // same order as Bands
}

// Summarize computes the class statistics of students.
// It returns core.ErrNoData when there are no students.
func Summarize(students []Student) (Statistics, error) {
	if len(students) == 0 {
		return Statistics{}, core.ErrNoData
	}

	stats := Statistics{
		Total:      len(students),
		MaxAvg:     math.Inf(-1),
		MinAvg:     math.Inf(1),
		Categories: make([]Category, len(Bands)),
	}
	for i, b := range Bands {
		stats.Categories[i].Label = b.Label
	}

	var sum float64
	for _, s := range students {
		sum += s.Average
		stats.MaxAvg = math.Max(stats.MaxAvg, s.Average)
		stats.MinAvg = math.Min(stats.MinAvg, s.Average)
		stats.Categories[bandIndex(s.Average)].Count++
	}

	stats.ClassAvg = core.Round(sum/float64(stats.Total), 2)
	stats.MaxAvg = core.Round(stats.MaxAvg, 2)
	stats.MinAvg = core.Round(stats.MinAvg, 2)
	for i := range stats.Categories {
		stats.Categories[i].Percentage = core.Round(float64(stats.Categories[i].Count)/float64(stats.Total)*100, 1)
	}
	return stats, nil
}
