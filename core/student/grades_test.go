package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tally/core"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []float64
		want   float64
	}{
		{name: "single", grades: []float64{72.5}, want: 72.5},
		{name: "rounded down", grades: []float64{85, 90, 78}, want: 84.33},
		{name: "rounded up", grades: []float64{92, 88, 95}, want: 91.67},
		{name: "half away from zero", grades: []float64{0.125}, want: 0.13},
		{name: "zeros", grades: []float64{0, 0}, want: 0},
		{name: "shortest decimal form", grades: []float64{1.005}, want: 1.01},
		{name: "negative half", grades: []float64{-0.125}, want: -0.13},
		{name: "huge grade", grades: []float64{1e307}, want: 1e307},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Average(tt.grades))
		})
	}
}

func TestParseGrades(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		lenient bool
		want    []float64
		wantErr bool
	}{
		{name: "simple", text: "85,90,78", want: []float64{85, 90, 78}},
		{name: "spaces & decimals", text: " 85.5 , 90 ,78.25 ", want: []float64{85.5, 90, 78.25}},
		{name: "blank entries skipped", text: "85,,90, ,", want: []float64{85, 90}},
		{name: "empty", text: "", wantErr: true},
		{name: "only commas", text: " , ,", wantErr: true},
		{name: "strict: non-numeric", text: "85,abc,90", wantErr: true},
		{name: "strict: NaN", text: "NaN", wantErr: true},
		{name: "strict: Inf", text: "85,Inf", wantErr: true},
		{name: "lenient: non-numeric", text: "85,abc,90", lenient: true, want: []float64{85, 0, 90}},
		{name: "lenient: leading number", text: "85abc,7.5x", lenient: true, want: []float64{85, 7.5}},
		{name: "lenient: NaN", text: "NaN", lenient: true, want: []float64{0}},
		{name: "lenient: empty", text: ",", lenient: true, wantErr: true},
		{name: "huge but finite", text: "1e307", want: []float64{1e307}},
		{name: "sum overflows", text: "1.7e308,1.7e308", wantErr: true},
		{name: "lenient: sum overflows", text: "1.7e308,1.7e308", lenient: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGrades(tt.text, tt.lenient)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsValidation(err))
				assert.Equal(t, "Please enter valid grades!", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStudent_formatting(t *testing.T) {
	s := Student{ID: "S001"}
	s.SetGrades([]float64{85, 90.5, 78})

	assert.Equal(t, 84.5, s.Average)
	assert.Equal(t, "85.0, 90.5, 78.0", s.GradesText())
	assert.Equal(t, "85,90.5,78", s.GradesInput())
	assert.Equal(t, "B (80-89)", s.Grade())
}
