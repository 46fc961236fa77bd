package student_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/student"
	"github.com/trezcool/tally/tests"
)

var empty = []byte("{}")

func ids(students []student.Student) []string {
	res := make([]string, len(students))
	for i, s := range students {
		res[i] = s.ID
	}
	return res
}

func TestService_Create(t *testing.T) {
	testutil.FreezeTime(t)
	ctx := context.Background()
	svc, _ := testutil.NewStudentService(nil, nil)

	tests := []struct {
		name    string
		ns      student.NewStudent
		wantErr string
		want    float64
	}{
		{name: "missing fields", ns: student.NewStudent{ID: "S003", Name: "  "}, wantErr: "All fields are required!"},
		{name: "invalid grades", ns: student.NewStudent{ID: "S003", Name: "Bob", Grades: "a,b"}, wantErr: "Please enter valid grades!"},
		{name: "duplicate id", ns: student.NewStudent{ID: "S001", Name: "Bob", Grades: "50"}, wantErr: core.ErrDuplicateKey.Error()},
		{name: "grades out of range", ns: student.NewStudent{ID: "S003", Name: "Bob", Grades: "1.7e308, 1.7e308"}, wantErr: "Please enter valid grades!"},
		{name: "created", ns: student.NewStudent{ID: " S003 ", Name: " Bob ", Grades: "70, 80"}, want: 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svc.Create(ctx, tt.ns)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "S003", s.ID)
			assert.Equal(t, "Bob", s.Name)
			assert.Equal(t, tt.want, s.Average)
			assert.Equal(t, testutil.Now.Format(core.TimeLayout), s.AddedDate.String())
			assert.Equal(t, s.AddedDate.String(), s.LastUpdated.String())
		})
	}

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S001", "S002", "S003"}, ids(all), "insertion order is kept")
}

func TestService_Create_duplicateIsTyped(t *testing.T) {
	svc, _ := testutil.NewStudentService(nil, nil)
	_, err := svc.Create(context.Background(), student.NewStudent{ID: "S002", Name: "X", Grades: "1"})
	assert.Equal(t, core.ErrDuplicateKey, errors.Cause(err))
}

func TestService_Create_hugeGrade(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewStudentService(empty, nil)

	s, err := svc.Create(ctx, student.NewStudent{ID: "S9", Name: "Max", Grades: "1e307"})
	require.NoError(t, err)
	assert.Equal(t, 1e307, s.Average)

	got, err := svc.GetByID(ctx, "S9")
	require.NoError(t, err)
	assert.Equal(t, 1e307, got.Average)
}

func TestService_Create_lenient(t *testing.T) {
	svc, _ := testutil.NewStudentService(empty, &core.Config{Grades: core.GradesConfig{Lenient: true}})
	s, err := svc.Create(context.Background(), student.NewStudent{ID: "S1", Name: "Al", Grades: "90,abc"})
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 0}, s.Grades)
	assert.Equal(t, 45.0, s.Average)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name keeps the stored name", func(t *testing.T) {
		svc, _ := testutil.NewStudentService(nil, nil)
		before, err := svc.GetByID(ctx, "S001")
		require.NoError(t, err)

		testutil.FreezeTime(t)
		s, err := svc.Update(ctx, student.UpdateStudent{ID: "S001", Name: "", Grades: ""})
		require.NoError(t, err)
		assert.Equal(t, "John Doe", s.Name)
		assert.Equal(t, before.Grades, s.Grades)
		assert.Equal(t, 84.33, s.Average)
		assert.Equal(t, before.AddedDate.String(), s.AddedDate.String())
		assert.Equal(t, testutil.Now.Format(core.TimeLayout), s.LastUpdated.String())
	})

	t.Run("grades recompute the average", func(t *testing.T) {
		svc, _ := testutil.NewStudentService(nil, nil)
		s, err := svc.Update(ctx, student.UpdateStudent{ID: "S001", Grades: "100, 90"})
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 90}, s.Grades)
		assert.Equal(t, 95.0, s.Average)
		assert.Equal(t, "John Doe", s.Name)

		stored, err := svc.GetByID(ctx, "S001")
		require.NoError(t, err)
		assert.Equal(t, 95.0, stored.Average)
	})

	t.Run("invalid grades change nothing", func(t *testing.T) {
		svc, mem := testutil.NewStudentService(nil, nil)
		_, err := svc.Update(ctx, student.UpdateStudent{ID: "S001", Name: "New", Grades: "x"})
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, 0, mem.Writes())
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, mem := testutil.NewStudentService(nil, nil)
		_, err := svc.Update(ctx, student.UpdateStudent{ID: "S999", Name: "X"})
		assert.Equal(t, core.ErrNotFound, errors.Cause(err))
		assert.Equal(t, 0, mem.Writes())
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, mem := testutil.NewStudentService(nil, nil)

	before, err := mem.ReadAll(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, "S999")
	assert.Equal(t, core.ErrNotFound, errors.Cause(err))
	after, err := mem.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "document is unchanged")

	require.NoError(t, svc.Delete(ctx, "S001"))
	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S002"}, ids(all))

	assert.Equal(t, core.ErrNotFound, svc.Delete(ctx, " "))
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewStudentService(nil, nil)
	testutil.CreateStudent(t, svc, "X100", "Johnny Cash", "60")

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: nil},
		{term: "lol", want: []string{}},
		{term: "JOHN", want: []string{"S001", "X100"}},
		{term: "s00", want: []string{"S001", "S002"}},
		{term: " smith ", want: []string{"S002"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestService_Recent(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewStudentService(nil, &core.Config{Grades: core.GradesConfig{RecentCount: 3}})
	for _, id := range []string{"S003", "S004", "S005"} {
		testutil.CreateStudent(t, svc, id, "Student "+id, "75")
	}

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S003", "S004", "S005"}, ids(recent))
}

func TestService_StatsAndReport(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		svc, _ := testutil.NewStudentService(empty, nil)
		_, err := svc.Stats(ctx)
		assert.Equal(t, core.ErrNoData, err)
		_, err = svc.Report(ctx)
		assert.Equal(t, core.ErrNoData, err)
	})

	t.Run("sample", func(t *testing.T) {
		testutil.FreezeTime(t)
		svc, _ := testutil.NewStudentService(nil, nil)
		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 88.0, stats.ClassAvg)

		report, err := svc.Report(ctx)
		require.NoError(t, err)
		assert.Equal(t, "student_report_"+testutil.Now.Format("2006-01-02")+".txt", report.Filename)
		assert.Contains(t, string(report.Body), "Total Students: 2")
	})
}

func TestService_Import(t *testing.T) {
	svc, _ := testutil.NewStudentService(nil, nil)
	count, errs := svc.Import(context.Background(), []student.NewStudent{
		{ID: "S010", Name: "A", Grades: "90"},
		{ID: "S001", Name: "dup", Grades: "90"},
		{ID: "S011", Name: "B", Grades: "oops"},
		{ID: "S012", Name: "C", Grades: "80, 70"},
	})
	assert.Equal(t, 2, count)
	require.Len(t, errs, 2)
	assert.Equal(t, core.ErrDuplicateKey, errors.Cause(errs[0]))
	assert.True(t, core.IsValidation(errs[1]))
}

func TestTimestampsRoundTrip(t *testing.T) {
	svc, _ := testutil.NewStudentService(nil, nil)
	s, err := svc.GetByID(context.Background(), "S002")
	require.NoError(t, err)
	want := time.Date(testutil.Now.Year(), testutil.Now.Month(), testutil.Now.Day(), 11, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(s.AddedDate.Time))
}
