package phone_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/tests"
)

func TestService_Create(t *testing.T) {
	testutil.FreezeTime(t)
	ctx := context.Background()
	svc, _ := testutil.NewPhoneService()

	full := phone.NewPhone{
		Name: "Pixel 8", Brand: "Google", Model: "GP4BC", Price: "699.99", Stock: "10",
		Color: "Obsidian", Storage: "128", ReleaseYear: "2023",
	}

	t.Run("all fields are required", func(t *testing.T) {
		np := full
		np.Color = " "
		_, err := svc.Create(ctx, np)
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, "All fields are required!", err.Error())

		verr := errors.Cause(err).(*core.ValidationError)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, core.FieldError{Field: "color", Error: "color is required"}, verr.Fields[0])
	})

	t.Run("numbers are coerced", func(t *testing.T) {
		np := full
		np.Stock = "ten"
		np.Storage = "256.9"
		p, err := svc.Create(ctx, np)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, 699.99, p.Price)
		assert.Equal(t, 0, p.Stock)
		assert.Equal(t, 256, p.Storage)
		assert.Equal(t, 2023, p.ReleaseYear)
		assert.Equal(t, testutil.Now.Format(core.TimeLayout), p.CreatedAt.String())
	})

	t.Run("ids are unique", func(t *testing.T) {
		p1, err := svc.Create(ctx, full)
		require.NoError(t, err)
		p2, err := svc.Create(ctx, full)
		require.NoError(t, err)
		assert.NotEqual(t, p1.ID, p2.ID)
	})

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_nonFiniteNumbers(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewPhoneService()
	np := phone.NewPhone{
		Name: "Pixel 8", Brand: "Google", Model: "GP4BC", Stock: "10",
		Color: "Obsidian", Storage: "128", ReleaseYear: "2023",
	}

	for _, price := range []string{"NaN", "inf", "-Infinity", "1e400"} {
		t.Run(price, func(t *testing.T) {
			np.Price = price
			p, err := svc.Create(ctx, np)
			require.NoError(t, err)
			assert.Equal(t, 0.0, p.Price)

			p, err = svc.Update(ctx, phone.UpdatePhone{ID: p.ID, NewPhone: phone.NewPhone{Price: price, Stock: "Inf"}})
			require.NoError(t, err)
			assert.Equal(t, 0.0, p.Price)
			assert.Equal(t, 0, p.Stock)
		})
	}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Models)
	assert.Equal(t, 0.0, sum.Value)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, mem := testutil.NewPhoneService()
	p := testutil.CreatePhone(t, svc, "Galaxy", "Samsung", "S24", "799", "4")
	writes := mem.Writes()

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, phone.UpdatePhone{ID: "nope", NewPhone: phone.NewPhone{Name: "X"}})
		assert.Equal(t, core.ErrNotFound, errors.Cause(err))
		assert.Equal(t, writes, mem.Writes())
	})

	t.Run("partial", func(t *testing.T) {
		got, err := svc.Update(ctx, phone.UpdatePhone{ID: p.ID, NewPhone: phone.NewPhone{Stock: "2", Color: "Violet"}})
		require.NoError(t, err)
		assert.Equal(t, "Galaxy", got.Name)
		assert.Equal(t, 799.0, got.Price)
		assert.Equal(t, 2, got.Stock)
		assert.Equal(t, "Violet", got.Color)
		assert.Equal(t, p.CreatedAt.String(), got.CreatedAt.String())

		stored, err := svc.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Stock, stored.Stock)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, mem := testutil.NewPhoneService()
	p := testutil.CreatePhone(t, svc, "Galaxy", "Samsung", "S24", "799", "4")
	testutil.CreatePhone(t, svc, "Pixel", "Google", "8", "699", "1")

	before, err := mem.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ErrNotFound, errors.Cause(svc.Delete(ctx, "nope")))
	after, err := mem.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.GetByID(ctx, p.ID)
	assert.Equal(t, core.ErrNotFound, errors.Cause(err))

	all, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Pixel", all[0].Name)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewPhoneService()
	testutil.CreatePhone(t, svc, "Galaxy S24", "Samsung", "SM-S921", "799", "4")
	testutil.CreatePhone(t, svc, "Pixel 8", "Google", "GP4BC", "699", "1")
	testutil.CreatePhone(t, svc, "iPhone 15", "Apple", "A3090", "899", "7")

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"Galaxy S24", "Pixel 8", "iPhone 15"}},
		{term: "google", want: []string{"Pixel 8"}},
		{term: "a3090", want: []string{"iPhone 15"}},
		{term: "black", want: []string{"Galaxy S24", "Pixel 8", "iPhone 15"}}, // color
		{term: "nokia", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term)
			require.NoError(t, err)
			names := make([]string, len(got))
			for i, p := range got {
				names[i] = p.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestService_SummaryAndReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewPhoneService()

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, phone.Summary{}, sum)
	_, err = svc.Report(ctx)
	assert.Equal(t, core.ErrNoData, err)

	testutil.CreatePhone(t, svc, "Galaxy", "Samsung", "S24", "799.99", "2")
	testutil.CreatePhone(t, svc, "Pixel", "Google", "8", "0.01", "3")
	sum, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, phone.Summary{Models: 2, Units: 5, Value: 1600.01}, sum)

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(report.Body), "Inventory Value: $1600.01")
}
