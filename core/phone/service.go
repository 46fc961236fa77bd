package phone

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/tally/core"
)

type (
	// Repository persists the inventory. Phones are returned in store order.
	Repository interface {
		CreatePhone(ctx context.Context, p Phone) (Phone, error)
		QueryAllPhones(ctx context.Context) ([]Phone, error)
		GetPhone(ctx context.Context, id string) (Phone, error)
		UpdatePhone(ctx context.Context, p Phone) (Phone, error)
		DeletePhone(ctx context.Context, id string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, np NewPhone) (Phone, error)
		QueryAll(ctx context.Context) ([]Phone, error)
		GetByID(ctx context.Context, id string) (Phone, error)
		Search(ctx context.Context, term string) ([]Phone, error)
		Update(ctx context.Context, up UpdatePhone) (Phone, error)
		Delete(ctx context.Context, id string) error
		Summary(ctx context.Context) (Summary, error)
		Report(ctx context.Context) (core.Report, error)
	}

	Service struct {
		repo       Repository
		validate   *validator.Validate
		translator ut.Translator
	}
)

var _ ServiceInterface = (*Service)(nil)

// newID is mockable in tests.
var newID = func() string { return uuid.New().String() }

func NewService(repo Repository, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{repo: repo, validate: validate, translator: translator}
}

func (svc *Service) Create(ctx context.Context, np NewPhone) (Phone, error) {
	if err := np.Validate(svc.validate, svc.translator); err != nil {
		return Phone{}, err
	}
	now := core.NewTimestamp(core.Now())
	p := Phone{
		ID:          newID(),
		Name:        np.Name,
		Brand:       np.Brand,
		Model:       np.Model,
		Price:       core.ParseFloat(np.Price),
		Stock:       core.ParseInt(np.Stock),
		Color:       np.Color,
		Storage:     core.ParseInt(np.Storage),
		ReleaseYear: core.ParseInt(np.ReleaseYear),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePhone(ctx, p)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Phone, error) {
	return svc.repo.QueryAllPhones(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Phone, error) {
	id = core.CleanString(id)
	if id == "" {
		return Phone{}, core.ErrNotFound
	}
	return svc.repo.GetPhone(ctx, id)
}

// Search does a case-insensitive substring match on name, brand, model and color.
// An empty term returns every phone.
func (svc *Service) Search(ctx context.Context, term string) ([]Phone, error) {
	phones, err := svc.repo.QueryAllPhones(ctx)
	if err != nil {
		return nil, err
	}
	term = core.CleanString(term, true /* lower */)
	if term == "" {
		return phones, nil
	}
	results := make([]Phone, 0)
	for _, p := range phones {
		for _, fld := range []string{p.Name, p.Brand, p.Model, p.Color} {
			if strings.Contains(strings.ToLower(fld), term) {
				results = append(results, p)
				break
			}
		}
	}
	return results, nil
}

func (svc *Service) Update(ctx context.Context, up UpdatePhone) (Phone, error) {
	p, err := svc.GetByID(ctx, up.ID)
	if err != nil {
		return Phone{}, err
	}
	up.apply(&p)
	p.UpdatedAt = core.NewTimestamp(core.Now())
	return svc.repo.UpdatePhone(ctx, p)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	id = core.CleanString(id)
	if id == "" {
		return core.ErrNotFound
	}
	return svc.repo.DeletePhone(ctx, id)
}

func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	phones, err := svc.repo.QueryAllPhones(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(phones), nil
}

// Report returns core.ErrNoData when the inventory is empty.
func (svc *Service) Report(ctx context.Context) (core.Report, error) {
	phones, err := svc.repo.QueryAllPhones(ctx)
	if err != nil {
		return core.Report{}, err
	}
	return WriteReport(phones, core.Now())
}
