package phone

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/tally/core"
)

var errAllFieldsRequired = errors.New("All fields are required!")

type Phone struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Brand       string         `json:"brand"`
	Model       string         `json:"model"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	Color       string         `json:"color"`
	Storage     int            `json:"storage"` // GB
	ReleaseYear int            `json:"release_year"`
	CreatedAt   core.Timestamp `json:"created_at"`
	UpdatedAt   core.Timestamp `json:"updated_at"`
}

// Value is the inventory value of the phone's stock.
func (p Phone) Value() float64 {
	return decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))).Round(2).InexactFloat64()
}

// NewPhone contains information needed to create a new Phone.
// Numeric fields are submitted as text and coerced: anything unparsable becomes 0.
type NewPhone struct {
	Name        string `form:"name" validate:"required"`
	Brand       string `form:"brand" validate:"required"`
	Model       string `form:"model" validate:"required"`
	Price       string `form:"price" validate:"required"`
	Stock       string `form:"stock" validate:"required"`
	Color       string `form:"color" validate:"required"`
	Storage     string `form:"storage" validate:"required"`
	ReleaseYear string `form:"release_year" validate:"required"`
}

func (np *NewPhone) clean() {
	np.Name = core.CleanString(np.Name)
	np.Brand = core.CleanString(np.Brand)
	np.Model = core.CleanString(np.Model)
	np.Price = core.CleanString(np.Price)
	np.Stock = core.CleanString(np.Stock)
	np.Color = core.CleanString(np.Color)
	np.Storage = core.CleanString(np.Storage)
	np.ReleaseYear = core.CleanString(np.ReleaseYear)
}

func (np *NewPhone) Validate(validate *validator.Validate, translator ut.Translator) error {
	np.clean()
	if err := validate.Struct(np); err != nil {
		if verr, ok := core.TranslateValidationErrors(err, translator).(*core.ValidationError); ok {
			verr.Err = errAllFieldsRequired
			return verr
		}
		return err
	}
	return nil
}

// UpdatePhone defines what information may be provided to modify an existing Phone.
// Empty fields leave the stored values unchanged.
type UpdatePhone struct {
	ID string `form:"id"`
	NewPhone
}

// apply copies the non-empty fields of up onto p.
func (up *UpdatePhone) apply(p *Phone) {
	up.clean()
	if up.Name != "" {
		p.Name = up.Name
	}
	if up.Brand != "" {
		p.Brand = up.Brand
	}
	if up.Model != "" {
		p.Model = up.Model
	}
	if up.Price != "" {
		p.Price = core.ParseFloat(up.Price)
	}
	if up.Stock != "" {
		p.Stock = core.ParseInt(up.Stock)
	}
	if up.Color != "" {
		p.Color = up.Color
	}
	if up.Storage != "" {
		p.Storage = core.ParseInt(up.Storage)
	}
	if up.ReleaseYear != "" {
		p.ReleaseYear = core.ParseInt(up.ReleaseYear)
	}
}
