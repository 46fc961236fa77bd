package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
	"github.com/trezcool/tally/core/student"
	"github.com/trezcool/tally/storage/backend"
	"github.com/trezcool/tally/storage/database/jsondb"
)

// Now is a fixed reference time for tests.
var Now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)

// FreezeTime makes core.Now return Now until the test ends.
func FreezeTime(t *testing.T) {
	t.Helper()
	orig := core.Now
	core.Now = func() time.Time { return Now }
	t.Cleanup(func() { core.Now = orig })
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewStudentService returns a grade book service over an in-memory document.
// A nil doc starts from the sample grade book.
func NewStudentService(doc []byte, conf *core.Config) (*student.Service, *backend.Memory) {
	if doc == nil {
		doc = jsondb.DefaultStudentsDocument(Now)
	}
	if conf == nil {
		conf = &core.Config{}
	}
	mem := backend.NewMemory(doc)
	validate, translator := NewValidator()
	return student.NewService(jsondb.NewStudentRepository(jsondb.New(mem)), validate, translator, conf), mem
}

// NewPhoneService returns an inventory service over an in-memory document.
func NewPhoneService() (*phone.Service, *backend.Memory) {
	mem := backend.NewMemory(jsondb.DefaultPhonesDocument)
	validate, translator := NewValidator()
	return phone.NewService(jsondb.NewPhoneRepository(jsondb.New(mem)), validate, translator), mem
}

func CreateStudent(t *testing.T, svc student.ServiceInterface, id, name, grades string) student.Student {
	t.Helper()
	s, err := svc.Create(context.Background(), student.NewStudent{ID: id, Name: name, Grades: grades})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreatePhone(t *testing.T, svc phone.ServiceInterface, name, brand, model, price, stock string) phone.Phone {
	t.Helper()
	p, err := svc.Create(context.Background(), phone.NewPhone{
		Name:        name,
		Brand:       brand,
		Model:       model,
		Price:       price,
		Stock:       stock,
		Color:       "Black",
		Storage:     "128",
		ReleaseYear: "2023",
	})
	if err != nil {
		t.Fatalf("CreatePhone() failed: %v", err)
	}
	return p
}
