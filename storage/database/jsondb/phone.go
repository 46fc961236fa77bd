package jsondb

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/phone"
)

// DefaultPhonesDocument is the empty inventory written when none exists yet.
var DefaultPhonesDocument = []byte("[]\n")

type phoneRepository struct {
	db *DB
}

func NewPhoneRepository(db *DB) phone.Repository {
	return &phoneRepository{db: db}
}

func (repo *phoneRepository) load(ctx context.Context) ([]phone.Phone, error) {
	data, err := repo.db.read(ctx)
	if err != nil {
		return nil, err
	}
	phones := make([]phone.Phone, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return phones, nil
	}
	if err := json.Unmarshal(data, &phones); err != nil {
		return nil, core.NewStorageError("decode phones", err)
	}
	return phones, nil
}

func (repo *phoneRepository) save(ctx context.Context, phones []phone.Phone) error {
	if phones == nil {
		phones = []phone.Phone{}
	}
	compact, err := json.Marshal(phones)
	if err != nil {
		return core.NewStorageError("encode phones", err)
	}
	return repo.db.write(ctx, compact)
}

func phoneIndex(phones []phone.Phone, id string) int {
	for i, p := range phones {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (repo *phoneRepository) CreatePhone(ctx context.Context, p phone.Phone) (phone.Phone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	phones, err := repo.load(ctx)
	if err != nil {
		return phone.Phone{}, err
	}
	if phoneIndex(phones, p.ID) >= 0 {
		return phone.Phone{}, errors.Wrapf(core.ErrDuplicateKey, "phone %s", p.ID)
	}
	if err := repo.save(ctx, append(phones, p)); err != nil {
		return phone.Phone{}, err
	}
	return p, nil
}

func (repo *phoneRepository) QueryAllPhones(ctx context.Context) ([]phone.Phone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.load(ctx)
}

func (repo *phoneRepository) GetPhone(ctx context.Context, id string) (phone.Phone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	phones, err := repo.load(ctx)
	if err != nil {
		return phone.Phone{}, err
	}
	if i := phoneIndex(phones, id); i >= 0 {
		return phones[i], nil
	}
	return phone.Phone{}, core.ErrNotFound
}

func (repo *phoneRepository) UpdatePhone(ctx context.Context, p phone.Phone) (phone.Phone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	phones, err := repo.load(ctx)
	if err != nil {
		return phone.Phone{}, err
	}
	i := phoneIndex(phones, p.ID)
	if i < 0 {
		return phone.Phone{}, core.ErrNotFound
	}
	phones[i] = p
	if err := repo.save(ctx, phones); err != nil {
		return phone.Phone{}, err
	}
	return p, nil
}

func (repo *phoneRepository) DeletePhone(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	phones, err := repo.load(ctx)
	if err != nil {
		return err
	}
	i := phoneIndex(phones, id)
	if i < 0 {
		return core.ErrNotFound
	}
	return repo.save(ctx, append(phones[:i], phones[i+1:]...))
}
