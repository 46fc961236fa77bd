package jsondb

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// DefaultStudentsDocument is the sample grade book written when none exists yet.
func DefaultStudentsDocument(now time.Time) []byte {
	day := func(h, m int) core.Timestamp {
		return core.NewTimestamp(time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location()))
	}
	samples := []student.Student{
		{ID: "S001", Name: "John Doe", Grades: []float64{85, 90, 78}, AddedDate: day(10, 30), LastUpdated: day(10, 30)},
		{ID: "S002", Name: "Jane Smith", Grades: []float64{92, 88, 95}, AddedDate: day(11, 0), LastUpdated: day(11, 0)},
	}
	for i := range samples {
		samples[i].SetGrades(samples[i].Grades)
	}
	compact, err := encodeStudents(samples)
	if err != nil {
		panic(err) // static data
	}
	var out bytes.Buffer
	_ = json.Indent(&out, compact, "", indent)
	out.WriteByte('\n')
	return out.Bytes()
}

// decodeStudents reads a JSON object keyed by student ID, keeping the key order.
// An empty array is accepted as an empty grade book.
func decodeStudents(data []byte) ([]student.Student, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []student.Student{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
	case json.Delim('['):
		if tok, err = dec.Token(); err != nil || tok != json.Delim(']') {
			return nil, errors.New("students document must be an object")
		}
		return []student.Student{}, nil
	default:
		return nil, errors.Errorf("students document must be an object, got %v", tok)
	}

	students := make([]student.Student, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, _ := tok.(string)

		var s student.Student
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrapf(err, "decoding student %q", id)
		}
		s.ID = id
		if i, ok := index[id]; ok {
			students[i] = s
			continue
		}
		index[id] = len(students)
		students = append(students, s)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return students, nil
}

// encodeStudents writes a compact JSON object keyed by student ID, in slice order.
func encodeStudents(students []student.Student) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range students {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding student %q", s.ID)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (repo *studentRepository) load(ctx context.Context) ([]student.Student, error) {
	data, err := repo.db.read(ctx)
	if err != nil {
		return nil, err
	}
	students, err := decodeStudents(data)
	if err != nil {
		return nil, core.NewStorageError("decode students", err)
	}
	return students, nil
}

func (repo *studentRepository) save(ctx context.Context, students []student.Student) error {
	compact, err := encodeStudents(students)
	if err != nil {
		return core.NewStorageError("encode students", err)
	}
	return repo.db.write(ctx, compact)
}

func indexOf(students []student.Student, id string) int {
	for i, s := range students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	students, err := repo.load(ctx)
	if err != nil {
		return student.Student{}, err
	}
	if indexOf(students, s.ID) >= 0 {
		return student.Student{}, errors.Wrapf(core.ErrDuplicateKey, "student %s", s.ID)
	}
	if err := repo.save(ctx, append(students, s)); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	return repo.load(ctx)
}

func (repo *studentRepository) GetStudent(ctx context.Context, id string) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	students, err := repo.load(ctx)
	if err != nil {
		return student.Student{}, err
	}
	if i := indexOf(students, id); i >= 0 {
		return students[i], nil
	}
	return student.Student{}, core.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	students, err := repo.load(ctx)
	if err != nil {
		return student.Student{}, err
	}
	i := indexOf(students, s.ID)
	if i < 0 {
		return student.Student{}, core.ErrNotFound
	}
	students[i] = s
	if err := repo.save(ctx, students); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	students, err := repo.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(students, id)
	if i < 0 {
		return core.ErrNotFound
	}
	return repo.save(ctx, append(students[:i], students[i+1:]...))
}
