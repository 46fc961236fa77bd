package core

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Timestamp is a time.Time persisted as "YYYY-MM-DD HH:MM:SS" (local time).
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimeLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		// tolerate RFC 3339 documents
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return errors.Wrapf(err, "parsing timestamp %q", s)
		}
	}
	ts.Time = t
	return nil
}
