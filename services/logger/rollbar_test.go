package logsvc

import (
	"bytes"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/tally/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := RollbarLogger{std: log.New(io.Discard, "", 0)}
	req := httptest.NewRequest("GET", "/?view=stats", nil)
	plainErr := errors.New("boom")
	storageErr := errors.Wrap(core.NewStorageError("writing document", io.ErrShortWrite), "updating student")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "nil args are dropped", args: []interface{}{nil, plainErr}, want: []interface{}{"msg", plainErr}},
		{
			name: "extras are merged",
			args: []interface{}{map[string]interface{}{"a": 1}, req, map[string]interface{}{"b": 2}},
			want: []interface{}{"msg", req, map[string]interface{}{"a": 1, "b": 2}},
		},
		{
			name: "storage error",
			args: []interface{}{storageErr},
			want: []interface{}{"msg", storageErr, map[string]interface{}{"storage_op": "writing document"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.prepare("msg", tt.args))
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	l := RollbarLogger{std: log.New(buf, "GRADES : ", 0)}

	l.print("Internal Server Error", []interface{}{nil, httptest.NewRequest("POST", "/?view=add", nil), io.EOF})

	assert.Equal(t, "GRADES : Internal Server Error\nGRADES : request: POST /?view=add\nGRADES : EOF\n", buf.String())
}
