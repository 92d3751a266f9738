package log

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "X-Request-Id tem prioridade",
			headers: map[string]string{"X-Request-Id": "req-1", "X-Cloud-Trace-Context": "abc/1;o=1"},
			want:    "req-1",
		},
		{
			name:    "Trace do Cloud Run sem o span",
			headers: map[string]string{"X-Cloud-Trace-Context": "105445aa7843bc8bf206b12000100000/1;o=1"},
			want:    "105445aa7843bc8bf206b12000100000",
		},
		{
			name:    "Sem cabeçalho",
			headers: map[string]string{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			assert.Equal(t, tt.want, CorrelationIDFromHeader(header.Get))
		})
	}
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithGivenCorrelationID(context.Background(), "req-1")
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "req-1", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}
