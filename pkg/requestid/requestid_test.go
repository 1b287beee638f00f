package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		reused bool
	}{
		{"generates when missing", "", false},
		{"reuses valid id", "req-123_abc", true},
		{"replaces invalid characters", "bad id!", false},
		{"replaces overlong id", strings.Repeat("a", 129), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var seen string
			h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(requestid.Header, tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tc.reused {
				assert.Equal(t, tc.header, seen)
			} else {
				assert.NotEqual(t, tc.header, seen)
			}
		})
	}
}

func TestFromContextEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "abc"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	buf.Reset()
	log.InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "request_id")
}
