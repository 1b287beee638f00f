package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/clientip"
)

func TestResolverIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    []string
		reqHeaders map[string]string
		remote     string
		want       string
	}{
		{"remote addr", nil, nil, "192.0.2.1:1234", "192.0.2.1"},
		{"remote without port", nil, nil, "192.0.2.1", "192.0.2.1"},
		{"invalid remote", nil, nil, "garbage", ""},
		{"untrusted header ignored", nil, map[string]string{"X-Real-IP": "198.51.100.7"}, "192.0.2.1:1", "192.0.2.1"},
		{"first valid forwarded", clientip.DefaultHeaders, map[string]string{"X-Forwarded-For": "bogus, 198.51.100.7, 203.0.113.9"}, "192.0.2.1:1", "198.51.100.7"},
		{"priority order", clientip.DefaultHeaders, map[string]string{"X-Real-IP": "203.0.113.9", "CF-Connecting-IP": "198.51.100.7"}, "192.0.2.1:1", "198.51.100.7"},
		{"invalid header falls through", clientip.DefaultHeaders, map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.1:1", "192.0.2.1"},
		{"ipv6", nil, nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"mapped ipv4", clientip.DefaultHeaders, map[string]string{"X-Real-IP": "::ffff:192.0.2.5"}, "", "192.0.2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.reqHeaders {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.New(tt.headers...).IP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.1", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	_, ok := clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	attr, ok := clientip.LoggerExtractor()(clientip.WithContext(context.Background(), "192.0.2.1"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
