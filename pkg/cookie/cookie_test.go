package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "visitor", "v-123")

	c := rec.Result().Cookies()[0]
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	got, err := m.GetSigned(roundTrip(rec), "visitor")
	require.NoError(t, err)
	assert.Equal(t, "v-123", got)
}

func TestSignedTampered(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "visitor", Value: "djE.bogus"})
	_, err = m.GetSigned(r, "visitor")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "visitor", Value: "nodot"})
	_, err = m.GetSigned(r, "visitor")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)

	_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "visitor")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()
	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	old.SetSigned(rec, "visitor", "v-1")

	got, err := rotated.GetSigned(roundTrip(rec), "visitor")
	require.NoError(t, err)
	assert.Equal(t, "v-1", got)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secretA + " , ", MaxAge: 60, Secure: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "k", "v")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, 60, c.MaxAge)
	assert.True(t, c.Secure)
	assert.Equal(t, "/", c.Path)

	_, err = cookie.NewFromConfig(cookie.Config{}, secretB)
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "visitor")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, -1, c.MaxAge)
}
