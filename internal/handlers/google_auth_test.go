package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/handlers"
)

func newGoogleAuthHandler() *handlers.GoogleAuthHandler {
	cfg := &config.Config{
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8080/api/auth/google/callback",
		},
	}
	return handlers.NewGoogleAuthHandler(&mockUserStore{}, cfg)
}

func stateCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			return c
		}
	}
	t.Fatal("oauth_state cookie not set")
	return nil
}

func TestGoogleAuthHandler_Login_SetsStateCookie(t *testing.T) {
	h := newGoogleAuthHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil)
	w := httptest.NewRecorder()
	h.GoogleLogin(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.GoogleLoginResponse](t, w)
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.AuthURL, "state="+resp.State)

	cookie := stateCookie(t, w)
	assert.Equal(t, resp.State, cookie.Value, "cookie must carry the same state as the auth URL")
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)
}

func TestGoogleAuthHandler_Callback_RejectsMissingStateCookie(t *testing.T) {
	h := newGoogleAuthHandler()

	r := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=some-state", nil)
	w := httptest.NewRecorder()
	h.GoogleCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleAuthHandler_Callback_RejectsStateMismatch(t *testing.T) {
	h := newGoogleAuthHandler()

	// Obtain a real state cookie from the login step.
	login := httptest.NewRecorder()
	h.GoogleLogin(login, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))
	cookie := stateCookie(t, login)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=forged-state", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.GoogleCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleAuthHandler_Callback_RequiresCode(t *testing.T) {
	h := newGoogleAuthHandler()

	// Matching state but no authorization code.
	login := httptest.NewRecorder()
	h.GoogleLogin(login, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))
	cookie := stateCookie(t, login)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state="+cookie.Value, nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.GoogleCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "authorization code")
}
