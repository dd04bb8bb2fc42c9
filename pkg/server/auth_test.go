package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	raw, err := CreateToken(testSecret, 7, "ada", time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserId)
	assert.Equal(t, "ada", claims.Username)

	_, err = parseToken([]byte("other"), raw)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	raw, err := CreateToken(testSecret, 7, "ada", -time.Minute)
	require.NoError(t, err)
	_, err = parseToken(testSecret, raw)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	ws := &WebServer{Secret: testSecret}
	ws = NewWebServer(ws)
	var seen *UserClaims
	handler := ws.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/lists/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, seen)

	raw, err := CreateToken(testSecret, 3, "grace", time.Hour)
	require.NoError(t, err)
	r := httptest.NewRequest("GET", "/api/lists/1", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: raw})
	w = httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "grace", seen.Username)

	r = httptest.NewRequest("GET", "/api/lists/1", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmptySecretRejectsEveryToken(t *testing.T) {
	_, err := CreateToken(nil, 1, "mallory", time.Hour)
	assert.ErrorIs(t, err, errNoSecret)

	// a token signed with an empty key is otherwise valid HS256
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		UserId:   1,
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte{})
	require.NoError(t, err)

	ws := NewWebServer(&WebServer{})
	called := false
	handler := ws.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	r := httptest.NewRequest("GET", "/api/lists/1", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
}
