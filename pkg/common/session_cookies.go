package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SessionCookieName = "sid"

// SessionTracker is told about every session the first time it is seen.
type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

func generateSessionId() string {
	return uuid.NewString()
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	host := r.Host
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(host, "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id from the request, issuing a
// new one when the cookie is missing or malformed.
func HandleSessionCookie(tracker SessionTracker, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := generateSessionId()
	if tracker != nil {
		tracker.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
