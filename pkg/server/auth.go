package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/matst80/learn-finder/pkg/client"
	"github.com/matst80/learn-finder/pkg/common"
	"github.com/matst80/learn-finder/pkg/types"
)

const tokenCookieName = "learn-token"

var errNoSecret = errors.New("no token secret configured")

// UserClaims is what the platform puts in the session token.
type UserClaims struct {
	UserId   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type userKey struct{}

func UserFrom(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(userKey{}).(*UserClaims)
	return claims, ok
}

func CreateToken(secret []byte, userId int, username string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errNoSecret
	}
	claims := UserClaims{
		UserId:   userId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken refuses every token when secret is empty, jwt accepts an empty
// HMAC key.
func parseToken(secret []byte, raw string) (*UserClaims, error) {
	if len(secret) == 0 {
		return nil, errNoSecret
	}
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware requires a valid token and forwards it to upstream calls
// made with the request context.
func (ws *WebServer) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			common.RespondToOptions(w, r)
			return
		}
		raw := tokenFromRequest(r)
		if raw == "" {
			common.WriteError(ws.Logger, w, r, types.ErrNotAuthorized)
			return
		}
		claims, err := parseToken(ws.Secret, raw)
		if err != nil {
			common.WriteError(ws.Logger, w, r, &types.Error{Kind: types.KindNotAuthorized, Code: http.StatusUnauthorized, Msg: "not authorized", Cause: err})
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, claims)
		ctx = client.WithToken(ctx, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
