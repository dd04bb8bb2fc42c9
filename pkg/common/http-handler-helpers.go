package common

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

// bufferedResponse holds status and body until the handler has returned, so
// a late error can still replace the response.
type bufferedResponse struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) flush() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.ResponseWriter.WriteHeader(b.status)
	_, err := b.ResponseWriter.Write(b.body.Bytes())
	return err
}

// JsonHandler resolves the session cookie and writes any returned error as a
// JSON body with the status of its kind.
func JsonHandler(logger *zap.Logger, trk SessionTracker, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")

		buffered := &bufferedResponse{ResponseWriter: w}
		if err := fn(buffered, r, sessionId, jsoncompat.NewEncoder(buffered)); err != nil {
			WriteError(logger, w, r, err)
			return
		}
		if err := buffered.flush(); err != nil {
			logger.Debug("failed to write response", zap.String("path", r.URL.Path), zap.Error(err))
		}
	}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func WriteError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	kind := types.KindOf(err)
	status := kind.HttpStatus()
	var e *types.Error
	if kind == types.KindUnknown || !errors.As(err, &e) {
		logger.Error("error handling request", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		logger.Debug("request failed", zap.String("path", r.URL.Path), zap.Stringer("kind", kind), zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsoncompat.NewEncoder(w).Encode(errorBody{Error: err.Error(), Kind: kind.String()})
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
