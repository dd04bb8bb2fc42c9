package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the upstream discussions/learning resources API.
type Client struct {
	baseURL string
	client  HTTPClient
	logger  *zap.Logger
}

func NewClient(baseURL string, c HTTPClient, logger *zap.Logger) *Client {
	if c == nil {
		c = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
		logger:  logger,
	}
}

type tokenKey struct{}

// WithToken attaches the user's token, forwarded upstream as a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := jsoncompat.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := c.client.Do(req)
	if err != nil {
		return types.NewTransportError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		callErr := apiError{}
		data, _ := io.ReadAll(io.LimitReader(res.Body, 64*1024))
		if len(data) > 0 {
			_ = jsoncompat.Unmarshal(data, &callErr)
		}
		c.logger.Debug("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode))
		return types.FromStatus(res.StatusCode, callErr.Detail)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err = jsoncompat.NewDecoder(res.Body).Decode(out); err != nil {
		return types.NewTransportError("invalid response body", err)
	}
	return nil
}
