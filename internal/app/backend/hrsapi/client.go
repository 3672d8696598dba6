// Package hrsapi is the typed client for the riding-school backend REST API.
//
// The backend owns all persistence and business rules; this client is a thin
// JSON-over-HTTP layer at the /api/v1 contract. Requests carry the signed-in
// user's Basic-Auth credential. Non-2xx responses become *APIError with the
// backend's mensaje/error field when present, so handlers can surface the
// backend's own words; 2xx responses may carry a mensaje/message field which
// is returned for success notifications.
package hrsapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Token is a Base64 "username:password" Basic-Auth credential.
type Token string

// BasicToken encodes credentials the way the backend expects them.
func BasicToken(username, password string) Token {
	return Token(basicEncode(username + ":" + password))
}

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Mensaje    string
}

func (e *APIError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("Error %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a backend 401. Callers react by
// clearing the session and redirecting to the login screen.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New builds a Client for baseURL (e.g. "http://localhost:8080/api/v1").
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", baseURL)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}, nil
}

// envelope captures the message fields the backend mixes into its JSON
// bodies, on both success and error responses.
type envelope struct {
	Mensaje string            `json:"mensaje"`
	Message string            `json:"message"`
	Err     string            `json:"error"`
	Errores map[string]string `json:"errores"`
}

// do issues one request. body is JSON-encoded when non-nil; on 2xx the
// response is decoded into out when non-nil, and the backend's success
// mensaje (if any) is returned.
func (c *Client) do(ctx context.Context, tok Token, method, path string, body, out any) (string, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Basic "+string(tok))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.apiError(resp.StatusCode, raw)
	}

	var env envelope
	if len(raw) > 0 {
		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return "", fmt.Errorf("decode %s %s: %w", method, path, err)
			}
		}
		// Message fields ride the same body as the entity; a decode failure
		// here just means there was no envelope.
		_ = json.Unmarshal(raw, &env)
	}
	if env.Mensaje != "" {
		return env.Mensaje, nil
	}
	return env.Message, nil
}

// apiError builds the error for a non-2xx response, preferring the backend's
// own message. Field validation maps (errores) are joined into one message.
func (c *Client) apiError(status int, raw []byte) *APIError {
	var env envelope
	_ = json.Unmarshal(raw, &env)

	msg := env.Mensaje
	if msg == "" {
		msg = env.Err
	}
	if msg == "" && len(env.Errores) > 0 {
		fields := make([]string, 0, len(env.Errores))
		for field := range env.Errores {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, env.Errores[field])
		}
		msg = strings.Join(parts, "\n")
	}
	return &APIError{StatusCode: status, Mensaje: msg}
}

func basicEncode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
