// Package api implements the HTTP transport for the HunnyDU REST API and
// the classification of its response outcomes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials is the envelope sent to authenticated endpoints: either a raw
// email+password pair (login) or a previously issued token.
type Credentials struct {
	EmailOrToken string `json:"email_or_token"`
	Password     string `json:"password,omitempty"`
}

// TokenFunc supplies the currently stored auth token, or "" when logged out.
type TokenFunc func() string

// Transport issues HTTP requests against the API. It attaches credentials
// and serializes bodies; it does not persist or interpret state.
type Transport struct {
	baseURL string
	client  *http.Client
	token   TokenFunc
	now     func() time.Time
}

// New creates a Transport for the given base URL. token supplies the stored
// session token used when a caller does not provide credentials; it may be
// nil.
func New(baseURL string, token TokenFunc) *Transport {
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		token:   token,
		now:     time.Now,
	}
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (t *Transport) SetHTTPClient(c *http.Client) {
	t.client = c
}

// Response is a raw API response: status code plus payload.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Empty reports whether the body carries no usable payload. Several
// endpoints answer a rejected token with a falsy body rather than a
// structured response; callers on authenticated endpoints treat an empty
// body as an authentication failure.
func (r *Response) Empty() bool {
	s := strings.TrimSpace(string(r.Body))
	return s == "" || s == "false" || s == "null"
}

// payload is the request body shape the API expects. Credentials travel in
// the body rather than an Authorization header; that is the server's wire
// contract, not an oversight on this side. The action payload is a
// JSON-encoded string under "body" (the server literal-evals it), and
// tzOffset carries the caller's UTC offset so due-date math matches the
// client's clock on the task endpoints.
type payload struct {
	Auth     *Credentials `json:"auth,omitempty"`
	Body     string       `json:"body,omitempty"`
	TZOffset int          `json:"tzOffset"`
}

// Request performs an API call and returns the raw response. A
// transport-level failure (DNS, timeout, connection reset) produces a
// *NetworkError instead of a response.
//
// Reads never carry a body: sending one would make the request malformed.
// For writes, body (if non-nil) is serialized into the payload, and when
// requiresAuth is set the credential envelope is attached, defaulting to
// the stored token when creds is nil or carries no identity.
func (t *Transport) Request(ctx context.Context, method, path string, body any, requiresAuth bool, creds *Credentials) (*Response, error) {
	var reader io.Reader
	if method != http.MethodGet {
		p := payload{TZOffset: t.tzOffset()}

		if requiresAuth {
			env := Credentials{}
			if creds != nil {
				env = *creds
			}
			if env.EmailOrToken == "" && t.token != nil {
				env.EmailOrToken = t.token()
			}
			p.Auth = &env
		}

		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			p.Body = string(data)
		}

		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// tzOffset returns the local UTC offset in minutes west of UTC, the way a
// browser reports it.
func (t *Transport) tzOffset() int {
	_, seconds := t.now().Zone()
	return -seconds / 60
}
