package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/deskmate/internal/logging"
)

// jsonUnmarshal is an alias kept package-local so errors.go does not import
// encoding/json on its own.
var jsonUnmarshal = json.Unmarshal

// TokenSource supplies the bearer token attached to outgoing requests.
// An absent token yields an empty string; the header is still sent with an
// empty bearer value, matching the backend's expectations.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the REST transport used by all application services.
//
// Contract:
//   - JSON: issue a request with an optional JSON body, decode a JSON
//     response into out (out may be nil when the response body is ignored).
//   - PostForm: form-url-encoded POST (only the login endpoints use this).
//   - Download: fetch a binary body (the xlsx report).
//
// One attempt per call: no retries, no backoff. The only timeout is the
// underlying http.Client's; callers pass ctx for cancellation.
type Client interface {
	JSON(ctx context.Context, method, path string, body any, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
	Download(ctx context.Context, path string) ([]byte, error)
}

// HTTPClient is the concrete Client bound to a fixed backend origin.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient constructs a client for the given backend origin. A nil
// logger is replaced with a nop logger.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// JSON issues a request with an optional JSON body and decodes the JSON
// response into out. When out points to a slice, the payload must be a JSON
// array; anything else fails with ErrUnexpectedShape rather than a partial
// decode.
func (c *HTTPClient) JSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	data, err := c.do(ctx, method, path, contentType, reader)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if isSliceTarget(out) && !looksLikeArray(data) {
		return fmt.Errorf("%w: expected a list, got %s", ErrUnexpectedShape, payloadKind(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
	}
	return nil
}

// PostForm issues a form-url-encoded POST and decodes the JSON response into
// out. Used by the login endpoints only.
func (c *HTTPClient) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	reader := strings.NewReader(form.Encode())
	data, err := c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", reader)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
	}
	return nil
}

// Download fetches a binary response body, e.g. the analytics report.
func (c *HTTPClient) Download(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// do performs the single HTTP attempt shared by all request kinds: build the
// request, attach the bearer token (empty value when absent) and a
// correlation id, send, and split the outcome into success bytes or a
// RequestError carrying the body text.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token(ctx)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrDecode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "non-success response", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &RequestError{Status: resp.StatusCode, Body: string(data)}
	}

	c.log.Info(ctx, "request finished", "method", method, "path", path, "status", resp.StatusCode)
	return data, nil
}

// isSliceTarget reports whether out is a non-nil pointer to a slice.
func isSliceTarget(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	return v.Elem().Kind() == reflect.Slice
}

// looksLikeArray reports whether the payload's first token opens a JSON
// array.
func looksLikeArray(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// payloadKind names the payload's top-level JSON kind for error messages.
func payloadKind(data []byte) string {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return "an object"
		case '[':
			return "a list"
		case '"':
			return "a string"
		default:
			return "a scalar"
		}
	}
	return "an empty body"
}
