package spec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	version "github.com/hashicorp/go-version"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError   ErrorCode = "InputError"
	NetworkError ErrorCode = "NetworkError"
	ParseError   ErrorCode = "ParseError"
	VersionError ErrorCode = "VersionError"
)

// SpecError is a structured error with the failing location.
type SpecError struct {
	Code     ErrorCode
	Message  string
	Location string // file path or URL
	Cause    error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

// StatusError reports a non-2xx response after redirects were followed.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds each HTTP request. Zero means no timeout.
	HTTPTimeout time.Duration
	// Retries is the number of extra attempts for transient failures
	// (network errors, 429 and 5xx). Zero disables retrying.
	Retries int
	// BackoffBase is the base delay between attempts.
	BackoffBase time.Duration
	// Client overrides the HTTP client. Timeout is still applied when set.
	Client *http.Client
}

// DefaultSettings returns the defaults: no timeout and no retries.
func DefaultSettings() Settings {
	return Settings{
		BackoffBase: 200 * time.Millisecond,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithRetries(n int) Option { return func(s *Settings) { s.Retries = n } }
func WithBackoffBase(d time.Duration) Option { return func(s *Settings) { s.BackoffBase = d } }
func WithHTTPClient(c *http.Client) Option { return func(s *Settings) { s.Client = c } }

var supportedVersions = version.MustConstraints(version.NewConstraint(">= 3.0, < 4.0"))

// Load reads an OpenAPI v3 document from an http/https URL, a file:// URL or
// a filesystem path, and decodes it with member order preserved.
func Load(ctx context.Context, input string, opts ...Option) (*Document, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &SpecError{Code: InputError, Message: "spec: input is empty"}
	}

	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	var (
		raw      []byte
		location = input
	)

	u, uerr := url.Parse(input)
	isURL := uerr == nil && len(u.Scheme) > 1 && (u.Host != "" || strings.EqualFold(u.Scheme, "file"))

	switch {
	case isURL && strings.EqualFold(u.Scheme, "file"):
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		data, err := readLocal(path)
		if err != nil {
			return nil, err
		}
		raw, location = data, path
	case isURL:
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https/file allowed)", scheme), Location: input}
		}
		data, err := fetch(ctx, input, settings)
		if err != nil {
			return nil, &SpecError{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		raw = data
	default:
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
		}
		data, err := readLocal(abs)
		if err != nil {
			return nil, err
		}
		raw, location = data, abs
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse %s: %v", location, err), Location: location, Cause: err}
	}
	if !doc.Root.IsObject() {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse %s: top-level value is %s, expected object", location, doc.Root.Kind), Location: location}
	}
	if err := checkVersion(doc.Root); err != nil {
		return nil, &SpecError{Code: VersionError, Message: err.Error(), Location: location, Cause: err}
	}
	doc.Location = location
	return doc, nil
}

func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("read %s: %v", path, err), Location: path, Cause: err}
	}
	return data, nil
}

// checkVersion rejects Swagger 2.0 and openapi versions outside 3.x. A
// document without a version field passes.
func checkVersion(root *Node) error {
	if sw := root.Get("swagger"); !sw.IsNull() {
		return fmt.Errorf("spec: Swagger 2.0 documents are not supported (swagger: %s); convert to OpenAPI 3 first", sw.Scalar)
	}
	field := root.Get("openapi")
	if field.IsNull() {
		return nil
	}
	raw := strings.TrimSpace(field.Scalar)
	v, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("spec: invalid openapi version %q", raw)
	}
	if !supportedVersions.Check(v) {
		return fmt.Errorf("spec: unsupported openapi version %s (want 3.x)", raw)
	}
	return nil
}

type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// fetch performs a GET, following redirects, and returns the body of a 2xx response.
func fetch(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	client := settings.Client
	if client == nil {
		client = &http.Client{}
	}
	if settings.HTTPTimeout > 0 {
		c := *client
		c.Timeout = settings.HTTPTimeout
		client = &c
	}
	attempts := settings.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var body []byte
	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")
			resp, err := client.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				return &transientError{err: err}
			}
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
				serr := &StatusError{StatusCode: resp.StatusCode, URL: resp.Request.URL.String(), Body: strings.TrimSpace(string(snippet))}
				if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
					return &transientError{err: serr}
				}
				return serr
			}
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return &transientError{err: err}
			}
			body = data
			return nil
		},
		retry.Attempts(uint(attempts)),
		retry.Delay(settings.BackoffBase),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		var te *transientError
		if errors.As(err, &te) {
			return nil, te.err
		}
		return nil, err
	}
	return body, nil
}
