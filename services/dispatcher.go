package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edura-app/edura-go/core"
)

const defaultTimeout = 30 * time.Second

// Dispatcher is the single chokepoint every network call passes through.
// It attaches the bearer credential when a session exists, serializes the
// body, parses the response, and normalizes failures into the error
// taxonomy in core. A 401 from any endpoint clears the session store before
// the error is returned: one unauthorized response invalidates the entire
// local session, not just the call that observed it.
type Dispatcher struct {
	baseURL   string
	httpc     core.Doer
	session   core.SessionStore
	logger    *zap.Logger
	userAgent string
}

func NewDispatcher(config core.Config) (*Dispatcher, error) {
	if config.BaseURL == "" {
		return nil, core.ErrBaseURLRequired
	}

	httpc := config.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	session := config.Session
	if session == nil {
		session = core.NewMemoryStore()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		httpc:     httpc,
		session:   session,
		logger:    logger,
		userAgent: config.UserAgent,
	}, nil
}

func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

func (d *Dispatcher) Session() core.SessionStore {
	return d.session
}

// Do performs one exchange and returns the parsed payload. Callers never
// inspect the transport response: they get either a payload or an error
// carrying a human-readable message. An empty or non-JSON response body is
// an empty payload, not an error - some endpoints return no body.
func (d *Dispatcher) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	// The JSON content type goes out on every non-form request, body or
	// not, matching the deployed web client byte for byte.
	return d.roundTrip(ctx, method, path, reader, "application/json")
}

// DoForm performs one multipart exchange. The form's own content type
// carries the boundary; no JSON serialization happens.
func (d *Dispatcher) DoForm(ctx context.Context, method, path string, form *Form) (json.RawMessage, error) {
	if err := form.Close(); err != nil {
		return nil, err
	}
	return d.roundTrip(ctx, method, path, form.Reader(), form.ContentType())
}

// DoJSON is Do plus decoding of the payload into out. A nil out discards
// the payload.
func (d *Dispatcher) DoJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := d.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (d *Dispatcher) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	url := d.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := d.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	res, err := d.httpc.Do(req)
	if err != nil {
		// The request never reached a server; there is nothing to parse.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.logger.Debug("request failed before reaching the server",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &core.NetworkError{URL: url, Unreachable: isUnreachable(err), Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &core.NetworkError{URL: url, Err: err}
	}

	d.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	// Best-effort parse; an unparseable body degrades to an empty payload.
	var payload json.RawMessage
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		payload = trimmed
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode == http.StatusUnauthorized {
			// Global trust-boundary decision: any 401 invalidates the
			// whole local session. Clearing is idempotent, so concurrent
			// calls racing here are harmless.
			if clearErr := d.session.Clear(); clearErr != nil {
				d.logger.Warn("failed to clear session after 401", zap.Error(clearErr))
			}
		}
		return nil, &core.APIError{
			Status:  res.StatusCode,
			Message: errorMessage(payload, res.StatusCode),
		}
	}

	if payload == nil {
		payload = json.RawMessage("{}")
	}
	return payload, nil
}

// errorMessage pulls the server's message out of an error payload, falling
// back to a generic status line.
func errorMessage(payload json.RawMessage, status int) string {
	if payload != nil {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &body); err == nil {
			if body.Error != "" {
				return body.Error
			}
			if body.Message != "" {
				return body.Message
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// Form accumulates a multipart payload for the upload endpoints.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
	closed bool
}

func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a scalar field. Empty values are skipped so optional
// metadata never turns into empty form entries.
func (f *Form) AddField(name, value string) *Form {
	if f.err != nil || value == "" {
		return f
	}
	f.err = f.writer.WriteField(name, value)
	return f
}

// AddFile streams a file part into the form.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		f.err = err
		return f
	}
	if _, err := io.Copy(part, r); err != nil {
		f.err = err
	}
	return f
}

func (f *Form) Close() error {
	if f.err != nil {
		return f.err
	}
	if !f.closed {
		f.closed = true
		f.err = f.writer.Close()
	}
	return f.err
}

func (f *Form) Reader() io.Reader {
	return &f.buf
}

func (f *Form) ContentType() string {
	return f.writer.FormDataContentType()
}
