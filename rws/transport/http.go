package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/PurpleSec/logx"
)

// ErrUnauthorized is returned when the controller responds with 401 Unauthorized.
// Use errors.Is(err, ErrUnauthorized) to check for authentication failures.
var ErrUnauthorized = errors.New("transport: authentication failed (401 Unauthorized)")

const (
	// AcceptXHTML is the response format requested from the controller.
	AcceptXHTML = "application/xhtml+xml;v=2.0"

	// ContentTypeForm is the content type RWS expects for form-encoded bodies.
	ContentTypeForm = "application/x-www-form-urlencoded;v=2.0"

	// ContentTypeOctetStream is the content type for file service uploads.
	ContentTypeOctetStream = "application/octet-stream;v=2.0"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// defaultBufferSize is the initial size for pooled buffers.
	defaultBufferSize = 32 * 1024 // 32KB
)

// bufferPool is a pool of reusable bytes.Buffer to reduce allocations.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
	},
}

// readAllPooled reads from r using a pooled buffer and returns a copy of the data.
func readAllPooled(r io.Reader) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}

	// Return a copy since buf will be reused
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// Result is a decoded HTTP exchange with the controller.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// HTTPTransport handles HTTP/HTTPS communication with a robot controller.
//
// The underlying client carries a cookie jar. RWS issues the "-http-session-"
// and "ABBCX" session cookies on the first authenticated request and expects
// them back on every subsequent request, so all calls made through one
// HTTPTransport share a single controller session.
type HTTPTransport struct {
	client *http.Client
	log    logx.Log
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// NewHTTPTransport creates a new HTTP transport with the given options.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	jar, _ := cookiejar.New(nil) // cookiejar.New cannot fail with nil options

	t := &HTTPTransport{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				// The controller session is cookie-bound, keep connections around
				// between the short polling requests a caller typically makes.
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.client.Timeout = d
	}
}

// WithInsecureSkipVerify configures TLS to skip certificate verification.
// Robot controllers ship with self-signed certificates, so this is commonly
// needed when talking to a controller over HTTPS. Prefer installing the
// controller certificate where possible.
func WithInsecureSkipVerify(skip bool) HTTPTransportOption {
	return func(t *HTTPTransport) {
		transport := t.ensureHTTPTransport()
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
		transport.TLSClientConfig.InsecureSkipVerify = skip
	}
}

// WithTLSConfig sets a custom TLS configuration.
// NOTE: MinVersion is enforced to be at least TLS 1.2.
func WithTLSConfig(cfg *tls.Config) HTTPTransportOption {
	return func(t *HTTPTransport) {
		transport := t.ensureHTTPTransport()
		if cfg.MinVersion < tls.VersionTLS12 {
			cfg.MinVersion = tls.VersionTLS12
		}
		transport.TLSClientConfig = cfg
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logx.Log) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.log = l
	}
}

// ensureHTTPTransport ensures the client has an *http.Transport.
func (t *HTTPTransport) ensureHTTPTransport() *http.Transport {
	if t.client.Transport == nil {
		t.client.Transport = &http.Transport{}
	}
	transport, ok := t.client.Transport.(*http.Transport)
	if !ok {
		transport = &http.Transport{}
		t.client.Transport = transport
	}
	return transport
}

// Do sends a single request to the controller and returns the decoded
// exchange. A Result is returned for every HTTP response, including 4xx/5xx;
// callers interpret the status code against the endpoint's contract.
// Only transport-level failures (connection, context, body read) are errors.
func (t *HTTPTransport) Do(ctx context.Context, method, url, contentType string, body io.Reader) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create request: %w", err)
	}

	req.Header.Set("Accept", AcceptXHTML)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readAllPooled(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response: %w", err)
	}

	if t.log != nil {
		t.log.Debug("[transport] %s %s: %d (%d bytes)", method, url, resp.StatusCode, len(respBody))
	}

	return &Result{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   respBody,
	}, nil
}

// Client returns the underlying HTTP client for advanced configuration.
func (t *HTTPTransport) Client() *http.Client {
	return t.client
}

// Jar returns the cookie jar holding the controller session cookies.
func (t *HTTPTransport) Jar() http.CookieJar {
	return t.client.Jar
}

// TLSConfig returns the TLS configuration in use, or nil for plain HTTP
// transports that never had one configured.
func (t *HTTPTransport) TLSConfig() *tls.Config {
	transport, ok := t.client.Transport.(*http.Transport)
	if !ok {
		return nil
	}
	return transport.TLSClientConfig
}

// CloseIdleConnections closes any idle connections in the transport.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}
