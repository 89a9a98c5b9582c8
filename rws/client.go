package rws

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PurpleSec/logx"
	"github.com/google/uuid"

	"github.com/s3904419/go-rws/rws/transport"
)

// Client is a Robot Web Services client bound to one controller.
//
// A Client is safe for use from multiple goroutines, though RWS itself is a
// plain request/response API: each method issues exactly one HTTP request
// and the controller serializes conflicting writes through mastership.
type Client struct {
	baseURL   string
	transport *transport.HTTPTransport
	log       logx.Log
	tag       string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for operation tracing.
func WithLogger(l logx.Log) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new RWS client for the controller at baseURL
// (e.g. "https://192.168.125.1").
func NewClient(baseURL string, tr *transport.HTTPTransport, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		transport: tr,
		tag:       strings.ToUpper(uuid.New().String())[:8],
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the controller base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Transport returns the underlying HTTP transport.
func (c *Client) Transport() *transport.HTTPTransport {
	return c.transport
}

// Login establishes the controller session. Authentication itself rides on
// every request, but the first authenticated exchange is what makes the
// controller issue its session cookies; Login performs that exchange and
// verifies the credentials by reading the system resource.
func (c *Client) Login(ctx context.Context) error {
	if _, err := c.System(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.debug("logged in")
	return nil
}

// Logout terminates the controller session. The client remains usable; the
// next request simply authenticates a fresh session.
func (c *Client) Logout(ctx context.Context) error {
	res, err := c.transport.Do(ctx, http.MethodGet, c.baseURL+"/logout", "", nil)
	if err != nil {
		return err
	}
	if err := checkStatus(res, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.debug("logged out")
	return nil
}

// get issues a GET expecting 200 and returns the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	res, err := c.transport.Do(ctx, http.MethodGet, c.baseURL+path, "", nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res, http.StatusOK); err != nil {
		return nil, err
	}
	return res.Body, nil
}

// postForm issues a form-encoded POST expecting one of the given statuses
// (204 when none given) and returns the raw result for callers that need
// headers.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, want ...int) (*transport.Result, error) {
	if len(want) == 0 {
		want = []int{http.StatusNoContent}
	}
	res, err := c.transport.Do(ctx, http.MethodPost, c.baseURL+path, transport.ContentTypeForm, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res, want...); err != nil {
		return nil, err
	}
	return res, nil
}

// put issues a PUT with the given content type, expecting 201 or 204.
func (c *Client) put(ctx context.Context, path, contentType string, data []byte) error {
	res, err := c.transport.Do(ctx, http.MethodPut, c.baseURL+path, contentType, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return checkStatus(res, http.StatusCreated, http.StatusNoContent)
}

// delete issues a DELETE expecting 200 or 204.
func (c *Client) delete(ctx context.Context, path string) error {
	res, err := c.transport.Do(ctx, http.MethodDelete, c.baseURL+path, "", nil)
	if err != nil {
		return err
	}
	return checkStatus(res, http.StatusOK, http.StatusNoContent)
}

// checkStatus maps a response status against the endpoint's expected set.
// Any 2xx outside the set is tolerated; the controller varies between 200
// and 204 for some writes across RobotWare versions.
func checkStatus(res *transport.Result, want ...int) error {
	for _, w := range want {
		if res.Status == w {
			return nil
		}
	}
	if res.Status >= 200 && res.Status < 300 {
		return nil
	}
	if res.Status == http.StatusUnauthorized {
		return transport.ErrUnauthorized
	}
	return newAPIError(res.Status, res.Body)
}

func (c *Client) debug(format string, v ...interface{}) {
	if c.log != nil {
		c.log.Debug("[rws %s] "+format, append([]interface{}{c.tag}, v...)...)
	}
}
