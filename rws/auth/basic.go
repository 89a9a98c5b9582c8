package auth

import (
	"log"
	"net/http"
	"sync"
)

// BasicAuth implements HTTP Basic authentication, the scheme RobotWare 7
// controllers (RWS 2.x) use. Credentials ride on every request; after the
// first one the controller binds the session to its cookies.
type BasicAuth struct {
	creds Credentials
}

// NewBasicAuth creates a new Basic authentication handler.
func NewBasicAuth(creds Credentials) *BasicAuth {
	return &BasicAuth{creds: creds}
}

// Name returns the authentication scheme name.
func (a *BasicAuth) Name() string {
	return "Basic"
}

// Transport wraps an http.RoundTripper with Basic authentication.
func (a *BasicAuth) Transport(base http.RoundTripper) http.RoundTripper {
	return &basicTransport{
		base:  base,
		creds: a.creds,
	}
}

// basicTransport sets the Authorization header on a clone of each request.
type basicTransport struct {
	base     http.RoundTripper
	creds    Credentials
	warnOnce sync.Once
}

// RoundTrip implements http.RoundTripper.
func (t *basicTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Basic sends the UAS password in the clear; controllers accept plain
	// HTTP, so warn once rather than refuse.
	if req.URL.Scheme != "https" {
		t.warnOnce.Do(func() {
			log.Printf("WARNING: sending controller credentials over unencrypted HTTP to %s", req.URL.Host)
		})
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.SetBasicAuth(t.creds.Username, t.creds.Password)
	return t.base.RoundTrip(reqCopy)
}
