// Package auth provides authentication handlers for Robot Web Services
// connections.
//
// # Supported Authentication Methods
//
//   - Basic: HTTP Basic authentication, used by RobotWare 7 controllers
//     (RWS 2.x). Use only over TLS.
//   - Digest: HTTP Digest authentication (RFC 7616), used by RobotWare 6
//     controllers (RWS 1.x).
//
// Controllers ship with the well-known local account "Default User" /
// "robotics"; production systems define their own UAS users.
//
// # Usage
//
//	a := auth.NewDigestAuth(auth.Credentials{
//	    Username: "Default User",
//	    Password: "robotics",
//	})
//	httpClient.Transport = a.Transport(httpClient.Transport)
package auth

import (
	"errors"
	"net/http"
)

// Authenticator defines the interface for authentication handlers.
type Authenticator interface {
	// Transport wraps an http.RoundTripper with authentication.
	Transport(base http.RoundTripper) http.RoundTripper

	// Name returns the authentication scheme name.
	Name() string
}

// Credentials holds authentication credentials for a controller UAS user.
type Credentials struct {
	// Username is the user name for authentication.
	Username string

	// Password is the password for authentication.
	Password string
}

// Validate checks that required credential fields are populated.
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
