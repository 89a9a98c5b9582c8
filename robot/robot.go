// Package robot provides a high-level API for controlling an ABB robot over
// Robot Web Services.
//
// Robot wraps the protocol-level rws.Client with the composite operations a
// robot application actually performs: mastership-wrapped writes, start/stop
// sequences, and RAPID value formatting. Each composite is still a short
// sequence of independent synchronous requests; the controller remains the
// source of truth for every invariant.
package robot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/PurpleSec/logx"

	"github.com/s3904419/go-rws/rws"
	"github.com/s3904419/go-rws/rws/auth"
	"github.com/s3904419/go-rws/rws/transport"
)

// AuthType specifies the authentication mechanism.
type AuthType int

const (
	// AuthBasic uses HTTP Basic authentication (RobotWare 7, RWS 2.x).
	AuthBasic AuthType = iota
	// AuthDigest uses HTTP Digest authentication (RobotWare 6, RWS 1.x).
	AuthDigest
)

// Config holds configuration for a Robot.
type Config struct {
	// Port is the controller web server port (default: 80 for HTTP, 443 for
	// HTTPS).
	Port int

	// UseTLS enables HTTPS transport.
	UseTLS bool

	// InsecureSkipVerify skips TLS certificate verification. Controllers
	// ship with self-signed certificates, so this is commonly needed.
	InsecureSkipVerify bool

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// AuthType specifies the authentication type (Basic or Digest).
	AuthType AuthType

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Task is the RAPID task addressed by variable operations
	// (default: T_ROB1).
	Task string

	// MechUnit is the mechanical unit addressed by motion queries
	// (default: ROB_1).
	MechUnit string

	// Log receives operation tracing. Nil disables logging.
	Log logx.Log
}

// DefaultConfig returns a Config with the vendor defaults: the well-known
// "Default User" account, the T_ROB1 task and the ROB_1 mechanical unit.
func DefaultConfig() Config {
	return Config{
		Timeout:  30 * time.Second,
		AuthType: AuthBasic,
		Username: "Default User",
		Password: "robotics",
		Task:     "T_ROB1",
		MechUnit: "ROB_1",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	creds := auth.Credentials{Username: c.Username, Password: c.Password}
	if err := creds.Validate(); err != nil {
		return err
	}
	if c.Task == "" {
		return errors.New("task is required")
	}
	if c.MechUnit == "" {
		return errors.New("mechanical unit is required")
	}
	return nil
}

// Robot is a high-level client for one robot controller.
type Robot struct {
	mu sync.Mutex

	hostname string
	config   Config
	endpoint string

	transport *transport.HTTPTransport
	rws       *rws.Client
	system    *rws.SystemInfo
	version   *semver.Version
	connected bool
	closed    bool
}

// New creates a new Robot for the controller at hostname.
func New(hostname string, cfg Config) (*Robot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	scheme := "http"
	port := cfg.Port
	if cfg.UseTLS {
		scheme = "https"
		if port == 0 {
			port = 443
		}
	} else if port == 0 {
		port = 80
	}
	endpoint := fmt.Sprintf("%s://%s:%d", scheme, hostname, port)

	tr := transport.NewHTTPTransport(
		transport.WithTimeout(cfg.Timeout),
		transport.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		transport.WithLogger(cfg.Log),
	)

	creds := auth.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	}

	var authenticator auth.Authenticator
	switch cfg.AuthType {
	case AuthDigest:
		authenticator = auth.NewDigestAuth(creds)
	default:
		authenticator = auth.NewBasicAuth(creds)
	}

	tr.Client().Transport = authenticator.Transport(tr.Client().Transport)

	return &Robot{
		hostname:  hostname,
		config:    cfg,
		endpoint:  endpoint,
		transport: tr,
		rws:       rws.NewClient(endpoint, tr, rws.WithLogger(cfg.Log)),
	}, nil
}

// Endpoint returns the controller base URL.
func (r *Robot) Endpoint() string {
	return r.endpoint
}

// Client returns the protocol-level RWS client for operations not wrapped
// here.
func (r *Robot) Client() *rws.Client {
	return r.rws
}

// Connect establishes the controller session and reads the system identity.
func (r *Robot) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New("robot is closed")
	}
	if r.connected {
		return nil
	}

	if err := r.rws.Login(ctx); err != nil {
		return err
	}

	sys, err := r.rws.System(ctx)
	if err != nil {
		return fmt.Errorf("read system identity: %w", err)
	}
	r.system = sys

	// RobotWare versions are loose semver ("6.08.1034"); keep going without
	// a parsed version if the controller reports something else.
	if v, err := semver.NewVersion(sys.RobotWareVersion); err == nil {
		r.version = v
	}

	r.connected = true
	return nil
}

// Close logs out of the controller session.
func (r *Robot) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.connected {
		if err := r.rws.Logout(ctx); err != nil {
			return err
		}
	}
	return nil
}

// IsConnected returns true if Connect succeeded and Close has not been
// called.
func (r *Robot) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected && !r.closed
}

// System returns the system identity read during Connect, or nil before
// Connect.
func (r *Robot) System() *rws.SystemInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.system
}

// RobotWareVersion returns the parsed RobotWare version, or nil when the
// controller reported a version semver could not parse (or before Connect).
func (r *Robot) RobotWareVersion() *semver.Version {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}
