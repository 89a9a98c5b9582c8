// Package gorws provides a client for ABB Robot Web Services (RWS), the
// HTTP/REST API of IRC5 and OmniCore robot controllers, together with a
// command-line console for issuing commands to a robot by hand.
//
// # Architecture
//
// The library is organized into layers:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  robot/          High-level convenience API               │
//	├──────────────────────────────────────────────────────────┤
//	│  rws/            RWS endpoint methods + response parsing  │
//	├──────────────────────────────────────────────────────────┤
//	│  rws/auth        Basic (RWS 2.x) and Digest (RWS 1.x)     │
//	├──────────────────────────────────────────────────────────┤
//	│  rws/transport   HTTP/TLS transport, session cookies      │
//	└──────────────────────────────────────────────────────────┘
//
// Every operation is a single synchronous HTTP request against a fixed RWS
// endpoint; the controller enforces authentication, mastership and operation
// mode, and any rejection surfaces as an error.
//
// # Quick Start
//
//	cfg := robot.DefaultConfig()
//	cfg.Username = "Default User"
//	cfg.Password = "robotics"
//	r, err := robot.New("192.168.125.1", cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close(ctx)
//
//	value, err := r.Variable(ctx, "x_pos")
package gorws
