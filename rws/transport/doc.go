// Package transport provides HTTP/TLS transport for Robot Web Services.
//
// The transport layer handles:
//   - HTTP/HTTPS connections to the controller web server
//   - TLS configuration (controllers commonly use self-signed certificates)
//   - The controller session cookies (-http-session-, ABBCX)
//   - Request/response handling
package transport
