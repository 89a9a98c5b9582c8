package rws

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-success response from the controller. The controller,
// not the client, enforces the API invariants (authentication, mastership,
// operation mode), so an APIError is the normal way a rejected operation
// surfaces.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Code is the controller error code from the response payload, when the
	// controller supplied one (e.g. -1073445848).
	Code int

	// Message is the controller error description, when present.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("HTTP %d %s", e.Status, http.StatusText(e.Status)))
	if e.Code != 0 {
		parts = append(parts, "code="+strconv.Itoa(e.Code))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	return "rws: " + strings.Join(parts, ": ")
}

// IsMastershipRequired reports whether the controller rejected a write
// because the client does not hold mastership (or lacks the grant).
func (e *APIError) IsMastershipRequired() bool {
	return e.Status == http.StatusForbidden
}

// IsNotFound reports whether the addressed resource does not exist on the
// controller (unknown signal, RAPID symbol, file, ...).
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsBadRequest reports whether the controller rejected the request contents,
// typically a malformed RAPID value or an illegal state transition.
func (e *APIError) IsBadRequest() bool {
	return e.Status == http.StatusBadRequest
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// newAPIError builds an APIError from a response, extracting the controller
// error code and description from the XHTML status payload when present.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if len(body) == 0 {
		return e
	}
	fields := parseSpanMap(body)
	if raw, ok := fields["code"]; ok {
		if code, err := strconv.Atoi(raw); err == nil {
			e.Code = code
		}
	}
	if msg, ok := fields["msg"]; ok {
		e.Message = msg
	}
	return e
}
