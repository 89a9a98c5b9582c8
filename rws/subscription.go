package rws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
)

// Subscription priorities. High priority is only valid for I/O signal
// resources.
const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

// wsSubprotocol is the subprotocol the controller requires on the
// subscription WebSocket.
const wsSubprotocol = "robapi2_subscription"

// SubscriptionResource names one controller resource to watch.
type SubscriptionResource struct {
	// Path is the resource to watch, including its state suffix where the
	// API requires one, e.g. "/rw/iosystem/signals/Local/DRV_1/DO1;state".
	Path string

	// Priority is the update priority (PriorityLow/Medium/High).
	Priority int
}

// SignalResource builds the subscription resource for an I/O signal path.
func SignalResource(signalPath string, priority int) SubscriptionResource {
	return SubscriptionResource{
		Path:     "/rw/iosystem/signals/" + signalPath + ";state",
		Priority: priority,
	}
}

// Event is one change notification from a subscription group.
type Event struct {
	// Resource is the self link of the resource that changed.
	Resource string

	// Class is the event class, e.g. "ios-signal-ev".
	Class string

	// Value is the new value carried by the event.
	Value string
}

// Subscription is a server-side subscription group plus the WebSocket the
// controller pushes its change events over.
type Subscription struct {
	client  *Client
	group   string
	pollURL string
}

// Subscribe creates a subscription group for the given resources. The
// controller answers with the group's poll location; events are then
// received over a WebSocket via Events. Close releases the group.
//
// The group is bound to the session cookies, so the client must have an
// established session (Login) before subscribing.
func (c *Client) Subscribe(ctx context.Context, resources []SubscriptionResource) (*Subscription, error) {
	if len(resources) == 0 {
		return nil, errors.New("rws: subscribe requires at least one resource")
	}

	form := url.Values{}
	for i, r := range resources {
		n := strconv.Itoa(i + 1)
		form.Add("resources", n)
		form.Set(n, r.Path)
		form.Set(n+"-p", strconv.Itoa(r.Priority))
	}

	res, err := c.postForm(ctx, "/subscription", form, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	location := res.Header.Get("Location")
	if location == "" {
		return nil, errors.New("rws: subscription response missing Location header")
	}

	pollURL, group, err := c.resolvePoll(location)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	c.debug("subscribed group %s (%d resources)", group, len(resources))
	return &Subscription{
		client:  c,
		group:   group,
		pollURL: pollURL,
	}, nil
}

// Group returns the subscription group identifier.
func (s *Subscription) Group() string {
	return s.group
}

// Events dials the subscription WebSocket and streams change events until
// ctx is cancelled or the connection fails. The event channel is closed when
// the stream ends; a terminal failure, if any, is delivered on the error
// channel first. There is no automatic reconnection.
func (s *Subscription) Events(ctx context.Context) (<-chan Event, <-chan error) {
	events := make(chan Event, 16)
	errs := make(chan error, 1)

	go s.readLoop(ctx, events, errs)

	return events, errs
}

func (s *Subscription) readLoop(ctx context.Context, events chan<- Event, errs chan<- error) {
	defer close(events)
	defer close(errs)

	dialer := websocket.Dialer{
		Subprotocols:    []string{wsSubprotocol},
		Jar:             s.client.transport.Jar(),
		TLSClientConfig: s.client.transport.TLSConfig(),
	}

	conn, resp, err := dialer.DialContext(ctx, s.pollURL, nil)
	if err != nil {
		if resp != nil {
			errs <- fmt.Errorf("rws: dial subscription socket: %w (HTTP %d)", err, resp.StatusCode)
		} else {
			errs <- fmt.Errorf("rws: dial subscription socket: %w", err)
		}
		return
	}

	// The websocket package has no context-aware reads; unblock ReadMessage
	// by closing the connection when ctx ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
			_ = conn.Close()
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				errs <- fmt.Errorf("rws: subscription socket closed: %w", err)
			}
			return
		}

		batch, err := decodeEvents(payload)
		if err != nil {
			s.client.debug("dropping undecodable event payload: %v", err)
			continue
		}
		for _, ev := range batch {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close deletes the subscription group on the controller.
func (s *Subscription) Close(ctx context.Context) error {
	if err := s.client.delete(ctx, "/subscription/"+s.group); err != nil {
		return fmt.Errorf("unsubscribe group %s: %w", s.group, err)
	}
	s.client.debug("unsubscribed group %s", s.group)
	return nil
}

// decodeEvents parses an XHTML event payload into events, one per "-ev"
// list item.
func decodeEvents(payload []byte) ([]Event, error) {
	resources, err := parseResources(payload)
	if err != nil {
		return nil, err
	}

	var events []Event
	for i := range resources {
		r := &resources[i]
		if !strings.HasSuffix(r.Class, "-ev") {
			continue
		}
		events = append(events, Event{
			Resource: r.Self,
			Class:    r.Class,
			Value:    eventValue(r),
		})
	}
	return events, nil
}

// eventValue picks the value field for an event; which span carries it
// depends on the resource type.
func eventValue(r *Resource) string {
	for _, key := range []string{"lvalue", "ctrlexecstate", "ctrlstate", "opmode", "speedratio"} {
		if v, ok := r.Fields[key]; ok {
			return v
		}
	}
	for _, v := range r.Fields {
		return v
	}
	return ""
}

// resolvePoll turns the subscription Location header into the WebSocket URL
// and group id.
func (c *Client) resolvePoll(location string) (pollURL, group string, err error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", "", err
	}
	loc, err := base.Parse(location)
	if err != nil {
		return "", "", err
	}

	switch loc.Scheme {
	case "http":
		loc.Scheme = "ws"
	case "https":
		loc.Scheme = "wss"
	}

	group = loc.Path[strings.LastIndexByte(loc.Path, '/')+1:]
	if group == "" {
		return "", "", fmt.Errorf("rws: malformed subscription location %q", location)
	}
	return loc.String(), group, nil
}
