package rws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/s3904419/go-rws/rws/transport"
)

const signalEventXHTML = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<body>
<div class="state">
<ul>
<li class="ios-signal-ev" title="DO_GRIPPER">
<a href="/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" rel="self"></a>
<span class="lvalue">1</span>
</li>
</ul>
</div>
</body>
</html>`

func TestSignalResource(t *testing.T) {
	r := SignalResource("Local/DRV_1/DO_GRIPPER", PriorityHigh)
	if r.Path != "/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" {
		t.Errorf("Path = %q", r.Path)
	}
	if r.Priority != PriorityHigh {
		t.Errorf("Priority = %d", r.Priority)
	}
}

func TestSubscribeForm(t *testing.T) {
	var gotForm map[string][]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subscription" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = r.ParseForm()
		gotForm = r.PostForm
		w.Header().Set("Location", "/poll/17")
		w.WriteHeader(http.StatusCreated)
	}))

	sub, err := c.Subscribe(context.Background(), []SubscriptionResource{
		SignalResource("Local/DRV_1/DO_GRIPPER", PriorityHigh),
		SignalResource("Local/DRV_1/DI_READY", PriorityMedium),
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if got := gotForm["resources"]; len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("resources = %v", got)
	}
	if gotForm["1"][0] != "/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" {
		t.Errorf("resource 1 = %v", gotForm["1"])
	}
	if gotForm["1-p"][0] != "2" || gotForm["2-p"][0] != "1" {
		t.Errorf("priorities = %v, %v", gotForm["1-p"], gotForm["2-p"])
	}

	if sub.Group() != "17" {
		t.Errorf("Group() = %q", sub.Group())
	}
	if !strings.HasPrefix(sub.pollURL, "ws://") || !strings.HasSuffix(sub.pollURL, "/poll/17") {
		t.Errorf("pollURL = %q", sub.pollURL)
	}
}

func TestSubscribeRequiresResources(t *testing.T) {
	c := NewClient("http://unused", transport.NewHTTPTransport())
	if _, err := c.Subscribe(context.Background(), nil); err == nil {
		t.Error("Subscribe with no resources should fail")
	}
}

func TestSubscribeMissingLocation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	if _, err := c.Subscribe(context.Background(), []SubscriptionResource{SignalResource("a/b/c", PriorityLow)}); err == nil {
		t.Error("expected error for missing Location header")
	}
}

func TestSubscriptionClose(t *testing.T) {
	var deleted string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = r.URL.Path
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	sub := &Subscription{client: c, group: "17"}
	if err := sub.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if deleted != "/subscription/17" {
		t.Errorf("deleted %q", deleted)
	}
}

func TestSubscriptionEvents(t *testing.T) {
	upgrader := websocket.Upgrader{Subprotocols: []string{wsSubprotocol}}
	mux := http.NewServeMux()
	mux.HandleFunc("/subscription", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/poll/9")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/poll/9", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Sec-Websocket-Protocol"); !strings.Contains(got, wsSubprotocol) {
			t.Errorf("subprotocol = %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(signalEventXHTML)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := NewClient(srv.URL, transport.NewHTTPTransport())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := c.Subscribe(ctx, []SubscriptionResource{SignalResource("Local/DRV_1/DO_GRIPPER", PriorityHigh)})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	events, errs := sub.Events(ctx)
	select {
	case ev := <-events:
		if ev.Class != "ios-signal-ev" {
			t.Errorf("Class = %q", ev.Class)
		}
		if ev.Value != "1" {
			t.Errorf("Value = %q", ev.Value)
		}
		if ev.Resource != "/rw/iosystem/signals/Local/DRV_1/DO_GRIPPER;state" {
			t.Errorf("Resource = %q", ev.Resource)
		}
	case err := <-errs:
		t.Fatalf("subscription error: %v", err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestDecodeEvents(t *testing.T) {
	events, err := decodeEvents([]byte(signalEventXHTML))
	if err != nil {
		t.Fatalf("decodeEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Value != "1" || events[0].Class != "ios-signal-ev" {
		t.Errorf("event = %+v", events[0])
	}

	// Non-event list items are ignored.
	events, err = decodeEvents([]byte(signalListXHTML))
	if err != nil {
		t.Fatalf("decodeEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events from a plain list", len(events))
	}
}

func TestResolvePoll(t *testing.T) {
	tests := []struct {
		base     string
		location string
		wantURL  string
		wantGrp  string
	}{
		{"http://ctrl:80", "/poll/3", "ws://ctrl:80/poll/3", "3"},
		{"https://ctrl", "/poll/42", "wss://ctrl/poll/42", "42"},
		{"http://ctrl", "http://ctrl/poll/7", "ws://ctrl/poll/7", "7"},
	}
	for _, tt := range tests {
		c := NewClient(tt.base, transport.NewHTTPTransport())
		gotURL, gotGrp, err := c.resolvePoll(tt.location)
		if err != nil {
			t.Errorf("resolvePoll(%q, %q) failed: %v", tt.base, tt.location, err)
			continue
		}
		if gotURL != tt.wantURL || gotGrp != tt.wantGrp {
			t.Errorf("resolvePoll(%q, %q) = %q, %q; want %q, %q",
				tt.base, tt.location, gotURL, gotGrp, tt.wantURL, tt.wantGrp)
		}
	}
}
