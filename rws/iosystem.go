package rws

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Signal reads the current state of one I/O signal. The path addresses the
// signal within the I/O system as "{network}/{device}/{signal}", e.g.
// "Local/DRV_1/DO1".
func (c *Client) Signal(ctx context.Context, path string) (*Signal, error) {
	body, err := c.get(ctx, "/rw/iosystem/signals/"+path)
	if err != nil {
		return nil, fmt.Errorf("get signal %s: %w", path, err)
	}
	r, err := parseResource(body, "ios-signal")
	if err != nil {
		return nil, fmt.Errorf("get signal %s: %w", path, err)
	}
	return signalFromResource(r, path), nil
}

// SetSignal writes the logical value of an I/O signal. Digital signals take
// 0 or 1. The signal must be write-enabled (outputs, or inputs with access
// level ALL); the controller rejects everything else.
func (c *Client) SetSignal(ctx context.Context, path string, value float64) error {
	form := url.Values{}
	form.Set("lvalue", strconv.FormatFloat(value, 'f', -1, 64))

	if _, err := c.postForm(ctx, "/rw/iosystem/signals/"+path+"/set-value", form); err != nil {
		return fmt.Errorf("set signal %s: %w", path, err)
	}
	c.debug("set signal %s = %v", path, value)
	return nil
}

// Signals lists every signal visible in the I/O system.
func (c *Client) Signals(ctx context.Context) ([]Signal, error) {
	body, err := c.get(ctx, "/rw/iosystem/signals")
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	resources, err := parseResources(body)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}

	var signals []Signal
	for i := range resources {
		if resources[i].Class != "ios-signal" {
			continue
		}
		signals = append(signals, *signalFromResource(&resources[i], ""))
	}
	return signals, nil
}

func signalFromResource(r *Resource, path string) *Signal {
	s := &Signal{
		Name:    r.Field("name"),
		Type:    SignalType(r.Field("type")),
		Quality: r.Field("lstate"),
		Path:    path,
	}
	if s.Name == "" {
		s.Name = r.Title
	}
	if v, err := r.Float("lvalue"); err == nil {
		s.Value = v
	}
	if s.Path == "" && r.Self != "" {
		s.Path = strings.TrimPrefix(strings.TrimSuffix(r.Self, ";state"), "/rw/iosystem/signals/")
	}
	return s
}
