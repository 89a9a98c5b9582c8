package rws

import (
	"context"
	"fmt"
	"net/url"
)

// RequestMastership takes explicit mastership of the controller, giving the
// session exclusive write access until released. The controller refuses the
// request while another client holds mastership.
func (c *Client) RequestMastership(ctx context.Context) error {
	if _, err := c.postForm(ctx, "/rw/mastership/request", url.Values{}); err != nil {
		return fmt.Errorf("request mastership: %w", err)
	}
	c.debug("mastership requested")
	return nil
}

// ReleaseMastership releases explicit mastership.
func (c *Client) ReleaseMastership(ctx context.Context) error {
	if _, err := c.postForm(ctx, "/rw/mastership/release", url.Values{}); err != nil {
		return fmt.Errorf("release mastership: %w", err)
	}
	c.debug("mastership released")
	return nil
}

// RequestRMMP requests manual mode privileges (RMMP) with the given
// privilege ("modify" or "exec"). In manual mode the FlexPendant operator
// must confirm the grant before writes are accepted.
func (c *Client) RequestRMMP(ctx context.Context, privilege string) error {
	if privilege == "" {
		privilege = "modify"
	}

	form := url.Values{}
	form.Set("privilege", privilege)

	if _, err := c.postForm(ctx, "/users/rmmp", form); err != nil {
		return fmt.Errorf("request rmmp: %w", err)
	}
	c.debug("rmmp requested (privilege=%s)", privilege)
	return nil
}

// CancelRMMP cancels a pending or granted manual mode privilege request.
func (c *Client) CancelRMMP(ctx context.Context) error {
	if _, err := c.postForm(ctx, "/users/rmmp/cancel", url.Values{}); err != nil {
		return fmt.Errorf("cancel rmmp: %w", err)
	}
	c.debug("rmmp cancelled")
	return nil
}
