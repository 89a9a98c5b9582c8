package rws

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ControllerState reads the panel controller state (motors on/off,
// guard stop, ...).
func (c *Client) ControllerState(ctx context.Context) (ControllerState, error) {
	body, err := c.get(ctx, "/rw/panel/ctrl-state")
	if err != nil {
		return "", fmt.Errorf("get controller state: %w", err)
	}
	r, err := parseResource(body, "pnl-ctrlstate")
	if err != nil {
		return "", fmt.Errorf("get controller state: %w", err)
	}
	return ControllerState(r.Field("ctrlstate")), nil
}

// SetControllerState requests a controller state transition, in practice
// CtrlMotorsOn or CtrlMotorsOff. Turning motors on requires AUTO mode.
func (c *Client) SetControllerState(ctx context.Context, state ControllerState) error {
	form := url.Values{}
	form.Set("ctrl-state", string(state))

	// The state travels both as query and form parameter; RobotWare versions
	// differ in which one they read.
	if _, err := c.postForm(ctx, "/rw/panel/ctrl-state?ctrl-state="+string(state), form); err != nil {
		return fmt.Errorf("set controller state %s: %w", state, err)
	}
	c.debug("controller state set to %s", state)
	return nil
}

// OperationMode reads the panel operation mode (AUTO, MANR, MANF).
func (c *Client) OperationMode(ctx context.Context) (OperationMode, error) {
	body, err := c.get(ctx, "/rw/panel/opmode")
	if err != nil {
		return "", fmt.Errorf("get operation mode: %w", err)
	}
	r, err := parseResource(body, "pnl-opmode")
	if err != nil {
		return "", fmt.Errorf("get operation mode: %w", err)
	}
	return OperationMode(r.Field("opmode")), nil
}

// SpeedRatio reads the global speed ratio in percent.
func (c *Client) SpeedRatio(ctx context.Context) (int, error) {
	body, err := c.get(ctx, "/rw/panel/speedratio")
	if err != nil {
		return 0, fmt.Errorf("get speed ratio: %w", err)
	}
	r, err := parseResource(body, "pnl-speedratio")
	if err != nil {
		return 0, fmt.Errorf("get speed ratio: %w", err)
	}
	ratio, err := r.Int("speedratio")
	if err != nil {
		return 0, fmt.Errorf("get speed ratio: %w", err)
	}
	return ratio, nil
}

// SetSpeedRatio sets the global speed ratio. ratio is a percentage in
// (0, 100].
func (c *Client) SetSpeedRatio(ctx context.Context, ratio int) error {
	if ratio <= 0 || ratio > 100 {
		return fmt.Errorf("rws: speed ratio %d out of range (0, 100]", ratio)
	}

	form := url.Values{}
	form.Set("speed-ratio", strconv.Itoa(ratio))

	if _, err := c.postForm(ctx, "/rw/panel/speedratio?mastership=implicit", form); err != nil {
		return fmt.Errorf("set speed ratio: %w", err)
	}
	c.debug("speed ratio set to %d%%", ratio)
	return nil
}
