package rws

import (
	"context"
	"fmt"
	"net/url"
)

// JointTarget reads the current joint positions of a mechanical unit, in
// degrees.
func (c *Client) JointTarget(ctx context.Context, unit string) (*JointTarget, error) {
	body, err := c.get(ctx, "/rw/motionsystem/mechunits/"+unit+"/jointtarget")
	if err != nil {
		return nil, fmt.Errorf("get jointtarget %s: %w", unit, err)
	}
	r, err := parseResource(body, "ms-jointtarget")
	if err != nil {
		return nil, fmt.Errorf("get jointtarget %s: %w", unit, err)
	}

	var jt JointTarget
	axes := [6]string{"rax_1", "rax_2", "rax_3", "rax_4", "rax_5", "rax_6"}
	for i, name := range axes {
		v, err := r.Float(name)
		if err != nil {
			return nil, fmt.Errorf("get jointtarget %s: %w", unit, err)
		}
		jt.Robax[i] = v
	}
	return &jt, nil
}

// RobTarget reads the cartesian position of a mechanical unit's TCP for the
// given tool and work object, expressed in the given coordinate frame
// ("Base", "World", "Wobj", "Tool").
func (c *Client) RobTarget(ctx context.Context, unit, tool, wobj, frame string) (*RobTargetState, error) {
	query := url.Values{}
	query.Set("tool", tool)
	query.Set("wobj", wobj)
	query.Set("coordinate", frame)

	body, err := c.get(ctx, "/rw/motionsystem/mechunits/"+unit+"/robtarget?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("get robtarget %s: %w", unit, err)
	}
	r, err := parseResource(body, "ms-robtargets")
	if err != nil {
		return nil, fmt.Errorf("get robtarget %s: %w", unit, err)
	}

	var rt RobTargetState
	fields := []struct {
		name string
		dst  *float64
	}{
		{"x", &rt.Pos[0]}, {"y", &rt.Pos[1]}, {"z", &rt.Pos[2]},
		{"q1", &rt.Orient[0]}, {"q2", &rt.Orient[1]}, {"q3", &rt.Orient[2]}, {"q4", &rt.Orient[3]},
		{"cf1", &rt.Conf[0]}, {"cf4", &rt.Conf[1]}, {"cf6", &rt.Conf[2]}, {"cfx", &rt.Conf[3]},
	}
	for _, f := range fields {
		v, err := r.Float(f.name)
		if err != nil {
			return nil, fmt.Errorf("get robtarget %s: %w", unit, err)
		}
		*f.dst = v
	}
	return &rt, nil
}

// SetLeadThrough activates or deactivates lead-through mode on a mechanical
// unit, letting an operator move the arm by hand.
func (c *Client) SetLeadThrough(ctx context.Context, unit string, active bool) error {
	status := "inactive"
	if active {
		status = "active"
	}

	form := url.Values{}
	form.Set("status", status)

	if _, err := c.postForm(ctx, "/rw/motionsystem/mechunits/"+unit+"/lead-through", form); err != nil {
		return fmt.Errorf("set lead-through %s on %s: %w", status, unit, err)
	}
	c.debug("lead-through %s on %s", status, unit)
	return nil
}
