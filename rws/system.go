package rws

import (
	"context"
	"fmt"
)

// System reads the controller system resource: system name, identifier and
// RobotWare version.
func (c *Client) System(ctx context.Context) (*SystemInfo, error) {
	body, err := c.get(ctx, "/rw/system")
	if err != nil {
		return nil, fmt.Errorf("get system: %w", err)
	}
	r, err := parseResource(body, "sys-system")
	if err != nil {
		return nil, fmt.Errorf("get system: %w", err)
	}
	return &SystemInfo{
		Name:             r.Field("name"),
		SystemID:         r.Field("sysid"),
		RobotWareVersion: r.Field("rwversion"),
	}, nil
}
