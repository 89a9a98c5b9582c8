package robot

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultExternalAxes is the RAPID "axis not used" marker for all six
// external axes.
var DefaultExternalAxes = [6]float64{9e9, 9e9, 9e9, 9e9, 9e9, 9e9}

// RobTarget is a RAPID robtarget value: position in mm, orientation as a
// quaternion, axis configuration, and external axes.
type RobTarget struct {
	Trans [3]float64
	Rot   [4]float64
	Conf  [4]float64
	ExtAx [6]float64
}

// String renders the robtarget in RAPID literal syntax, e.g.
// "[[600,0,800],[1,0,0,0],[-1,0,0,0],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]".
func (t RobTarget) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	writeFloatGroup(&sb, t.Trans[:])
	sb.WriteByte(',')
	writeFloatGroup(&sb, t.Rot[:])
	sb.WriteByte(',')
	writeFloatGroup(&sb, t.Conf[:])
	sb.WriteByte(',')
	writeFloatGroup(&sb, t.ExtAx[:])
	sb.WriteByte(']')
	return sb.String()
}

func writeFloatGroup(sb *strings.Builder, values []float64) {
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatRapidFloat(v))
	}
	sb.WriteByte(']')
}

// formatRapidFloat renders a float the way RAPID literals spell them.
func formatRapidFloat(v float64) string {
	return strconv.FormatFloat(v, 'G', -1, 64)
}

// ParseRobTarget parses a RAPID robtarget literal as returned by the
// controller for robtarget variables.
func ParseRobTarget(s string) (*RobTarget, error) {
	groups, err := parseFloatGroups(s)
	if err != nil {
		return nil, fmt.Errorf("robot: parse robtarget: %w", err)
	}
	if len(groups) != 4 {
		return nil, fmt.Errorf("robot: parse robtarget: want 4 groups, got %d", len(groups))
	}

	var t RobTarget
	for _, g := range []struct {
		dst []float64
		src []float64
	}{
		{t.Trans[:], groups[0]},
		{t.Rot[:], groups[1]},
		{t.Conf[:], groups[2]},
		{t.ExtAx[:], groups[3]},
	} {
		if len(g.src) != len(g.dst) {
			return nil, fmt.Errorf("robot: parse robtarget: group length %d, want %d", len(g.src), len(g.dst))
		}
		copy(g.dst, g.src)
	}
	return &t, nil
}

// parseFloatGroups parses "[[a,b,...],[c,...],...]" into its numeric groups.
func parseFloatGroups(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("not a bracketed list: %q", s)
	}
	s = s[1 : len(s)-1]

	var groups [][]float64
	for len(s) > 0 {
		s = strings.TrimLeft(s, ", \t")
		if len(s) == 0 {
			break
		}
		if s[0] != '[' {
			return nil, fmt.Errorf("expected group at %q", s)
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated group at %q", s)
		}

		var group []float64
		for _, field := range strings.Split(s[1:end], ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q: %w", field, err)
			}
			group = append(group, v)
		}
		groups = append(groups, group)
		s = s[end+1:]
	}
	return groups, nil
}

// QuaternionFromZDegrees converts a rotation about the z-axis in degrees to
// the quaternion of a tool pointing downwards, the usual pick orientation.
func QuaternionFromZDegrees(degrees float64) [4]float64 {
	roll := math.Pi
	pitch := 0.0
	yaw := degrees * math.Pi / 180

	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)

	return [4]float64{
		cr*cp*cy + sr*sp*sy,
		sr*cp*cy - cr*sp*sy,
		cr*sp*cy + sr*cp*sy,
		cr*cp*sy - sr*sp*cy,
	}
}

// RobTargetVariable reads and parses a robtarget RAPID variable from the
// configured task.
func (r *Robot) RobTargetVariable(ctx context.Context, name string) (*RobTarget, error) {
	value, err := r.Variable(ctx, name)
	if err != nil {
		return nil, err
	}
	return ParseRobTarget(value)
}

// SetRobTargetVariable writes a robtarget RAPID variable.
func (r *Robot) SetRobTargetVariable(ctx context.Context, name string, t RobTarget) error {
	return r.SetVariable(ctx, name, t.String())
}

// SetRobTargetTranslation updates only the position of a robtarget variable.
// A target with an all-zero orientation gets the downward-pointing default
// [0,1,0,0] so the result stays reachable.
func (r *Robot) SetRobTargetTranslation(ctx context.Context, name string, trans [3]float64) error {
	t, err := r.RobTargetVariable(ctx, name)
	if err != nil {
		return err
	}
	t.Trans = trans
	if t.Rot == ([4]float64{}) {
		t.Rot = [4]float64{0, 1, 0, 0}
	}
	t.Conf = [4]float64{-1, 0, 0, 0}
	t.ExtAx = DefaultExternalAxes
	return r.SetRobTargetVariable(ctx, name, *t)
}

// SetRobTargetRotation updates only the orientation of a robtarget variable.
func (r *Robot) SetRobTargetRotation(ctx context.Context, name string, quaternion [4]float64) error {
	t, err := r.RobTargetVariable(ctx, name)
	if err != nil {
		return err
	}
	t.Rot = quaternion
	t.Conf = [4]float64{-1, 0, 0, 0}
	t.ExtAx = DefaultExternalAxes
	return r.SetRobTargetVariable(ctx, name, *t)
}

// SetRobTargetRotationZ updates the orientation of a robtarget variable to a
// rotation about the z-axis, given in degrees.
func (r *Robot) SetRobTargetRotationZ(ctx context.Context, name string, degrees float64) error {
	return r.SetRobTargetRotation(ctx, name, QuaternionFromZDegrees(degrees))
}

// SetArray writes a RAPID num array variable.
func (r *Robot) SetArray(ctx context.Context, name string, values []float64) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatRapidFloat(v)
	}
	return r.SetVariable(ctx, name, "["+strings.Join(parts, ",")+"]")
}

// zoneSteps are the predefined RAPID zone sizes.
var zoneSteps = []float64{10, 20, 30, 40, 50, 60, 80, 100, 150, 200}

// ZoneDataValue renders the RAPID zonedata literal for a named zone: "fine"
// or one of the predefined sizes 0, 1, 5, 10, 20, 30, 40, 50, 60, 80, 100,
// 150, 200.
func ZoneDataValue(zone string) (string, error) {
	if zone == "fine" {
		return "[TRUE,0,0,0,0,0,0]", nil
	}
	z, err := strconv.ParseFloat(zone, 64)
	if err != nil {
		return "", fmt.Errorf("robot: invalid zonedata %q", zone)
	}

	switch z {
	case 0:
		return zoneLiteral(0.3, 0.3, 0.03), nil
	case 1:
		return zoneLiteral(1, 1, 0.1), nil
	case 5:
		return zoneLiteral(5, 8, 0.8), nil
	}
	for _, step := range zoneSteps {
		if z == step {
			return zoneLiteral(z, z*1.5, z*0.15), nil
		}
	}
	return "", fmt.Errorf("robot: invalid zonedata %q", zone)
}

func zoneLiteral(pzone, zone, rot float64) string {
	return fmt.Sprintf("[FALSE,%s,%s,%s,%s,%s,%s]",
		formatRapidFloat(pzone),
		formatRapidFloat(zone), formatRapidFloat(zone),
		formatRapidFloat(rot),
		formatRapidFloat(zone), formatRapidFloat(rot))
}

// SetZoneData writes a zonedata RAPID variable from a named zone.
func (r *Robot) SetZoneData(ctx context.Context, name, zone string) error {
	value, err := ZoneDataValue(zone)
	if err != nil {
		return err
	}
	return r.SetVariable(ctx, name, value)
}

// SpeedDataValue renders the RAPID speeddata literal for a TCP speed in
// mm/s, with the standard defaults for the remaining components.
func SpeedDataValue(tcpSpeed float64) string {
	return fmt.Sprintf("[%s,500,5000,1000]", formatRapidFloat(tcpSpeed))
}

// SetSpeedData writes a speeddata RAPID variable from a TCP speed in mm/s.
func (r *Robot) SetSpeedData(ctx context.Context, name string, tcpSpeed float64) error {
	return r.SetVariable(ctx, name, SpeedDataValue(tcpSpeed))
}
