package robot

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobTargetString(t *testing.T) {
	rt := RobTarget{
		Trans: [3]float64{600, 0, 800},
		Rot:   [4]float64{1, 0, 0, 0},
		Conf:  [4]float64{-1, 0, 0, 0},
		ExtAx: DefaultExternalAxes,
	}
	want := "[[600,0,800],[1,0,0,0],[-1,0,0,0],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]"
	assert.Equal(t, want, rt.String())
}

func TestParseRobTargetRoundTrip(t *testing.T) {
	in := RobTarget{
		Trans: [3]float64{100.5, -200, 300},
		Rot:   [4]float64{0, 0.7071, 0.7071, 0},
		Conf:  [4]float64{-1, 0, 1, 0},
		ExtAx: DefaultExternalAxes,
	}

	out, err := ParseRobTarget(in.String())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestParseRobTargetControllerFormat(t *testing.T) {
	// The literal shape the controller returns, with whitespace.
	out, err := ParseRobTarget("[[600, 0, 800], [1, 0, 0, 0], [0, 0, 0, 0], [9E+09, 9E+09, 9E+09, 9E+09, 9E+09, 9E+09]]")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{600, 0, 800}, out.Trans)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, out.Rot)
}

func TestParseRobTargetErrors(t *testing.T) {
	cases := []string{
		"",
		"not a robtarget",
		// missing group, short group, bad number, unterminated group
		"[[1,2,3],[1,0,0,0],[0,0,0,0]]",
		"[[1,2],[1,0,0,0],[0,0,0,0],[9E+09,0,0,0,0,0]]",
		"[[1,2,x],[1,0,0,0],[0,0,0,0],[9E+09,0,0,0,0,0]]",
		"[[1,2,3],[1,0,0,0],[0,0,0,0],[9E+09,0,0,0,0,0]",
	}
	for _, s := range cases {
		_, err := ParseRobTarget(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestQuaternionFromZDegrees(t *testing.T) {
	q := QuaternionFromZDegrees(0)
	assert.InDelta(t, 0, q[0], 1e-9)
	assert.InDelta(t, 1, q[1], 1e-9)
	assert.InDelta(t, 0, q[2], 1e-9)
	assert.InDelta(t, 0, q[3], 1e-9)

	q = QuaternionFromZDegrees(90)
	s := math.Sqrt2 / 2
	assert.InDelta(t, 0, q[0], 1e-9)
	assert.InDelta(t, s, q[1], 1e-9)
	assert.InDelta(t, s, q[2], 1e-9)
	assert.InDelta(t, 0, q[3], 1e-9)
}

func TestZoneDataValue(t *testing.T) {
	tests := []struct {
		zone string
		want string
	}{
		{"fine", "[TRUE,0,0,0,0,0,0]"},
		{"0", "[FALSE,0.3,0.3,0.3,0.03,0.3,0.03]"},
		{"1", "[FALSE,1,1,1,0.1,1,0.1]"},
		{"5", "[FALSE,5,8,8,0.8,8,0.8]"},
		{"10", "[FALSE,10,15,15,1.5,15,1.5]"},
		{"200", "[FALSE,200,300,300,30,300,30]"},
	}
	for _, tt := range tests {
		got, err := ZoneDataValue(tt.zone)
		require.NoError(t, err, "zone %q", tt.zone)
		assert.Equal(t, tt.want, got, "zone %q", tt.zone)
	}

	for _, zone := range []string{"7", "abc", "-10", "250"} {
		_, err := ZoneDataValue(zone)
		assert.Error(t, err, "zone %q", zone)
	}
}

func TestSpeedDataValue(t *testing.T) {
	assert.Equal(t, "[100,500,5000,1000]", SpeedDataValue(100))
	assert.Equal(t, "[12.5,500,5000,1000]", SpeedDataValue(12.5))
}

func TestSetRobTargetTranslation(t *testing.T) {
	f := newFakeController()
	f.setVar("target", "[[0,0,0],[0,0,0,0],[0,0,0,0],[0,0,0,0,0,0]]")
	r := connectedRobot(t, f)
	ctx := context.Background()

	require.NoError(t, r.SetRobTargetTranslation(ctx, "target", [3]float64{100, 200, 300}))

	// A zero orientation gets the downward-pointing default and the
	// configuration and external axes are normalized.
	want := "[[100,200,300],[0,1,0,0],[-1,0,0,0],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]"
	assert.Equal(t, want, f.getVar("target"))
}

func TestSetRobTargetRotationZ(t *testing.T) {
	f := newFakeController()
	f.setVar("target", "[[600,0,800],[1,0,0,0],[0,0,0,0],[0,0,0,0,0,0]]")
	r := connectedRobot(t, f)

	require.NoError(t, r.SetRobTargetRotationZ(context.Background(), "target", 0))

	got, err := ParseRobTarget(f.getVar("target"))
	require.NoError(t, err)
	assert.Equal(t, [3]float64{600, 0, 800}, got.Trans, "translation must be preserved")
	assert.InDelta(t, 1, got.Rot[1], 1e-9)
	assert.Equal(t, [4]float64{-1, 0, 0, 0}, got.Conf)
}

func TestSetArray(t *testing.T) {
	f := newFakeController()
	f.setVar("offsets", "[0,0,0]")
	r := connectedRobot(t, f)

	require.NoError(t, r.SetArray(context.Background(), "offsets", []float64{1.5, -2, 3}))
	assert.Equal(t, "[1.5,-2,3]", f.getVar("offsets"))
}

func TestSetZoneAndSpeedData(t *testing.T) {
	f := newFakeController()
	f.setVar("zone", "")
	f.setVar("speed", "")
	r := connectedRobot(t, f)
	ctx := context.Background()

	require.NoError(t, r.SetZoneData(ctx, "zone", "fine"))
	assert.Equal(t, "[TRUE,0,0,0,0,0,0]", f.getVar("zone"))

	require.NoError(t, r.SetSpeedData(ctx, "speed", 250))
	assert.Equal(t, "[250,500,5000,1000]", f.getVar("speed"))

	assert.Error(t, r.SetZoneData(ctx, "zone", "7"))
}
