package robot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/s3904419/go-rws/rws"
)

// ErrExecutionStopped is returned by WaitForFlag when RAPID execution stops
// before the flag turns TRUE.
var ErrExecutionStopped = errors.New("robot: rapid execution stopped")

// defaultPollInterval is how often WaitForFlag samples the controller.
const defaultPollInterval = 250 * time.Millisecond

// withMastership runs fn while holding explicit mastership, releasing it
// afterwards. A release failure is reported only when fn itself succeeded.
func (r *Robot) withMastership(ctx context.Context, fn func(context.Context) error) error {
	if err := r.rws.RequestMastership(ctx); err != nil {
		return err
	}
	err := fn(ctx)
	if relErr := r.rws.ReleaseMastership(ctx); relErr != nil && err == nil {
		err = relErr
	}
	return err
}

// MotorsOn turns the robot motors on. The controller must be in AUTO mode.
// Mastership is taken for the duration of the state change.
func (r *Robot) MotorsOn(ctx context.Context) error {
	return r.withMastership(ctx, func(ctx context.Context) error {
		return r.rws.SetControllerState(ctx, rws.CtrlMotorsOn)
	})
}

// MotorsOff turns the robot motors off.
func (r *Robot) MotorsOff(ctx context.Context) error {
	return r.rws.SetControllerState(ctx, rws.CtrlMotorsOff)
}

// Variable reads a RAPID variable from the configured task, in RAPID literal
// syntax.
func (r *Robot) Variable(ctx context.Context, name string) (string, error) {
	return r.rws.RapidValue(ctx, r.config.Task, name)
}

// SetVariable writes a RAPID variable in the configured task, taking and
// releasing mastership around the write.
func (r *Robot) SetVariable(ctx context.Context, name, value string) error {
	return r.withMastership(ctx, func(ctx context.Context) error {
		return r.rws.SetRapidValue(ctx, r.config.Task, name, value)
	})
}

// StartProgram starts RAPID execution, optionally resetting the program
// pointer to main first.
func (r *Robot) StartProgram(ctx context.Context, resetPP bool) error {
	if resetPP {
		if err := r.rws.ResetProgramPointer(ctx); err != nil {
			return err
		}
	}
	return r.rws.StartExecution(ctx, rws.DefaultStartOptions())
}

// StopProgram stops RAPID execution.
func (r *Robot) StopProgram(ctx context.Context) error {
	return r.rws.StopExecution(ctx, rws.DefaultStopOptions())
}

// Running reports whether RAPID execution is currently running.
func (r *Robot) Running(ctx context.Context) (bool, error) {
	state, err := r.rws.ExecutionState(ctx)
	if err != nil {
		return false, err
	}
	return state == rws.ExecutionRunning, nil
}

// WaitForFlag polls the named RAPID bool variable until it reads TRUE.
// It returns ErrExecutionStopped if execution halts first, or ctx.Err()
// on cancellation. The variable is the usual hand-shake between a RAPID
// program and the PC side ("ready_flag" by convention).
func (r *Robot) WaitForFlag(ctx context.Context, name string) error {
	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		value, err := r.Variable(ctx, name)
		if err != nil {
			return err
		}
		if value == "TRUE" {
			return nil
		}

		running, err := r.Running(ctx)
		if err != nil {
			return err
		}
		if !running {
			return ErrExecutionStopped
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunProgram performs one synchronized RAPID cycle: motors on, start
// (optionally from main), wait for the hand-shake flag, stop, and clear the
// flag for the next cycle.
func (r *Robot) RunProgram(ctx context.Context, resetPP bool, flag string) error {
	if flag == "" {
		flag = "ready_flag"
	}
	if err := r.MotorsOn(ctx); err != nil {
		return fmt.Errorf("motors on: %w", err)
	}
	if err := r.StartProgram(ctx, resetPP); err != nil {
		return fmt.Errorf("start program: %w", err)
	}
	if err := r.WaitForFlag(ctx, flag); err != nil {
		return err
	}
	if err := r.StopProgram(ctx); err != nil {
		return fmt.Errorf("stop program: %w", err)
	}
	return r.SetVariable(ctx, flag, "FALSE")
}

// JointPositions reads the configured mechanical unit's joint positions in
// degrees.
func (r *Robot) JointPositions(ctx context.Context) ([6]float64, error) {
	jt, err := r.rws.JointTarget(ctx, r.config.MechUnit)
	if err != nil {
		return [6]float64{}, err
	}
	return jt.Robax, nil
}

// ToolPosition reads the cartesian position and orientation of the given
// tool relative to the given work object, in the work object frame.
func (r *Robot) ToolPosition(ctx context.Context, tool, wobj string) (*rws.RobTargetState, error) {
	return r.rws.RobTarget(ctx, r.config.MechUnit, tool, wobj, "Wobj")
}

// LeadThrough activates or deactivates lead-through mode on the configured
// mechanical unit.
func (r *Robot) LeadThrough(ctx context.Context, active bool) error {
	return r.rws.SetLeadThrough(ctx, r.config.MechUnit, active)
}

// minSubscriptionVersion is the first RobotWare release with the
// subscription WebSocket API.
var minSubscriptionVersion = semver.MustParse("6.0.0")

// SubscribeSignals subscribes to change events for the given I/O signal
// paths at high priority. It fails up front when the controller's RobotWare
// version predates the subscription API.
func (r *Robot) SubscribeSignals(ctx context.Context, signalPaths ...string) (*rws.Subscription, error) {
	r.mu.Lock()
	version := r.version
	r.mu.Unlock()

	if version != nil && version.LessThan(minSubscriptionVersion) {
		return nil, fmt.Errorf("robot: RobotWare %s does not support subscriptions (needs >= %s)",
			version, minSubscriptionVersion)
	}

	resources := make([]rws.SubscriptionResource, 0, len(signalPaths))
	for _, p := range signalPaths {
		resources = append(resources, rws.SignalResource(p, rws.PriorityHigh))
	}
	return r.rws.Subscribe(ctx, resources)
}
