package rws

// SignalType identifies an I/O signal type.
type SignalType string

// Signal types as reported by the I/O system.
const (
	SignalDigitalIn  SignalType = "DI"
	SignalDigitalOut SignalType = "DO"
	SignalAnalogIn   SignalType = "AI"
	SignalAnalogOut  SignalType = "AO"
	SignalGroupIn    SignalType = "GI"
	SignalGroupOut   SignalType = "GO"
)

// Digital reports whether the type is a digital input or output.
func (t SignalType) Digital() bool {
	return t == SignalDigitalIn || t == SignalDigitalOut
}

// Signal is the state of one I/O signal.
type Signal struct {
	// Name is the signal name, e.g. "DO1".
	Name string

	// Type is the signal type.
	Type SignalType

	// Value is the logical value (lvalue). Digital signals use 0 and 1.
	Value float64

	// Quality is the logical state of the signal, e.g. "valid".
	Quality string

	// Path is the controller-relative signal path
	// ("{network}/{device}/{signal}") extracted from the resource link.
	Path string
}

// On reports whether a digital signal is set.
func (s *Signal) On() bool {
	return s.Value != 0
}

// ExecutionState is the RAPID execution state of the controller.
type ExecutionState string

// Execution states reported by /rw/rapid/execution.
const (
	ExecutionRunning ExecutionState = "running"
	ExecutionStopped ExecutionState = "stopped"
	ExecutionUnknown ExecutionState = "unknown"
)

// ControllerState is the panel controller state.
type ControllerState string

// Controller states reported and accepted by /rw/panel/ctrl-state.
const (
	CtrlInit          ControllerState = "init"
	CtrlMotorsOn      ControllerState = "motoron"
	CtrlMotorsOff     ControllerState = "motoroff"
	CtrlGuardStop     ControllerState = "guardstop"
	CtrlEmergencyStop ControllerState = "emergencystop"
	CtrlSysFail       ControllerState = "sysfail"
)

// OperationMode is the panel operation mode.
type OperationMode string

// Operation modes reported by /rw/panel/opmode.
const (
	ModeInit          OperationMode = "INIT"
	ModeAuto          OperationMode = "AUTO"
	ModeManualReduced OperationMode = "MANR"
	ModeManualFull    OperationMode = "MANF"
)

// Task describes one RAPID task.
type Task struct {
	// Name is the task name, e.g. "T_ROB1".
	Name string

	// MotionTask reports whether the task drives a mechanical unit.
	MotionTask bool

	// Active reports whether the task is activated on the task panel.
	Active bool

	// ExecutionState is the per-task execution state.
	ExecutionState ExecutionState
}

// JointTarget is a motion system joint readout, in degrees.
type JointTarget struct {
	// Robax holds the six robot axes.
	Robax [6]float64
}

// RobTargetState is a motion system cartesian readout: tool position in mm,
// orientation as a quaternion, and the axis configuration.
type RobTargetState struct {
	Pos    [3]float64
	Orient [4]float64
	Conf   [4]float64
}

// SystemInfo describes the controller system.
type SystemInfo struct {
	// Name is the system name.
	Name string

	// SystemID is the unique system identifier.
	SystemID string

	// RobotWareVersion is the RobotWare version string, e.g. "6.08.1034".
	RobotWareVersion string
}

// StartOptions controls a RAPID execution start request.
type StartOptions struct {
	// Regain is the regain mode ("continue", "regain", "clear").
	Regain string

	// ExecMode is the execution mode ("continue", "stepin", "stepover", ...).
	ExecMode string

	// Cycle is the execution cycle ("once", "forever").
	Cycle string

	// Condition is the start condition ("none", "callchain").
	Condition string

	// StopAtBreakpoint enables stopping at RAPID breakpoints.
	StopAtBreakpoint bool

	// AllTasksByTSP starts all tasks selected on the task selection panel.
	AllTasksByTSP bool
}

// DefaultStartOptions returns the start options used for a plain
// start-from-current-pointer request.
func DefaultStartOptions() StartOptions {
	return StartOptions{
		Regain:    "continue",
		ExecMode:  "continue",
		Cycle:     "once",
		Condition: "none",
	}
}

// StopOptions controls a RAPID execution stop request.
type StopOptions struct {
	// Mode is the stop mode ("stop", "instr", "cycle", "qstop").
	Mode string

	// UseTSP selects which tasks stop ("normal", "alltsk").
	UseTSP string
}

// DefaultStopOptions returns the stop options for an ordinary stop.
func DefaultStopOptions() StopOptions {
	return StopOptions{
		Mode:   "stop",
		UseTSP: "normal",
	}
}
