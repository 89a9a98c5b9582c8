// Package rws implements a client for ABB Robot Web Services (RWS), the
// HTTP/REST API exposed by IRC5 and OmniCore robot controllers.
//
// Every method on Client maps to exactly one HTTP request against a fixed
// RWS endpoint template. The client holds no state beyond the session
// cookies captured by its transport; invariants such as "writes require
// mastership" are enforced by the controller, which answers with an HTTP
// error code that surfaces here as an *APIError. There are no retries and
// no recovery semantics.
//
// # Resource areas
//
//   - Session: Login, Logout
//   - I/O system: Signal, SetSignal, Signals
//   - RAPID: RapidValue, SetRapidValue, ExecutionState, StartExecution,
//     StopExecution, ResetProgramPointer, Tasks, LoadProgram, SaveProgram
//   - Panel: ControllerState, SetControllerState, OperationMode,
//     SpeedRatio, SetSpeedRatio
//   - Motion system: JointTarget, RobTarget, SetLeadThrough
//   - Mastership: RequestMastership, ReleaseMastership, RequestRMMP,
//     CancelRMMP
//   - File service: UploadFile, DownloadFile, RemoveFile
//   - Subscriptions: Subscribe (WebSocket event stream)
//
// # Subpackages
//
//   - auth: Authentication handlers (Basic for RWS 2.x, Digest for RWS 1.x)
//   - transport: HTTP/TLS transport layer and session cookie handling
package rws
