// Package worker runs the session behind a message boundary.
//
// A Worker consumes Requests and emits Responses on channels; Serve carries the
// same exchange over newline-delimited JSON. Client is the caller-side mirror
// that folds Responses back into user and site state.
package worker
