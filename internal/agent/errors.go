package agent

import "fmt"

// ServiceError reports a failure of the external reasoning service: the call
// errored, returned something unusable, or the request deadline expired. It
// fails the current request only.
type ServiceError struct {
	Stage string // pipeline stage, e.g. "planning" or "rendering"
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("reasoning service failed during %s: %v", e.Stage, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
