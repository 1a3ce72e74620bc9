package planner

import (
	"encoding/json"
	"fmt"
)

// ErrInvalidResponse indicates the service returned content that does
// not conform to the task-list schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid planner response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrUnavailable indicates the service is down, unreachable, or not
// configured.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planner unavailable: %v", e.Err)
	}
	return "planner unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
