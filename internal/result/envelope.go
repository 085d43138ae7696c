package result

import (
	"net/http"
	"time"
)

// Envelope is the wire shape of a Result.
type Envelope struct {
	IsSuccess bool      `json:"isSuccess"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Errors    []Error   `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId"`
}

// Envelope renders r for transport. Data is nil for failures and Errors is
// always a non-nil slice so it encodes as [].
func (r Result[T]) Envelope(requestID string) Envelope {
	env := Envelope{
		IsSuccess: r.ok,
		Message:   r.message,
		Errors:    []Error{},
		Timestamp: r.timestamp,
		RequestID: requestID,
	}
	if r.ok {
		if _, void := any(r.data).(Void); !void {
			env.Data = r.data
		}
	} else {
		env.Errors = r.Errors()
	}
	return env
}

// Status returns successStatus for Ok results and the mapped status of the
// first error otherwise.
func (r Result[T]) Status(successStatus int) int {
	if r.ok {
		if successStatus == 0 {
			return http.StatusOK
		}
		return successStatus
	}
	return StatusFor(r.FirstCode())
}
