package sentiment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/goccy/go-json"
)

// ServiceError means the service answered, but not with a usable result:
// either a non-2xx status or a 2xx body that failed to decode.
type ServiceError struct {
	StatusCode int
	Status     string
	// Detail is the service's own explanation, taken from the body's "detail" field.
	Detail string
	Cause  error
}

func (e *ServiceError) Error() string {
	var parts []string
	if e.Status != "" {
		parts = append(parts, e.Status)
	} else if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status %d", e.StatusCode))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return "analysis service error: " + strings.Join(parts, ": ")
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// TransportError means no response was received at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was abandoned because a deadline passed.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// extractDetail pulls a readable message from an error body. The service
// reports either {"detail": "text"} or, for request validation failures,
// {"detail": [{"msg": "text", ...}, ...]}.
func extractDetail(payload []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
