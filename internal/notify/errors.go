package notify

import (
	"errors"
	"fmt"
)

var (
	ErrDestinationNotFound = errors.New("webhook not found")
	ErrAccessDenied        = errors.New("you do not have access to this webhook")
	ErrMalformedRequest    = errors.New("malformed request")
)

// UpstreamError reports a failure fetching card data from Trello.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("failed to fetch from Trello: %s", e.Message)
	}
	return fmt.Sprintf("failed to fetch from Trello (status %d): %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DeliveryError reports a failure posting the message to Google Chat.
type DeliveryError struct {
	Status  int
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("failed to send to Google Chat: %s", e.Message)
	}
	return fmt.Sprintf("failed to send to Google Chat (status %d): %s", e.Status, e.Message)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// apiFailure is implemented by client errors that carry an HTTP status.
type apiFailure interface {
	StatusCode() int
	Detail() string
}

// NewUpstreamError wraps a Trello client failure.
func NewUpstreamError(err error) *UpstreamError {
	status, msg := statusAndMessage(err)
	return &UpstreamError{Status: status, Message: msg, Err: err}
}

// NewDeliveryError wraps a Google Chat client failure.
func NewDeliveryError(err error) *DeliveryError {
	status, msg := statusAndMessage(err)
	return &DeliveryError{Status: status, Message: msg, Err: err}
}

func statusAndMessage(err error) (int, string) {
	var af apiFailure
	if errors.As(err, &af) {
		return af.StatusCode(), af.Detail()
	}
	return 0, err.Error()
}
