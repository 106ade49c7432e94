package integrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const maxErrorBody = 512

// APIError is a non-2xx response from Trello or Google Chat.
type APIError struct {
	Service string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Service, e.Status, e.Message)
}

func (e *APIError) StatusCode() int { return e.Status }

func (e *APIError) Detail() string { return e.Message }

// errorMessage pulls a readable message out of an error body. Trello answers
// with plain text or {"message": "..."}.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}

// stripURL drops the request URL from transport errors; both APIs carry
// credentials in it.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
