package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/chat/v1"
	"google.golang.org/api/googleapi"
)

// ChatClient posts card messages to Google Chat incoming webhooks. The
// webhook URL carries its own key and token, so no OAuth credentials are held.
type ChatClient struct {
	Client *http.Client
}

func NewChatClient(timeout time.Duration) *ChatClient {
	return &ChatClient{Client: &http.Client{Timeout: timeout}}
}

// Post delivers msg to webhookURL. Non-2xx answers come back as *APIError.
func (cc *ChatClient) Post(ctx context.Context, webhookURL string, msg *chat.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("unable to marshal chat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := cc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send post request: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			message := gerr.Message
			if message == "" {
				message = errorMessage([]byte(gerr.Body))
			}
			return &APIError{Service: "google chat", Status: gerr.Code, Message: message}
		}
		return fmt.Errorf("unexpected google chat response: %w", err)
	}
	io.Copy(io.Discard, resp.Body)

	zap.L().Debug("Google Chat accepted message", zap.Int("status", resp.StatusCode))
	return nil
}
