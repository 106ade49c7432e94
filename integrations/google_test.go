package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/chat/v1"
)

func testMessage() *chat.Message {
	return &chat.Message{
		CardsV2: []*chat.CardWithId{{
			CardId: "trello-card-c5",
			Card: &chat.GoogleAppsCardV1Card{
				Header: &chat.GoogleAppsCardV1CardHeader{Title: "📌 Session 5", Subtitle: "Sent to Team Chat"},
			},
		}},
	}
}

func TestChatPostSuccess(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/spaces/AAA/messages", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"spaces/AAA/messages/1"}`))
	}))
	defer server.Close()

	cc := NewChatClient(5 * time.Second)
	err := cc.Post(context.Background(), server.URL+"/v1/spaces/AAA/messages?key=k&token=t", testMessage())
	require.NoError(t, err)

	cards := received["cardsV2"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, "trello-card-c5", cards[0].(map[string]any)["cardId"])
}

func TestChatPostAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Invalid JSON payload received.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	err := NewChatClient(5*time.Second).Post(context.Background(), server.URL, testMessage())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode())
	assert.Equal(t, "Invalid JSON payload received.", apiErr.Detail())
	assert.Equal(t, "google chat", apiErr.Service)
}

func TestChatPostPlainErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("space not found"))
	}))
	defer server.Close()

	err := NewChatClient(5*time.Second).Post(context.Background(), server.URL, testMessage())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "space not found", apiErr.Message)
}

func TestChatPostNetworkError(t *testing.T) {
	err := NewChatClient(time.Second).Post(context.Background(), "http://127.0.0.1:1/v1/spaces/AAA/messages?key=secret", testMessage())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}
