package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrelloServer(t *testing.T, handler http.HandlerFunc) *TrelloClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTrelloClient("test-key", "test-token", 5*time.Second).WithBaseURL(server.URL)
}

func TestTrelloGetCard(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/c5", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Equal(t, "name,desc,due,dueComplete,url", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c5","name":"Session 5","desc":"Link Presensi: [Join](https://meet.test/5)","due":"2024-05-01T00:00:00.000Z","dueComplete":true,"url":"https://trello.com/c/abc"}`))
	})

	card, err := tc.GetCard(context.Background(), "c5")
	require.NoError(t, err)

	assert.Equal(t, "Session 5", card.Name)
	assert.True(t, card.DueComplete)
	require.NotNil(t, card.Due)
	assert.True(t, card.Due.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "https://trello.com/c/abc", card.URL)
}

func TestTrelloGetCardWithoutDue(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"c6","name":"No due","desc":"","due":null,"dueComplete":false,"url":"https://trello.com/c/def"}`))
	})

	card, err := tc.GetCard(context.Background(), "c6")
	require.NoError(t, err)
	assert.False(t, card.HasDue())
}

func TestTrelloGetCardLabels(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/c5/labels", r.URL.Path)
		w.Write([]byte(`[{"id":"l1","name":"Urgent","color":"red"},{"id":"l2","name":"","color":"green"}]`))
	})

	labels, err := tc.GetCardLabels(context.Background(), "c5")
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "Urgent", labels[0].Name)
	assert.Equal(t, "green", labels[1].Color)
}

func TestTrelloGetLists(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/b1/lists", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("cards"))
		assert.Equal(t, "name,desc,labels,due,dueComplete,url", r.URL.Query().Get("card_fields"))
		w.Write([]byte(`[{"id":"l1","name":"To Do","cards":[{"id":"c1","name":"One","labels":[{"name":"Urgent","color":"red"}]}]},{"id":"l2","name":"Done","cards":[]}]`))
	})

	lists, err := tc.GetLists(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "To Do", lists[0].Name)
	require.Len(t, lists[0].Cards, 1)
	assert.Equal(t, "Urgent", lists[0].Cards[0].Labels[0].Name)
}

func TestTrelloGetBoard(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/b1", r.URL.Path)
		w.Write([]byte(`{"id":"b1","name":"Kelas","url":"https://trello.com/b/b1"}`))
	})

	board, err := tc.GetBoard(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Kelas", board.Name)
}

func TestTrelloAPIError(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid token"))
	})

	_, err := tc.GetCard(context.Background(), "c5")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
	assert.Equal(t, "invalid token", apiErr.Detail())
	assert.Equal(t, "trello", apiErr.Service)
}

func TestTrelloAPIErrorJSONBody(t *testing.T) {
	tc := newTrelloServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"API_TOKEN_LIMIT_EXCEEDED","error":"API_TOKEN_LIMIT_EXCEEDED"}`))
	})

	_, err := tc.GetCardLabels(context.Background(), "c5")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "API_TOKEN_LIMIT_EXCEEDED", apiErr.Message)
}

func TestTrelloNetworkErrorHidesCredentials(t *testing.T) {
	tc := NewTrelloClient("test-key", "secret-token", time.Second).WithBaseURL("http://127.0.0.1:1")

	_, err := tc.GetCard(context.Background(), "c5")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}
