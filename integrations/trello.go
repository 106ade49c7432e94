package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

const DefaultTrelloBaseURL = "https://api.trello.com/1"

// TrelloClient reads boards, lists and cards from the Trello REST API.
// Credentials are fixed at construction and sent as query parameters on
// every request; the client is safe for concurrent use.
type TrelloClient struct {
	Client   *http.Client
	APIKey   string
	APIToken string
	BaseURL  string
}

func NewTrelloClient(key, token string, timeout time.Duration) *TrelloClient {
	return &TrelloClient{
		Client:   &http.Client{Timeout: timeout},
		APIKey:   key,
		APIToken: token,
		BaseURL:  DefaultTrelloBaseURL,
	}
}

// WithBaseURL points the client at another API root (used by tests).
func (tc *TrelloClient) WithBaseURL(baseURL string) *TrelloClient {
	tc.BaseURL = strings.TrimRight(baseURL, "/")
	return tc
}

func (tc *TrelloClient) GetBoard(ctx context.Context, boardID string) (*models.Board, error) {
	var board models.Board
	params := url.Values{"fields": {"name,desc,url"}}
	if err := tc.get(ctx, "/boards/"+url.PathEscape(boardID), params, &board); err != nil {
		return nil, fmt.Errorf("get board %s: %w", boardID, err)
	}
	return &board, nil
}

// GetLists returns the open lists of a board with their open cards.
func (tc *TrelloClient) GetLists(ctx context.Context, boardID string) ([]models.List, error) {
	var lists []models.List
	params := url.Values{
		"cards":       {"open"},
		"card_fields": {"name,desc,labels,due,dueComplete,url"},
	}
	if err := tc.get(ctx, "/boards/"+url.PathEscape(boardID)+"/lists", params, &lists); err != nil {
		return nil, fmt.Errorf("get lists for board %s: %w", boardID, err)
	}
	return lists, nil
}

func (tc *TrelloClient) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	params := url.Values{"fields": {"name,desc,due,dueComplete,url"}}
	if err := tc.get(ctx, "/cards/"+url.PathEscape(cardID), params, &card); err != nil {
		return nil, fmt.Errorf("get card %s: %w", cardID, err)
	}
	return &card, nil
}

func (tc *TrelloClient) GetCardLabels(ctx context.Context, cardID string) ([]models.Label, error) {
	var labels []models.Label
	if err := tc.get(ctx, "/cards/"+url.PathEscape(cardID)+"/labels", nil, &labels); err != nil {
		return nil, fmt.Errorf("get labels for card %s: %w", cardID, err)
	}
	return labels, nil
}

func (tc *TrelloClient) get(ctx context.Context, path string, params url.Values, out any) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", tc.APIKey)
	q.Set("token", tc.APIToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create get request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := tc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send get request: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxErrorBody))
		zap.L().Debug("Trello API error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{Service: "trello", Status: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Trello response: %w", err)
	}
	return nil
}
