package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/api/chat/v1"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// BoardProvider reads card data from the task board.
type BoardProvider interface {
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	GetCardLabels(ctx context.Context, cardID string) ([]models.Label, error)
}

// DestinationFinder resolves a destination by id. Implementations return
// models.ErrNotFound when the id is unknown.
type DestinationFinder interface {
	FindDestination(ctx context.Context, id string) (*models.Destination, error)
}

// DeliveryChannel posts a rendered message to a webhook URL.
type DeliveryChannel interface {
	Post(ctx context.Context, webhookURL string, msg *chat.Message) error
}

// SendRequest asks for one card to be forwarded to one destination.
type SendRequest struct {
	CardID        string `validate:"required,max=64"`
	DestinationID string `validate:"required,max=64"`
	Caption       string `validate:"max=4000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request shape and returns an ErrMalformedRequest on failure.
func (r SendRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fe.Field()+" is too long")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrMalformedRequest, strings.Join(msgs, ", "))
}

// Receipt acknowledges a delivered notification.
type Receipt struct {
	CardID          string    `json:"cardId"`
	DestinationID   string    `json:"webhookId"`
	DestinationName string    `json:"webhookName"`
	SentAt          time.Time `json:"sentAt"`
}

// Dispatcher forwards cards to chat destinations. It holds no mutable state,
// so a single instance serves concurrent requests.
type Dispatcher struct {
	destinations DestinationFinder
	board        BoardProvider
	channel      DeliveryChannel
	composer     *Composer
	now          func() time.Time
}

func NewDispatcher(destinations DestinationFinder, board BoardProvider, channel DeliveryChannel, composer *Composer) *Dispatcher {
	if composer == nil {
		composer = NewComposer()
	}
	return &Dispatcher{
		destinations: destinations,
		board:        board,
		channel:      channel,
		composer:     composer,
		now:          time.Now,
	}
}

// Send resolves the destination, checks that user may use it, fetches the
// card and its labels, composes the message and delivers it. Each step
// short-circuits with a typed error; nothing is retried.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest, user *models.User) (*Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dest, err := d.destinations.FindDestination(ctx, req.DestinationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("lookup webhook %s: %w", req.DestinationID, err)
	}

	if !CanUse(user, dest.ID) {
		zap.L().Warn("Notification rejected by access policy",
			zap.String("userID", userID(user)),
			zap.String("webhookID", dest.ID))
		return nil, ErrAccessDenied
	}

	card, err := d.board.GetCard(ctx, req.CardID)
	if err != nil {
		return nil, NewUpstreamError(err)
	}

	labels, err := d.board.GetCardLabels(ctx, req.CardID)
	if err != nil {
		return nil, NewUpstreamError(err)
	}
	card.Labels = labels

	msg := d.composer.Compose(*card, req.Caption, dest.Name)

	if err := d.channel.Post(ctx, dest.URL, msg); err != nil {
		return nil, NewDeliveryError(err)
	}

	zap.L().Info("Card sent to Google Chat",
		zap.String("cardID", card.ID),
		zap.String("webhookID", dest.ID),
		zap.String("userID", userID(user)))

	return &Receipt{
		CardID:          req.CardID,
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
		SentAt:          d.now(),
	}, nil
}

func userID(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
