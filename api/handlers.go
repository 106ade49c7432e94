package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chxlky/trello-gchat-notify/internal/auth"
	"github.com/chxlky/trello-gchat-notify/internal/models"
	"github.com/chxlky/trello-gchat-notify/internal/notify"
)

type UserRepository interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	SetAccessibleDestinations(ctx context.Context, userID string, ids []string) (*models.User, error)
}

type DestinationRepository interface {
	FindDestination(ctx context.Context, id string) (*models.Destination, error)
	ListAccessibleTo(ctx context.Context, user *models.User) ([]models.Destination, error)
	Create(ctx context.Context, d *models.Destination) error
	Update(ctx context.Context, d *models.Destination) error
	Delete(ctx context.Context, id string) error
}

type BoardReader interface {
	GetBoard(ctx context.Context, boardID string) (*models.Board, error)
	GetLists(ctx context.Context, boardID string) ([]models.List, error)
}

type Sender interface {
	Send(ctx context.Context, req notify.SendRequest, user *models.User) (*notify.Receipt, error)
}

type Handler struct {
	Users          UserRepository
	Destinations   DestinationRepository
	Board          BoardReader
	Sender         Sender
	Tokens         *auth.TokenIssuer
	DefaultBoardID string
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
