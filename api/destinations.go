package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// ListDestinations returns the webhooks the caller may send to.
func (h *Handler) ListDestinations(c *gin.Context) {
	dests, err := h.Destinations.ListAccessibleTo(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dests)
}

func (h *Handler) CreateDestination(c *gin.Context) {
	var req destinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	dest := req.destination()
	if err := h.Destinations.Create(c.Request.Context(), dest); err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("Webhook created", zap.String("webhookID", dest.ID), zap.String("name", dest.Name))
	c.JSON(http.StatusCreated, dest)
}

func (h *Handler) UpdateDestination(c *gin.Context) {
	var req destinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	dest := req.destination()
	dest.ID = c.Param("webhookId")
	if err := h.Destinations.Update(c.Request.Context(), dest); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			abort(c, http.StatusNotFound, "Webhook not found")
			return
		}
		respondError(c, err)
		return
	}

	zap.L().Info("Webhook updated", zap.String("webhookID", dest.ID))
	c.JSON(http.StatusOK, dest)
}

func (h *Handler) DeleteDestination(c *gin.Context) {
	id := c.Param("webhookId")
	if err := h.Destinations.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			abort(c, http.StatusNotFound, "Webhook not found")
			return
		}
		respondError(c, err)
		return
	}

	zap.L().Info("Webhook deleted", zap.String("webhookID", id))
	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully"})
}

func (r destinationRequest) destination() *models.Destination {
	return &models.Destination{
		Name:        strings.TrimSpace(r.Name),
		URL:         strings.TrimSpace(r.URL),
		Description: strings.TrimSpace(r.Description),
	}
}
