package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// SetUserDestinations replaces the webhook access list of a user.
func (h *Handler) SetUserDestinations(c *gin.Context) {
	var req accessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	userID := c.Param("userId")
	user, err := h.Users.SetAccessibleDestinations(c.Request.Context(), userID, req.WebhookIDs)
	switch {
	case errors.Is(err, models.ErrNotFound):
		abort(c, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, models.ErrInvalidAccess):
		abort(c, http.StatusBadRequest, "One or more webhook IDs do not exist")
		return
	case err != nil:
		respondError(c, err)
		return
	}

	zap.L().Info("Webhook access updated",
		zap.String("userID", user.ID),
		zap.Strings("webhookIDs", user.AccessibleDestinationIDs()))
	c.JSON(http.StatusOK, newUserResponse(user))
}
