package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chxlky/trello-gchat-notify/internal/notify"
)

// SendCard forwards a card to one of the caller's webhooks.
func (h *Handler) SendCard(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	receipt, err := h.Sender.Send(c.Request.Context(), notify.SendRequest{
		CardID:        c.Param("cardId"),
		DestinationID: req.WebhookID,
		Caption:       req.Caption,
	}, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card sent to Google Chat successfully",
		"receipt": receipt,
	})
}
