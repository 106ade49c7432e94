package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/models"
	"github.com/chxlky/trello-gchat-notify/internal/notify"
)

// respondError maps err to a status code and a single readable message.
func respondError(c *gin.Context, err error) {
	var (
		upstream *notify.UpstreamError
		delivery *notify.DeliveryError
	)

	switch {
	case errors.Is(err, notify.ErrMalformedRequest):
		abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, notify.ErrAccessDenied):
		abort(c, http.StatusForbidden, err.Error())
	case errors.Is(err, notify.ErrDestinationNotFound):
		abort(c, http.StatusNotFound, "Webhook not found")
	case errors.As(err, &upstream):
		zap.L().Warn("Trello request failed", zap.Int("status", upstream.Status), zap.String("message", upstream.Message))
		abort(c, http.StatusBadGateway, upstream.Error())
	case errors.As(err, &delivery):
		zap.L().Warn("Google Chat delivery failed", zap.Int("status", delivery.Status), zap.String("message", delivery.Message))
		abort(c, http.StatusBadGateway, delivery.Error())
	case errors.Is(err, models.ErrNotFound):
		abort(c, http.StatusNotFound, "Not found")
	default:
		zap.L().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// bindMessage turns a binding failure into a message naming the offending fields.
func bindMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field + " must be of type " + typeErr.Type.String()
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "request body is not valid JSON"
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fe.Field()+" must be at least "+fe.Param()+" characters")
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param()+" characters")
		case webhookURLTag:
			msgs = append(msgs, "Invalid webhook URL format. Must start with "+models.GoogleChatWebhookPrefix)
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}
