package api

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

const webhookURLTag = "gchat_webhook"

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation(webhookURLTag, func(fl validator.FieldLevel) bool {
		return models.ValidWebhookURL(fl.Field().String())
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type destinationRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	URL         string `json:"url" binding:"required,gchat_webhook"`
	Description string `json:"description" binding:"max=500"`
}

type accessRequest struct {
	WebhookIDs []string `json:"webhookIds" binding:"required"`
}

// sendRequest is decoded strictly by type; field presence is checked by
// notify.SendRequest.Validate.
type sendRequest struct {
	WebhookID string `json:"webhookId"`
	Caption   string `json:"caption"`
}
