package models

import (
	"strings"
	"time"
)

// GoogleChatWebhookPrefix is the only accepted shape for a destination URL.
const GoogleChatWebhookPrefix = "https://chat.googleapis.com/v1/spaces/"

// Destination is a Google Chat incoming webhook a card can be forwarded to.
type Destination struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	URL         string    `gorm:"not null" json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidWebhookURL reports whether u points at a Google Chat space webhook.
func ValidWebhookURL(u string) bool {
	return strings.HasPrefix(u, GoogleChatWebhookPrefix) && len(u) > len(GoogleChatWebhookPrefix)
}
