package api

import "github.com/chxlky/trello-gchat-notify/internal/models"

type userResponse struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Role               models.Role `json:"role"`
	AccessibleWebhooks []string    `json:"accessibleWebhooks"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		AccessibleWebhooks: u.AccessibleDestinationIDs(),
	}
}
