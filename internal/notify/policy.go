package notify

import "github.com/chxlky/trello-gchat-notify/internal/models"

// CanUse reports whether user may deliver notifications to destinationID.
// Admins may use every destination; members only those granted to them.
func CanUse(user *models.User, destinationID string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	for _, d := range user.Destinations {
		if d.ID == destinationID {
			return true
		}
	}
	return false
}
