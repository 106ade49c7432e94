package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

func TestCanUseAdminBypassesAccessList(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	assert.True(t, CanUse(admin, "any"))
	assert.True(t, CanUse(admin, ""))
}

func TestCanUseMember(t *testing.T) {
	member := &models.User{
		ID:           "u2",
		Role:         models.RoleMember,
		Destinations: []models.Destination{{ID: "d1"}, {ID: "d2"}},
	}
	assert.True(t, CanUse(member, "d1"))
	assert.True(t, CanUse(member, "d2"))
	assert.False(t, CanUse(member, "d3"))
}

func TestCanUseMemberWithoutAccess(t *testing.T) {
	assert.False(t, CanUse(&models.User{ID: "u3", Role: models.RoleMember}, "d1"))
}

func TestCanUseNilUser(t *testing.T) {
	assert.False(t, CanUse(nil, "d1"))
}
