package policy

import (
	"testing"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"

	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	admin := Identity{UserID: "a-1", Role: role.Admin}
	owner := Identity{UserID: "u-1", Role: role.User}
	other := Identity{UserID: "u-2", Role: role.User}

	assert.True(t, CanView(admin, "u-1"), "admin voit toute demande")
	assert.True(t, CanView(owner, "u-1"), "le demandeur voit sa propre demande")
	assert.False(t, CanView(other, "u-1"), "un autre utilisateur est refusé")
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Identity{UserID: "a-1", Role: role.Admin}))

	err := RequireAdmin(Identity{UserID: "u-1", Role: role.User})
	assert.Error(t, err)
	assert.True(t, apperr.IsAccessDenied(err))
}

func TestRequireView(t *testing.T) {
	err := RequireView(Identity{UserID: "u-2", Role: role.User}, "u-1")
	assert.True(t, apperr.IsAccessDenied(err))

	assert.NoError(t, RequireView(Identity{UserID: "u-1", Role: role.User}, "u-1"))
}
