package service

import (
	"github.com/google/uuid"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

// CheckPermission implements the owner-or-admin rule: SUPER_ADMIN may mutate
// anything, everyone else only their own records. A nil owner (uuid.Nil)
// means the resource has no owner and any authenticated user passes.
// Pure decision function; evaluated before every mutating operation.
func CheckPermission(actor *model.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.Role == model.RoleSuperAdmin {
		return true
	}
	if ownerID == uuid.Nil {
		return true
	}
	return actor.ID == ownerID
}
