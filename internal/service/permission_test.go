package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

func TestCheckPermission(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name  string
		actor *model.User
		owner uuid.UUID
		want  bool
	}{
		{"nil actor", nil, ownerID, false},
		{"member owns the record", &model.User{ID: ownerID, Role: model.RoleMember}, ownerID, true},
		{"member does not own the record", &model.User{ID: otherID, Role: model.RoleMember}, ownerID, false},
		{"admin does not own the record", &model.User{ID: otherID, Role: model.RoleAdmin}, ownerID, false},
		{"admin owns the record", &model.User{ID: ownerID, Role: model.RoleAdmin}, ownerID, true},
		{"super admin never blocked", &model.User{ID: otherID, Role: model.RoleSuperAdmin}, ownerID, true},
		{"unowned record", &model.User{ID: otherID, Role: model.RoleMember}, uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPermission(tt.actor, tt.owner))
		})
	}
}
