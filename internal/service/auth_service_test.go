package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(db), newTestStorage(t), "test-secret", time.Hour)
}

func TestSignUpAndSignIn(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, dto.SignUpRequest{
		FirstName: "สมหญิง",
		LastName:  "ดีงาม",
		Email:     "somying@example.com",
		Password:  "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, user.Role)
	assert.Empty(t, user.PasswordHash)

	auth, err := svc.SignIn(ctx, dto.SignInRequest{Email: "somying@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, user.ID, auth.User.ID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	req := dto.SignUpRequest{FirstName: "a", LastName: "b", Email: "dup@example.com", Password: "secret-password"}

	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestSignInWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, dto.SignUpRequest{FirstName: "a", LastName: "b", Email: "x@example.com", Password: "secret-password"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "x@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "nobody@example.com", Password: "secret-password"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestUpdateRoleRequiresSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	admin := seedUser(t, db, model.RoleAdmin)
	superAdmin := seedUser(t, db, model.RoleSuperAdmin)
	member := seedUser(t, db, model.RoleMember)

	err := svc.UpdateRole(ctx, admin.ID, member.ID, model.RoleAdmin)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.UpdateRole(ctx, superAdmin.ID, member.ID, model.RoleAdmin))

	var got model.User
	require.NoError(t, db.First(&got, "id = ?", member.ID).Error)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestDeleteUserBlockedWhileOwningContent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	superAdmin := seedUser(t, db, model.RoleSuperAdmin)
	member := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)
	require.NoError(t, db.Create(&model.Tradition{
		CategoryID:          category.ID,
		Name:                "งาน",
		Location:            model.Location{District: "d", Amphoe: "a", Province: "เชียงใหม่", Type: "ภาคเหนือ"},
		History:             "h",
		AlcoholFreeApproach: "a",
		StartYear:           2568,
		UserID:              member.ID,
	}).Error)

	err := svc.DeleteUser(ctx, superAdmin.ID, member.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	require.NoError(t, db.Where("user_id = ?", member.ID).Delete(&model.Tradition{}).Error)
	require.NoError(t, svc.DeleteUser(ctx, superAdmin.ID, member.ID))
}
