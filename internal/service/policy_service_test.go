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

func newPolicyService(t *testing.T, db *gorm.DB) PublicPolicyService {
	t.Helper()
	return NewPublicPolicyService(
		repository.NewPublicPolicyRepository(db),
		repository.NewImageRepository(db),
		repository.NewUserRepository(db),
		newTestStorage(t),
		NewCacheService(nil),
		NewSearchService(nil),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
		nil,
		0,
	)
}

func createPolicyRequest() dto.CreatePublicPolicyRequest {
	return dto.CreatePublicPolicyRequest{
		Name:        "ธรรมนูญตำบลปลอดเหล้า",
		SigningDate: "2025-06-15",
		Level:       string(model.LevelSubDistrict),
		District:    "ในเวียง",
		Amphoe:      "เมืองน่าน",
		Province:    "น่าน",
		Type:        "ภาคเหนือ",
		Content:     "เนื้อหา",
		Summary:     "สรุป",
	}
}

func TestCreatePolicyRecordsNotification(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	policy, err := svc.Create(ctx, owner.ID, createPolicyRequest())
	require.NoError(t, err)

	assert.Equal(t, model.LevelSubDistrict, policy.Level)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), policy.SigningDate)
	assert.Equal(t, owner.ID, policy.UserID)

	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, owner.ID, notifications[0].UserID)
	assert.Equal(t, policy.ID, notifications[0].ActivityID)
	assert.Equal(t, model.OwnerPublicPolicy, notifications[0].ActivityType)
	assert.Contains(t, notifications[0].Message, policy.Name)
}

func TestCreatePolicyRejectsBadSigningDate(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)
	owner := seedUser(t, db, model.RoleMember)

	req := createPolicyRequest()
	req.SigningDate = "next tuesday"

	_, err := svc.Create(context.Background(), owner.ID, req)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestMemberCannotUpdateForeignPolicy(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, model.RoleMember)
	intruder := seedUser(t, db, model.RoleMember)

	policy, err := svc.Create(ctx, owner.ID, createPolicyRequest())
	require.NoError(t, err)

	newName := "ชื่อใหม่"
	_, err = svc.Update(ctx, intruder.ID, policy.ID, dto.UpdatePublicPolicyRequest{Name: &newName})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// The record is untouched.
	got, err := svc.GetByID(ctx, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, createPolicyRequest().Name, got.Name)
}

func TestAdminCannotUpdateForeignPolicyButSuperAdminCan(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, model.RoleMember)
	admin := seedUser(t, db, model.RoleAdmin)
	superAdmin := seedUser(t, db, model.RoleSuperAdmin)

	policy, err := svc.Create(ctx, owner.ID, createPolicyRequest())
	require.NoError(t, err)

	newName := "ชื่อใหม่"
	_, err = svc.Update(ctx, admin.ID, policy.ID, dto.UpdatePublicPolicyRequest{Name: &newName})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.Update(ctx, superAdmin.ID, policy.ID, dto.UpdatePublicPolicyRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
}

func TestMemberCannotDeleteForeignPolicy(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, model.RoleMember)
	intruder := seedUser(t, db, model.RoleMember)

	policy, err := svc.Create(ctx, owner.ID, createPolicyRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, intruder.ID, policy.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID, policy.ID))

	_, err = svc.GetByID(ctx, policy.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPoliciesValidatesLevel(t *testing.T) {
	db := newTestDB(t)
	svc := newPolicyService(t, db)

	_, err := svc.List(context.Background(), dto.ListQuery{Level: "COUNTY"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
