package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

func newEthnicService(t *testing.T, db *gorm.DB) EthnicGroupService {
	t.Helper()
	return NewEthnicGroupService(
		repository.NewEthnicGroupRepository(db),
		repository.NewEthnicCategoryRepository(db),
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

func createEthnicRequest(categoryID uuid.UUID) dto.CreateEthnicGroupRequest {
	return dto.CreateEthnicGroupRequest{
		CategoryID:          categoryID.String(),
		Name:                "ชุมชนปกาเกอะญอบ้านห้วยหินลาด",
		District:            "บ้านโป่ง",
		Amphoe:              "เวียงป่าเป้า",
		Province:            "เชียงราย",
		Type:                "ภาคเหนือ",
		History:             "ประวัติชุมชน",
		ActivityName:        "งานบุญข้าวใหม่",
		ActivityOrigin:      "ที่มาของกิจกรรม",
		ActivityDetails:     "รายละเอียดกิจกรรม",
		AlcoholFreeApproach: "แนวทางปลอดเหล้า",
		StartYear:           2566,
	}
}

func TestCreateEthnicGroupAndListByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newEthnicService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category := &model.EthnicCategory{Name: "ปกาเกอะญอ"}
	require.NoError(t, db.Create(category).Error)
	other := &model.EthnicCategory{Name: "ม้ง"}
	require.NoError(t, db.Create(other).Error)

	group, err := svc.Create(ctx, owner.ID, createEthnicRequest(category.ID))
	require.NoError(t, err)
	assert.Equal(t, "งานบุญข้าวใหม่", group.ActivityName)
	assert.Equal(t, "ปกาเกอะญอ", group.Category.Name)

	page, err := svc.List(ctx, dto.ListQuery{Category: category.ID.String()})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	page, err = svc.List(ctx, dto.ListQuery{Category: other.ID.String()})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestUpdateEthnicGroupPermission(t *testing.T) {
	db := newTestDB(t)
	svc := newEthnicService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)
	admin := seedUser(t, db, model.RoleAdmin)
	superAdmin := seedUser(t, db, model.RoleSuperAdmin)

	category := &model.EthnicCategory{Name: "ปกาเกอะญอ"}
	require.NoError(t, db.Create(category).Error)

	group, err := svc.Create(ctx, owner.ID, createEthnicRequest(category.ID))
	require.NoError(t, err)

	name := "ชื่อใหม่"
	_, err = svc.Update(ctx, admin.ID, group.ID, dto.UpdateEthnicGroupRequest{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.Update(ctx, superAdmin.ID, group.ID, dto.UpdateEthnicGroupRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestIncrementEthnicGroupView(t *testing.T) {
	db := newTestDB(t)
	svc := newEthnicService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category := &model.EthnicCategory{Name: "ปกาเกอะญอ"}
	require.NoError(t, db.Create(category).Error)

	group, err := svc.Create(ctx, owner.ID, createEthnicRequest(category.ID))
	require.NoError(t, err)

	require.NoError(t, svc.IncrementView(ctx, group.ID))
	require.NoError(t, svc.IncrementView(ctx, group.ID))

	got, err := svc.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
}
