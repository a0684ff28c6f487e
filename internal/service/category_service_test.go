package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/dto"
	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

func newCategoryService(db *gorm.DB) CategoryService {
	return NewCategoryService(
		repository.NewTraditionCategoryRepository(db),
		repository.NewEthnicCategoryRepository(db),
		repository.NewCreativeCategoryRepository(db),
		NewCacheService(nil),
	)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	_, err := svc.CreateTraditionCategory(ctx, dto.CreateCategoryRequest{Name: "สงกรานต์"})
	require.NoError(t, err)

	_, err = svc.CreateTraditionCategory(ctx, dto.CreateCategoryRequest{Name: "สงกรานต์"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category, err := svc.CreateTraditionCategory(ctx, dto.CreateCategoryRequest{Name: "ลอยกระทง"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Tradition{
		CategoryID:          category.ID,
		Name:                "ลอยกระทงเชียงใหม่",
		Location:            model.Location{District: "d", Amphoe: "a", Province: "เชียงใหม่", Type: "ภาคเหนือ"},
		History:             "h",
		AlcoholFreeApproach: "a",
		StartYear:           2568,
		UserID:              owner.ID,
	}).Error)

	err = svc.DeleteTraditionCategory(ctx, category.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// The category row must still be there.
	var count int64
	require.NoError(t, db.Model(&model.TraditionCategory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// After the referencing row goes away, deletion succeeds.
	require.NoError(t, db.Where("category_id = ?", category.ID).Delete(&model.Tradition{}).Error)
	require.NoError(t, svc.DeleteTraditionCategory(ctx, category.ID))
}

func TestDeleteCreativeSubCategoryBlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category, err := svc.CreateCreativeCategory(ctx, dto.CreateCategoryRequest{Name: "ดนตรี"})
	require.NoError(t, err)

	sub, err := svc.CreateCreativeSubCategory(ctx, dto.CreateSubCategoryRequest{
		Name:       "วงโยธวาทิต",
		CategoryID: category.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.CreativeActivity{
		CategoryID:    category.ID,
		SubCategoryID: sub.ID,
		Name:          "ค่ายดนตรี",
		Location:      model.Location{District: "d", Amphoe: "a", Province: "น่าน", Type: "ภาคเหนือ"},
		Description:   "desc",
		Summary:       "sum",
		StartYear:     2568,
		UserID:        owner.ID,
	}).Error)

	err = svc.DeleteCreativeSubCategory(ctx, sub.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUpdateCategoryAllowsKeepingOwnName(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	category, err := svc.CreateEthnicCategory(ctx, dto.CreateCategoryRequest{Name: "ชาติพันธุ์ล้านนา"})
	require.NoError(t, err)

	// Renaming to its current name is not a conflict.
	_, err = svc.UpdateEthnicCategory(ctx, category.ID, dto.UpdateCategoryRequest{Name: "ชาติพันธุ์ล้านนา"})
	assert.NoError(t, err)
}
