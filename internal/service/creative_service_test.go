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

func newCreativeService(t *testing.T, db *gorm.DB) CreativeActivityService {
	t.Helper()
	return NewCreativeActivityService(
		repository.NewCreativeActivityRepository(db),
		repository.NewCreativeCategoryRepository(db),
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

func seedCreativeCategories(t *testing.T, db *gorm.DB) (*model.CreativeCategory, *model.CreativeSubCategory) {
	t.Helper()
	category := &model.CreativeCategory{Name: "ศิลปะการแสดง"}
	require.NoError(t, db.Create(category).Error)
	sub := &model.CreativeSubCategory{CategoryID: category.ID, Name: "ดนตรีพื้นบ้าน"}
	require.NoError(t, db.Create(sub).Error)
	return category, sub
}

func createCreativeRequest(categoryID, subCategoryID uuid.UUID) dto.CreateCreativeActivityRequest {
	return dto.CreateCreativeActivityRequest{
		CategoryID:    categoryID.String(),
		SubCategoryID: subCategoryID.String(),
		Name:          "วงกลองยาวเยาวชน",
		District:      "ในเมือง",
		Amphoe:        "เมืองขอนแก่น",
		Province:      "ขอนแก่น",
		Type:          "ภาคตะวันออกเฉียงเหนือ",
		Description:   "รายละเอียดกิจกรรม",
		Summary:       "สรุปกิจกรรม",
		StartYear:     2567,
	}
}

func TestCreateCreativeActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newCreativeService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)
	category, sub := seedCreativeCategories(t, db)

	activity, err := svc.Create(ctx, owner.ID, createCreativeRequest(category.ID, sub.ID))
	require.NoError(t, err)
	assert.Equal(t, category.ID, activity.CategoryID)
	assert.Equal(t, sub.ID, activity.SubCategoryID)
	assert.Equal(t, "ดนตรีพื้นบ้าน", activity.SubCategory.Name)
}

func TestCreateCreativeActivityRejectsForeignSubCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCreativeService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)
	category, _ := seedCreativeCategories(t, db)

	other := &model.CreativeCategory{Name: "หัตถกรรม"}
	require.NoError(t, db.Create(other).Error)
	foreignSub := &model.CreativeSubCategory{CategoryID: other.ID, Name: "จักสาน"}
	require.NoError(t, db.Create(foreignSub).Error)

	_, err := svc.Create(ctx, owner.ID, createCreativeRequest(category.ID, foreignSub.ID))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.Create(ctx, owner.ID, createCreativeRequest(category.ID, uuid.New()))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateCreativeCategoryRevalidatesSubCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCreativeService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)
	category, sub := seedCreativeCategories(t, db)

	activity, err := svc.Create(ctx, owner.ID, createCreativeRequest(category.ID, sub.ID))
	require.NoError(t, err)

	other := &model.CreativeCategory{Name: "หัตถกรรม"}
	require.NoError(t, db.Create(other).Error)

	// Moving the category without a matching sub-category is rejected.
	otherID := other.ID.String()
	_, err = svc.Update(ctx, owner.ID, activity.ID, dto.UpdateCreativeActivityRequest{CategoryID: &otherID})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	// Supplying both moves the record.
	otherSub := &model.CreativeSubCategory{CategoryID: other.ID, Name: "จักสาน"}
	require.NoError(t, db.Create(otherSub).Error)
	otherSubID := otherSub.ID.String()
	updated, err := svc.Update(ctx, owner.ID, activity.ID, dto.UpdateCreativeActivityRequest{
		CategoryID:    &otherID,
		SubCategoryID: &otherSubID,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.CategoryID)
	assert.Equal(t, otherSub.ID, updated.SubCategoryID)
}

func TestDeleteCreativeActivityRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCreativeService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)
	stranger := seedUser(t, db, model.RoleMember)
	category, sub := seedCreativeCategories(t, db)

	activity, err := svc.Create(ctx, owner.ID, createCreativeRequest(category.ID, sub.ID))
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger.ID, activity.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID, activity.ID))
	_, err = svc.GetByID(ctx, activity.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
