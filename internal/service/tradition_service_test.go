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

func newTraditionService(t *testing.T, db *gorm.DB) TraditionService {
	t.Helper()
	return NewTraditionService(
		repository.NewTraditionRepository(db),
		repository.NewTraditionCategoryRepository(db),
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

func createTraditionRequest(categoryID uuid.UUID) dto.CreateTraditionRequest {
	return dto.CreateTraditionRequest{
		CategoryID:          categoryID.String(),
		Name:                "ประเพณีปีใหม่เมือง",
		District:            "ศรีภูมิ",
		Amphoe:              "เมืองเชียงใหม่",
		Province:            "เชียงใหม่",
		Type:                "ภาคเหนือ",
		History:             "ประวัติ",
		AlcoholFreeApproach: "แนวทางปลอดเหล้า",
		StartYear:           2568,
	}
}

func TestCreateTraditionAndFilterByYear(t *testing.T) {
	db := newTestDB(t)
	svc := newTraditionService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	tradition, err := svc.Create(ctx, owner.ID, createTraditionRequest(category.ID))
	require.NoError(t, err)
	assert.Equal(t, 2568, tradition.StartYear)
	assert.Equal(t, "สงกรานต์", tradition.Category.Name)

	// Listing with the matching year finds it; the previous year does not.
	page, err := svc.List(ctx, dto.ListQuery{Year: 2568})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, tradition.ID, page.Data[0].ID)

	page, err = svc.List(ctx, dto.ListQuery{Year: 2567})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Meta.TotalItems)
}

func TestCreateTraditionUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newTraditionService(t, db)
	owner := seedUser(t, db, model.RoleMember)

	_, err := svc.Create(context.Background(), owner.ID, createTraditionRequest(uuid.New()))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateTraditionUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTraditionService(t, db)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	_, err := svc.Create(context.Background(), uuid.New(), createTraditionRequest(category.ID))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestUpdateTraditionPartialFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTraditionService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	tradition, err := svc.Create(ctx, owner.ID, createTraditionRequest(category.ID))
	require.NoError(t, err)

	coordinator := "สมชาย ใจดี"
	updated, err := svc.Update(ctx, owner.ID, tradition.ID, dto.UpdateTraditionRequest{Coordinator: &coordinator})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	require.NotNil(t, updated.Coordinator)
	assert.Equal(t, coordinator, *updated.Coordinator)
	assert.Equal(t, tradition.Name, updated.Name)
	assert.Equal(t, tradition.StartYear, updated.StartYear)
}

func TestDeleteTraditionRemovesNotifications(t *testing.T) {
	db := newTestDB(t)
	svc := newTraditionService(t, db)
	ctx := context.Background()
	owner := seedUser(t, db, model.RoleMember)

	category := &model.TraditionCategory{Name: "สงกรานต์"}
	require.NoError(t, db.Create(category).Error)

	tradition, err := svc.Create(ctx, owner.ID, createTraditionRequest(category.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, tradition.ID))

	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&notifications).Error)
	assert.Zero(t, notifications)
}
