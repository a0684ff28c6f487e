package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

func TestIncrementViewCountAccumulates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTraditionRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	category := seedTraditionCategory(t, db, "ประเพณี")
	tradition := seedTradition(t, db, category, owner, "เชียงใหม่", "ภาคเหนือ", 2568)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.IncrementViewCount(ctx, tradition.ID))
	}

	got, err := repo.FindByID(ctx, tradition.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ViewCount)
}

func TestDeleteRemovesDependentRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTraditionRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	category := seedTraditionCategory(t, db, "ประเพณี")
	tradition := seedTradition(t, db, category, owner, "เชียงใหม่", "ภาคเหนือ", 2568)

	require.NoError(t, db.Create(&model.Image{
		URL:       "/uploads/tradition-images/1-a.jpg",
		OwnerID:   tradition.ID,
		OwnerType: model.OwnerTradition,
	}).Error)
	require.NoError(t, db.Create(&model.Notification{
		UserID:       owner.ID,
		ActivityID:   tradition.ID,
		ActivityType: model.OwnerTradition,
		Message:      "msg",
	}).Error)

	require.NoError(t, repo.Delete(ctx, tradition.ID))

	var traditions, images, notifications int64
	require.NoError(t, db.Model(&model.Tradition{}).Count(&traditions).Error)
	require.NoError(t, db.Model(&model.Image{}).Count(&images).Error)
	require.NoError(t, db.Model(&model.Notification{}).Count(&notifications).Error)

	assert.Zero(t, traditions)
	assert.Zero(t, images)
	assert.Zero(t, notifications)
}

func TestFindAllFiltersByCategoryAndYear(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTraditionRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	songkran := seedTraditionCategory(t, db, "สงกรานต์")
	loykrathong := seedTraditionCategory(t, db, "ลอยกระทง")

	seedTradition(t, db, songkran, owner, "เชียงใหม่", "ภาคเหนือ", 2568)
	seedTradition(t, db, songkran, owner, "น่าน", "ภาคเหนือ", 2567)
	seedTradition(t, db, loykrathong, owner, "เชียงใหม่", "ภาคเหนือ", 2568)

	rows, total, err := repo.FindAll(ctx, ListFilter{CategoryID: &songkran.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.FindAll(ctx, ListFilter{CategoryID: &songkran.ID, Year: 2568, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, 2568, rows[0].StartYear)
}

func TestImageOwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	images := NewImageRepository(db)

	owner := seedUser(t, db, model.RoleMember)
	category := seedTraditionCategory(t, db, "ประเพณี")
	mine := seedTradition(t, db, category, owner, "เชียงใหม่", "ภาคเหนือ", 2568)
	other := seedTradition(t, db, category, owner, "น่าน", "ภาคเหนือ", 2568)

	img := &model.Image{URL: "/uploads/tradition-images/1-b.jpg", OwnerID: other.ID, OwnerType: model.OwnerTradition}
	require.NoError(t, images.Create(ctx, img))

	// Asking for another entity's image through the wrong owner yields nothing.
	got, err := images.FindByIDs(ctx, []uuid.UUID{img.ID}, mine.ID, model.OwnerTradition)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = images.FindByIDs(ctx, []uuid.UUID{img.ID}, other.ID, model.OwnerTradition)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
