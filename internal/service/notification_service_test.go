package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/apperror"
)

func TestMarkAsReadScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	ctx := context.Background()

	owner := seedUser(t, db, model.RoleMember)
	stranger := seedUser(t, db, model.RoleMember)

	require.NoError(t, svc.NotifyCreation(ctx, owner.ID, uuid.New(), model.OwnerTradition, "งานสงกรานต์"))

	var notification model.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", owner.ID).Error)

	// Another user cannot flip someone else's notification.
	err := svc.MarkAsRead(ctx, stranger.ID, notification.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var got model.Notification
	require.NoError(t, db.First(&got, "id = ?", notification.ID).Error)
	assert.False(t, got.IsRead)

	require.NoError(t, svc.MarkAsRead(ctx, owner.ID, notification.ID))
	require.NoError(t, db.First(&got, "id = ?", notification.ID).Error)
	assert.True(t, got.IsRead)
}

func TestMarkAsReadUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	owner := seedUser(t, db, model.RoleMember)

	err := svc.MarkAsRead(context.Background(), owner.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
