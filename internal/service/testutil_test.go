package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/pkg/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.TraditionCategory{},
		&model.EthnicCategory{},
		&model.CreativeCategory{},
		&model.CreativeSubCategory{},
		&model.Tradition{},
		&model.PublicPolicy{},
		&model.EthnicGroup{},
		&model.CreativeActivity{},
		&model.Image{},
		&model.Notification{},
	))

	return db
}

func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func seedUser(t *testing.T, db *gorm.DB, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
