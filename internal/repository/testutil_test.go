package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cabindev/civicspace-sub000/internal/model"
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

func seedTraditionCategory(t *testing.T, db *gorm.DB, name string) *model.TraditionCategory {
	t.Helper()

	category := &model.TraditionCategory{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}
