package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/config"
	"github.com/cabindev/civicspace-sub000/internal/model"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

// SeedSuperAdmin creates the initial SUPER_ADMIN account when configured and
// not already present.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", cfg.SuperAdminEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        cfg.SuperAdminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeded super admin %s", cfg.SuperAdminEmail)
	return nil
}
