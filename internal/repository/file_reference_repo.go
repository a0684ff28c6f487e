package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/model"
)

// FileReferenceRepository answers whether an upload URL is still referenced
// anywhere in the database. Used by the orphaned-file reconciler.
type FileReferenceRepository interface {
	Referenced(ctx context.Context, url string) (bool, error)
}

type fileReferenceRepository struct {
	db *gorm.DB
}

func NewFileReferenceRepository(db *gorm.DB) FileReferenceRepository {
	return &fileReferenceRepository{db: db}
}

func (r *fileReferenceRepository) Referenced(ctx context.Context, url string) (bool, error) {
	checks := []struct {
		m      any
		column string
	}{
		{&model.Image{}, "url"},
		{&model.Tradition{}, "report_file_url"},
		{&model.CreativeActivity{}, "report_file_url"},
		{&model.PublicPolicy{}, "policy_file_url"},
		{&model.EthnicGroup{}, "file_url"},
		{&model.User{}, "image"},
	}

	for _, c := range checks {
		var count int64
		if err := r.db.WithContext(ctx).Model(c.m).Where(c.column+" = ?", url).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}
