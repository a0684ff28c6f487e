package service

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/cabindev/civicspace-sub000/internal/model"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/pkg/storage"
)

// Upload folders, one per entity type and file kind.
const (
	folderAvatars         = "avatars"
	folderTraditionImages = "tradition-images"
	folderTraditionFiles  = "tradition-files"
	folderPolicyImages    = "policy-images"
	folderPolicyFiles     = "policy-files"
	folderEthnicImages    = "ethnic-images"
	folderEthnicFiles     = "ethnic-files"
	folderCreativeImages  = "creative-activity-images"
	folderCreativeFiles   = "creative-activity-files"
)

// saveImages stores each uploaded image and records an Image row for the
// owning entity. Failures are logged and skipped: entity creation takes
// priority over upload completeness, and the reconciler cleans up any file
// that got written without a row.
func saveImages(ctx context.Context, store storage.Storage, images repository.ImageRepository, files []*multipart.FileHeader, folder string, ownerID uuid.UUID, ownerType string) {
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			log.Printf("failed to open uploaded image %s: %v", fh.Filename, err)
			continue
		}

		url, err := store.Save(ctx, f, folder, fh.Filename)
		f.Close()
		if err != nil {
			log.Printf("failed to save image %s: %v", fh.Filename, err)
			continue
		}

		img := &model.Image{URL: url, OwnerID: ownerID, OwnerType: ownerType}
		if err := images.Create(ctx, img); err != nil {
			log.Printf("failed to record image %s: %v", url, err)
			deleteFile(ctx, store, url)
		}
	}
}

// deleteOwnedImages removes the requested image rows, scoped to the owning
// entity so foreign IDs are silently ignored, then unlinks the files.
func deleteOwnedImages(ctx context.Context, store storage.Storage, images repository.ImageRepository, rawIDs []string, ownerID uuid.UUID, ownerType string) {
	if len(rawIDs) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Printf("skipping malformed image id %q", raw)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}

	owned, err := images.FindByIDs(ctx, ids, ownerID, ownerType)
	if err != nil {
		log.Printf("failed to load images for deletion: %v", err)
		return
	}
	if len(owned) == 0 {
		return
	}

	ownedIDs := make([]uuid.UUID, len(owned))
	for i, img := range owned {
		ownedIDs[i] = img.ID
	}
	if err := images.DeleteByIDs(ctx, ownedIDs); err != nil {
		log.Printf("failed to delete image rows: %v", err)
		return
	}

	for _, img := range owned {
		deleteFile(ctx, store, img.URL)
	}
}

// saveFile stores a single auxiliary file and returns its URL.
func saveFile(ctx context.Context, store storage.Storage, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Save(ctx, f, folder, fh.Filename)
}

// deleteFile is best-effort: a missing file during cleanup is not an error,
// and other failures are logged, never propagated.
func deleteFile(ctx context.Context, store storage.Storage, url string) {
	if url == "" {
		return
	}
	if err := store.Delete(ctx, url); err != nil {
		log.Printf("failed to delete file %s: %v", url, err)
	}
}
