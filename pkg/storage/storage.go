package storage

import (
	"context"
	"io"
	"os"
)

// Storage defines the contract for uploaded asset storage. Files are grouped
// by a logical folder per entity type (e.g. "tradition-images",
// "policy-files") and referenced by the URL returned from Save.
type Storage interface {
	// Save writes the file and returns the reference URL to persist.
	Save(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes the file behind a previously returned URL. A missing
	// file is not an error.
	Delete(ctx context.Context, fileURL string) error
}

// New picks the Cloudinary backend when CLOUDINARY_URL is configured and
// falls back to local disk under uploadDir otherwise.
func New(uploadDir string) (Storage, error) {
	if os.Getenv("CLOUDINARY_URL") != "" {
		return NewCloudinaryStorage()
	}
	return NewLocalStorage(uploadDir)
}
