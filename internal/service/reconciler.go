package service

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cabindev/civicspace-sub000/internal/repository"
)

// Reconciler sweeps the local upload directory for files no database row
// references anymore and removes them. A create flow writes the file before
// the row, so only files older than the grace period are eligible.
type Reconciler struct {
	refs        repository.FileReferenceRepository
	uploadDir   string
	interval    time.Duration
	gracePeriod time.Duration
}

func NewReconciler(refs repository.FileReferenceRepository, uploadDir string, interval time.Duration) *Reconciler {
	return &Reconciler{
		refs:        refs,
		uploadDir:   uploadDir,
		interval:    interval,
		gracePeriod: time.Hour,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				log.Printf("upload reconciler sweep failed: %v", err)
			}
		}
	}
}

// Sweep walks the upload tree once and deletes orphaned files.
func (r *Reconciler) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-r.gracePeriod)

	return filepath.WalkDir(r.uploadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(r.uploadDir, path)
		if err != nil {
			return nil
		}
		url := "/uploads/" + filepath.ToSlash(rel)

		referenced, err := r.refs.Referenced(ctx, url)
		if err != nil {
			log.Printf("reconciler: failed to check %s: %v", url, err)
			return nil
		}
		if referenced {
			return nil
		}

		if err := os.Remove(path); err != nil {
			log.Printf("reconciler: failed to remove orphan %s: %v", path, err)
			return nil
		}
		log.Printf("reconciler: removed orphaned upload %s", url)
		return nil
	})
}
