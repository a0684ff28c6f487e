package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type localStorage struct {
	root string
}

// NewLocalStorage creates a disk-backed Storage rooted at root. Stored
// references are root-relative paths beginning with /uploads/.
func NewLocalStorage(root string) (Storage, error) {
	if root == "" {
		root = "./public/uploads"
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root %s: %w", root, err)
	}

	return &localStorage{root: root}, nil
}

func (s *localStorage) Save(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder %s: %w", folder, err)
	}

	// Timestamp prefix keeps concurrent uploads of the same file name apart.
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFileName(fileName))
	dst := filepath.Join(dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dst, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file %s: %w", dst, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close file %s: %w", dst, err)
	}

	return "/uploads/" + folder + "/" + name, nil
}

func (s *localStorage) Delete(ctx context.Context, fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, "/uploads/")
	if !ok {
		return fmt.Errorf("not an uploads path: %s", fileURL)
	}

	// Reject anything that could climb out of the upload root.
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid uploads path: %s", fileURL)
	}

	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
