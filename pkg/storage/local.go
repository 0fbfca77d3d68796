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

// localStorage stores uploads on disk under baseDir. Files are served
// statically under urlPrefix by the HTTP layer.
type localStorage struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStorage creates a disk-backed ImageStorage rooted at baseDir.
// Uploaded files are addressable as <urlPrefix>/<generated name>.
func NewLocalStorage(baseDir, urlPrefix string) (ImageStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}

	return &localStorage{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

func (s *localStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	name := GenerateFileName(fileName)

	dir := s.baseDir
	rel := name
	if folder != "" {
		dir = filepath.Join(s.baseDir, folder)
		rel = folder + "/" + name
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
		}
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.urlPrefix + "/" + rel, nil
}

func (s *localStorage) DeleteImage(ctx context.Context, fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, s.urlPrefix+"/")
	if !ok {
		return fmt.Errorf("url %s is not managed by local storage", fileURL)
	}

	// Refuse anything that would escape baseDir.
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid file path in url %s", fileURL)
	}

	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GenerateFileName builds a collision-resistant file name from the original:
// upload timestamp, then the base name with whitespace replaced by dashes.
func GenerateFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "file"
	}
	base = strings.Join(strings.Fields(base), "-")

	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)
}
