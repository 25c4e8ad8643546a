package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// localStore implements ImageStore on the local file system.
type localStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocalStore creates an image store writing under dir. Stored files are
// served below baseURL (e.g. "/images/products").
func NewLocalStore(dir, baseURL string, logger zerolog.Logger) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}

	return &localStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With().Str("component", "image-store").Logger(),
	}, nil
}

// Store writes the image under a uuid-prefixed name, keeping the original
// extension, and returns its public relative URL.
func (s *localStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uniqueName(filename)
	target := filepath.Join(s.dir, name)

	if err := os.WriteFile(target, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", target).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", target, err)
	}

	url := s.baseURL + "/" + name
	s.logger.Info().
		Str("file", target).
		Str("url", url).
		Int("size", len(data)).
		Msg("image stored")

	return url, nil
}

// uniqueName prefixes the sanitised original name with a uuid so uploads
// never collide.
func uniqueName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return uuid.NewString() + "-" + base
}
