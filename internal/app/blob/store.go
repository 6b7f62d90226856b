package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echonote/internal/app/audio"
	apperrors "echonote/internal/app/errors"
)

const (
	tempPrefix  = "temp_recording_"
	finalPrefix = "recording_"
)

// Store manages the on-disk audio assets under a single root directory.
// Temporary assets are namespaced by session id, permanent ones by their
// final name; Promote moves between the two namespaces atomically.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates the asset root if needed.
func NewStore(root string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset root %s: %w", root, err)
	}
	return &Store{root: root, logger: logger}, nil
}

// Root returns the asset root directory.
func (s *Store) Root() string {
	return s.root
}

// TempPath returns the temporary asset path for a capture session.
func (s *Store) TempPath(sessionID string) string {
	return filepath.Join(s.root, tempPrefix+sessionID+audio.AssetExt)
}

// OpenTemp prepares a fresh temporary target for a capture attempt, removing
// any stale file left by an earlier attempt with the same session id.
func (s *Store) OpenTemp(sessionID string) (string, error) {
	path := s.TempPath(sessionID)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to clear stale temp asset %s: %w", path, err)
	}
	return path, nil
}

// RemoveTemp deletes a temporary asset; a missing file is fine.
func (s *Store) RemoveTemp(tempPath string) error {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Promote moves a temporary asset into the permanent namespace under
// finalName. The move is a rename, atomic as far as the filesystem allows; an
// existing destination is clobbered first. On failure the temporary file is
// left in place for diagnostics.
func (s *Store) Promote(tempPath, finalName string) error {
	if _, err := os.Stat(tempPath); err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPromotionFailed, err)
	}

	dest := s.Path(finalName)
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return apperrors.WrapSentinel(apperrors.ErrPromotionFailed, err)
	}

	if err := os.Rename(tempPath, dest); err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPromotionFailed, err)
	}

	s.logger.Info("asset promoted",
		zap.String("temp", filepath.Base(tempPath)),
		zap.String("final", finalName))
	return nil
}

// Delete removes a permanent asset. A missing asset yields ErrAssetNotFound,
// which callers treat as already satisfied for delete flows.
func (s *Store) Delete(finalName string) error {
	err := os.Remove(s.Path(finalName))
	if os.IsNotExist(err) {
		return apperrors.WrapSentinel(apperrors.ErrAssetNotFound, err)
	}
	return err
}

// Exists reports whether a permanent asset is present.
func (s *Store) Exists(finalName string) bool {
	_, err := os.Stat(s.Path(finalName))
	return err == nil
}

// Path returns the absolute location of a permanent asset.
func (s *Store) Path(finalName string) string {
	return filepath.Join(s.root, finalName)
}

// StaleTemps lists temporary assets older than the given age, left behind by
// crashed or abandoned sessions.
func (s *Store) StaleTemps(olderThan time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-olderThan)
	var stale []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, filepath.Join(s.root, entry.Name()))
		}
	}
	return stale, nil
}

// NewFinalName mints a permanent asset name: recording_<unixTimestamp>_<uuid>.
func NewFinalName(createdAt time.Time) string {
	return fmt.Sprintf("%s%d_%s%s", finalPrefix, createdAt.Unix(), uuid.NewString(), audio.AssetExt)
}

// IsFinalName reports whether name follows the permanent naming pattern.
func IsFinalName(name string) bool {
	return strings.HasPrefix(name, finalPrefix) && strings.HasSuffix(name, audio.AssetExt)
}
