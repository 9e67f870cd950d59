package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/foliohq/folio/internal/catalog/shared"
)

// maxUploadSize caps one upload at 32 MiB.
const maxUploadSize = 32 << 20

type Service struct {
	logger  *slog.Logger
	repo    Repository
	dir     string
	baseURL string
}

// NewService stores files under dir and builds public URLs from baseURL.
func NewService(logger *slog.Logger, repo Repository, dir, baseURL string) *Service {
	return &Service{logger: logger, repo: repo, dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Service) List(ctx context.Context, kind string, filters shared.ListFilters) ([]Media, int, error) {
	if kind != "" && !ValidKind(kind) {
		return nil, 0, fmt.Errorf("%w: unknown media kind %q", shared.ErrValidation, kind)
	}
	items, total, err := s.repo.List(ctx, kind, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].URL = s.publicURL(items[i].Filename)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Media, error) {
	if id <= 0 {
		return Media{}, shared.ErrInvalidID
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Media{}, err
	}
	m.URL = s.publicURL(m.Filename)
	return m, nil
}

// Upload writes the stream to a uuid-named file and records its metadata.
// The on-disk file is removed again when the metadata insert fails.
func (s *Service) Upload(ctx context.Context, kind, originalName, contentType string, body io.Reader) (Media, error) {
	if !ValidKind(kind) {
		return Media{}, fmt.Errorf("%w: media kind must be %q or %q", shared.ErrValidation, KindImage, KindAttachment)
	}
	originalName = filepath.Base(strings.TrimSpace(originalName))
	if originalName == "" || originalName == "." {
		return Media{}, fmt.Errorf("%w: a filename is required", shared.ErrValidation)
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return Media{}, fmt.Errorf("media: create %s: %w", filename, err)
	}
	size, err := io.Copy(dst, io.LimitReader(body, maxUploadSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size > maxUploadSize {
		err = fmt.Errorf("%w: file exceeds the upload limit", shared.ErrValidation)
	}
	if err != nil {
		s.removeFile(filename)
		return Media{}, err
	}

	m, err := s.repo.Create(ctx, Media{
		Kind:         kind,
		Filename:     filename,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         size,
	})
	if err != nil {
		s.removeFile(filename)
		return Media{}, err
	}
	m.URL = s.publicURL(m.Filename)
	return m, nil
}

// Delete removes the metadata row first, then the file. A missing file is
// logged, not surfaced; the row is already gone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(m.Filename)
	return nil
}

// OrphanedFiles lists files in the media directory that have no metadata
// row, for the cleanup task.
func (s *Service) OrphanedFiles(ctx context.Context) ([]string, error) {
	known, err := s.repo.Filenames(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]struct{}, len(known))
	for _, name := range known {
		index[name] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("media: read dir: %w", err)
	}
	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := index[entry.Name()]; !ok {
			orphans = append(orphans, entry.Name())
		}
	}
	return orphans, nil
}

// RemoveOrphans deletes orphaned files and returns how many were removed.
func (s *Service) RemoveOrphans(ctx context.Context) (int, error) {
	orphans, err := s.OrphanedFiles(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range orphans {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Warn("remove orphaned media file", slog.String("file", name), slog.Any("error", err))
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *Service) publicURL(filename string) string {
	return s.baseURL + "/static/" + filename
}

func (s *Service) removeFile(filename string) {
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("remove media file", slog.String("file", filename), slog.Any("error", err))
	}
}
