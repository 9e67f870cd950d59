package media

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/catalog/shared"
)

type memoryRepo struct {
	items  map[int64]Media
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Media), nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, kind string, _ shared.ListFilters) ([]Media, int, error) {
	var out []Media
	for _, item := range m.items {
		if kind != "" && item.Kind != kind {
			continue
		}
		out = append(out, item)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Media, error) {
	item, ok := m.items[id]
	if !ok {
		return Media{}, shared.ErrNotFound
	}
	return item, nil
}

func (m *memoryRepo) Create(_ context.Context, item Media) (Media, error) {
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryRepo) Filenames(_ context.Context) ([]string, error) {
	var names []string
	for _, item := range m.items {
		names = append(names, item.Filename)
	}
	return names, nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo := newMemoryRepo()
	svc := NewService(slog.New(slog.NewTextHandler(os.Stderr, nil)), repo, dir, "http://127.0.0.1:8000")
	return svc, repo, dir
}

func TestUploadStoresFileAndMetadata(t *testing.T) {
	svc, repo, dir := newTestService(t)

	m, err := svc.Upload(context.Background(), KindImage, "Photo.PNG", "image/png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	require.NotZero(t, m.ID)
	require.Equal(t, "Photo.PNG", m.OriginalName)
	require.True(t, strings.HasSuffix(m.Filename, ".png"))
	require.Equal(t, "http://127.0.0.1:8000/static/"+m.Filename, m.URL)

	data, err := os.ReadFile(filepath.Join(dir, m.Filename))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))
	require.Len(t, repo.items, 1)
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	svc, _, dir := newTestService(t)

	_, err := svc.Upload(context.Background(), "video", "clip.mp4", "video/mp4", strings.NewReader("x"))
	require.ErrorIs(t, err, shared.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "rejected uploads leave no file behind")
}

func TestDeleteRemovesFileAndRow(t *testing.T) {
	svc, repo, dir := newTestService(t)

	m, err := svc.Upload(context.Background(), KindAttachment, "cv.pdf", "application/pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID))
	require.Empty(t, repo.items)

	_, err = os.Stat(filepath.Join(dir, m.Filename))
	require.True(t, os.IsNotExist(err))
}

func TestRemoveOrphans(t *testing.T) {
	svc, _, dir := newTestService(t)

	m, err := svc.Upload(context.Background(), KindImage, "keep.png", "image/png", strings.NewReader("keep"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.bin"), []byte("stray"), 0o644))

	removed, err := svc.RemoveOrphans(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(dir, m.Filename))
	require.NoError(t, err, "referenced files survive cleanup")
}
