package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellspring-app/core/internal/config"
)

func TestRenderObjectKey(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "backups/2026/08/a.zip", renderObjectKey("", "a.zip", now))
	assert.Equal(t, "b/2026-08-29/a.zip", renderObjectKey("b/{Y}-{m}-{d}/{filename}", "a.zip", now))
	assert.Equal(t, "x/a.zip", renderObjectKey("//x//{filename}", "a.zip", now))
	assert.Equal(t, "a.zip", renderObjectKey("/", "a.zip", now))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.00 KB", formatSize(2048))
	assert.Equal(t, "1.50 MB", formatSize(3*1<<20/2))
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup-a.zip"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.zip"), 0o755))

	items := listBackups(dir)
	require.Len(t, items, 1)
	assert.Equal(t, "backup-a.zip", items[0].Filename)
}

func TestPruneArtifactsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"backup-2026-08-01T00-00-00.zip",
		"backup-2026-08-02T00-00-00.zip",
		"backup-2026-08-03T00-00-00.zip",
		"backup-2026-08-04T00-00-00.zip",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	cfg := &config.AppConfig{Backup: config.BackupConfig{Dir: dir}}
	h := NewHandler(nil, nil, cfg, nil)
	h.PruneArtifacts(2)

	items := listBackups(dir)
	require.Len(t, items, 2)
	assert.Equal(t, names[2], items[0].Filename)
	assert.Equal(t, names[3], items[1].Filename)
}
