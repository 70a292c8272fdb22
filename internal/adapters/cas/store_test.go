package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/adapters/cas"
	"go.trai.ch/fusionary/internal/core/domain"
)

func TestStore_GetMissing(t *testing.T) {
	store := cas.NewStore()

	got, err := store.Get(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	state := domain.BuildState{
		Fingerprint: "00ff00ff00ff00ff",
		Mode:        domain.ModeProduction,
		Outputs:     []string{"public/assets/index.3f2a.js"},
		Timestamp:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, state))

	info, err := os.Stat(filepath.Join(root, domain.FusionaryDirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	got, err := cas.NewStore().Get(root)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state, *got)
}

func TestStore_PutOverwrites(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.BuildState{Fingerprint: "a"}))
	require.NoError(t, store.Put(root, domain.BuildState{Fingerprint: "b"}))

	got, err := store.Get(root)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Fingerprint)

	entries, err := os.ReadDir(filepath.Join(root, domain.FusionaryDirName))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_EmptyFile(t *testing.T) {
	root := t.TempDir()
	path := cas.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, nil, domain.FilePerm))

	got, err := cas.NewStore().Get(root)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptFile(t *testing.T) {
	root := t.TempDir()
	path := cas.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	_, err := cas.NewStore().Get(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestStore_PutFailsWhenDirectoryIsAFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.FusionaryDirName), nil, domain.FilePerm))

	err := cas.NewStore().Put(root, domain.BuildState{Fingerprint: "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreWriteFailed)
}
