package jsonfile

import (
	"errors"
	"io/fs"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// renameFailFs behaves like the wrapped filesystem except that renames fail
type renameFailFs struct {
	afero.Fs
}

func (f renameFailFs) Rename(oldname, newname string) error {
	return &fs.PathError{Op: "rename", Path: oldname, Err: fs.ErrPermission}
}

func TestDocument_ReadMissingIsEmpty(t *testing.T) {
	doc := NewDocument[item](afero.NewMemMapFs(), "/data/items.json")

	items, err := doc.Read()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	exists, err := doc.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDocument_ReadEmptyFileIsEmpty(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/data/items.json", []byte("  \n"), 0o644))

	items, err := NewDocument[item](memFs, "/data/items.json").Read()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDocument_UpdatePersistsPrettyJSON(t *testing.T) {
	memFs := afero.NewMemMapFs()
	doc := NewDocument[item](memFs, "/data/items.json")

	err := doc.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "1", Name: "first"}), nil
	})
	require.NoError(t, err)

	raw, err := afero.ReadFile(memFs, "/data/items.json")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"1\",\n    \"name\": \"first\"\n  }\n]", string(raw))

	items, err := doc.Read()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1", Name: "first"}}, items)

	// no temp files are left behind
	entries, err := afero.ReadDir(memFs, "/data")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocument_UpdateCallbackErrorWritesNothing(t *testing.T) {
	memFs := afero.NewMemMapFs()
	doc := NewDocument[item](memFs, "/data/items.json")
	require.NoError(t, doc.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "1"}), nil
	}))

	boom := errors.New("boom")
	err := doc.Update(func(items []item) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := doc.Read()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDocument_FailedWriteKeepsPreviousState(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, NewDocument[item](memFs, "/data/items.json").Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "1"}), nil
	}))

	doc := NewDocument[item](renameFailFs{memFs}, "/data/items.json")
	err := doc.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "2"}), nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)

	items, err := doc.Read()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1"}}, items)

	entries, err := afero.ReadDir(memFs, "/data")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocument_ReadOnlyFilesystem(t *testing.T) {
	doc := NewDocument[item](afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data/items.json")

	err := doc.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "1"}), nil
	})
	assert.Error(t, err)
}

func TestDocument_CorruptDocument(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/data/items.json", []byte("{not json"), 0o644))

	_, err := NewDocument[item](memFs, "/data/items.json").Read()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "/data/")
}

func TestDocument_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	doc := NewDocument[item](afero.NewMemMapFs(), "/data/items.json")

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = doc.Update(func(items []item) ([]item, error) {
				return append(items, item{}), nil
			})
		}()
	}
	wg.Wait()

	items, err := doc.Read()
	require.NoError(t, err)
	assert.Len(t, items, writers)
}
