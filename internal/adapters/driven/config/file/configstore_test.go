package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.NoFileExists(t, path, "loading must not create the file")
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	expected, err := DefaultPath()
	if err != nil {
		t.Skip("Cannot determine config directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, expected, store.Path())
	assert.Equal(t, DefaultFileName, filepath.Base(store.Path()))
}

func TestConfigStore_Getters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("api.url", "https://example.org/w/api.php"))
	require.NoError(t, store.Set("api.requests_per_second", 1.5))
	require.NoError(t, store.Set("api.retries", 3))
	require.NoError(t, store.Set("git.enabled", true))
	require.NoError(t, store.Set("mirror.categories", []string{"Simple"}))

	assert.Equal(t, "https://example.org/w/api.php", store.GetString("api.url"))
	assert.Equal(t, 1.5, store.GetFloat("api.requests_per_second"))
	assert.Equal(t, 3.0, store.GetFloat("api.retries"))
	assert.Equal(t, 3, store.GetInt("api.retries"))
	assert.True(t, store.GetBool("git.enabled"))
	assert.Equal(t, []string{"Simple"}, store.GetStringSlice("mirror.categories"))

	// Wrong types and missing keys fall back to zero values
	assert.Equal(t, "", store.GetString("git.enabled"))
	assert.Equal(t, 0, store.GetInt("api.url"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
	assert.False(t, store.GetBool("api.url"))
	assert.Nil(t, store.GetStringSlice("api.url"))
}

func TestConfigStore_SetInvalidKey(t *testing.T) {
	store := newStore(t)

	assert.Error(t, store.Set("", "x"))
	assert.Error(t, store.Set(".api", "x"))
	assert.Error(t, store.Set("api.", "x"))
}

func TestConfigStore_SetDoesNotPersist(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("api.url", "x"))

	assert.NoFileExists(t, store.Path())
}

func TestConfigStore_SaveWritesNestedTables(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("api.url", "https://example.org/w/api.php"))
	require.NoError(t, store.Set("git.enabled", false))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[api]")
	assert.Contains(t, string(data), "[git]")
	assert.NotContains(t, string(data), "api.url")
}

func TestConfigStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	store1, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store1.Set("mirror.dir", "/srv/mirror"))
	require.NoError(t, store1.Set("api.requests_per_second", 2))
	require.NoError(t, store1.Set("git.enabled", true))
	require.NoError(t, store1.Set("mirror.categories", []string{"Simple", "Programming_Tasks"}))
	require.NoError(t, store1.Save())

	store2, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/mirror", store2.GetString("mirror.dir"))
	assert.Equal(t, 2, store2.GetInt("api.requests_per_second"))
	assert.Equal(t, 2.0, store2.GetFloat("api.requests_per_second"))
	assert.True(t, store2.GetBool("git.enabled"))
	assert.Equal(t, []string{"Simple", "Programming_Tasks"}, store2.GetStringSlice("mirror.categories"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("test", "value"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nurl = "), 0o600))

	_, err := NewConfigStore(path)

	assert.Error(t, err)
}

func TestConfigStore_SaveConflictingKeys(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("api", "flat"))
	require.NoError(t, store.Set("api.url", "nested"))

	assert.Error(t, store.Save())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"api": map[string]any{"url": "u", "limits": map[string]any{"rps": 2}},
		"top": true,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"api.url": "u", "api.limits.rps": 2, "top": true}, flat)

	back, err := nestMap(flat)
	require.NoError(t, err)
	assert.Equal(t, nested, back)
}
