package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.True(t, d.Looping)
	assert.Equal(t, 8, d.IntervalSeconds)
	assert.Empty(t, d.FilterPattern)
	assert.False(t, d.SkipFirstImage)
	assert.Equal(t, "show_all", d.UnmatchedPolicy)
}

func TestLoadEmptyStoreReturnsDefaults(t *testing.T) {
	store := openTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := Settings{
		Looping:         false,
		IntervalSeconds: 12,
		FilterPattern:   "Full{num}Pieces",
		SkipFirstImage:  true,
		UnmatchedPolicy: "skip_folder",
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadClampsInvalidInterval(t *testing.T) {
	store := openTestStore(t)

	in := Defaults()
	in.IntervalSeconds = -5
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, out.IntervalSeconds)
}

func TestSetKey(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetKey(KeyLooping, "false"))
	require.NoError(t, store.SetKey(KeyIntervalSeconds, "15"))
	require.NoError(t, store.SetKey(KeyFilterPattern, "Set{num}"))
	require.NoError(t, store.SetKey(KeySkipFirstImage, "true"))
	require.NoError(t, store.SetKey(KeyUnmatchedPolicy, "skip_folder"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Looping:         false,
		IntervalSeconds: 15,
		FilterPattern:   "Set{num}",
		SkipFirstImage:  true,
		UnmatchedPolicy: "skip_folder",
	}, cfg)
}

func TestSetKeyValidation(t *testing.T) {
	store := openTestStore(t)

	assert.Error(t, store.SetKey(KeyLooping, "yes"))
	assert.Error(t, store.SetKey(KeyIntervalSeconds, "soon"))
	assert.Error(t, store.SetKey(KeyIntervalSeconds, "0"))
	assert.Error(t, store.SetKey(KeyIntervalSeconds, "-3"))
	assert.Error(t, store.SetKey("font_size", "12"))

	// Nothing was persisted by the rejected writes.
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, nil)
	require.NoError(t, err)
	in := Defaults()
	in.IntervalSeconds = 20
	require.NoError(t, store.Save(in))
	require.NoError(t, store.Close())

	store, err = Open(dir, nil)
	require.NoError(t, err)
	defer store.Close()

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.IntervalSeconds)
}

func TestLoadIgnoresDamagedValue(t *testing.T) {
	dir := t.TempDir()
	var logged []string
	store, err := Open(dir, func(msg string) { logged = append(logged, msg) })
	require.NoError(t, err)
	defer store.Close()

	// Write garbage where a bool belongs, bypassing SetKey validation.
	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(KeyLooping), []byte("not json"))
	}))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Looping, "damaged value falls back to the default")
	assert.NotEmpty(t, logged)
}
