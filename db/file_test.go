package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	f := NewFileStoreAt(filepath.Join(t.TempDir(), "settings.json"))
	got, err := f.LoadOverrides(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")
	f := NewFileStoreAt(path)

	a := guildmodels.DefaultSettings()
	a.WelcomeChannel = "555"
	a.CardTemplate.Footer = "line one\nline two"
	require.NoError(t, f.SaveOverride(ctx, "guild-a", a))
	require.NoError(t, f.SaveOverride(ctx, "guild-b", guildmodels.DefaultSettings()))

	got, err := NewFileStoreAt(path).LoadOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	a.GuildID = "guild-a"
	assert.Equal(t, a, got["guild-a"])
	assert.Equal(t, "guild-b", got["guild-b"].GuildID)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f := NewFileStoreAt(path)
	_, err := f.LoadOverrides(context.Background())
	assert.Error(t, err)
	assert.Error(t, f.SaveOverride(context.Background(), "g", guildmodels.DefaultSettings()))
}

func TestFileStoreBacksSettingsStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")

	first := settings.NewStore(NewFileStoreAt(path), nil)
	_, err := first.SetCardField(ctx, "g", "subtitle", "Persisted")
	require.NoError(t, err)

	second := settings.NewStore(NewFileStoreAt(path), nil)
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, "Persisted", second.GetOrDefault("g").CardTemplate.Subtitle)
}

func TestNewFileStoreReadsEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	t.Setenv(settingsFileEnvVar, path)
	assert.Equal(t, path, NewFileStore().path)
}
