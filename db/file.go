package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
)

const settingsFileEnvVar string = "WELCOMER_STORAGE_FILE"
const settingsFileDefault string = "welcomer_settings.json"

//FileStore keeps guild settings in a single JSON file which is rewritten atomically on every change
type FileStore struct {
	mu   sync.Mutex
	path string
}

//NewFileStore creates a FileStore at the path named by the relevant environment variable
func NewFileStore() *FileStore {
	path, exists := os.LookupEnv(settingsFileEnvVar)
	if !exists {
		logrus.Warnf("Settings file path was not provided, falling back to default `%v`", settingsFileDefault)
		path = settingsFileDefault
	}
	return NewFileStoreAt(path)
}

//NewFileStoreAt creates a FileStore backed by the file at path
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

//LoadOverrides reads every guild's settings from the file. A missing file holds no overrides.
func (f *FileStore) LoadOverrides(ctx context.Context) (map[string]guildmodels.CommunitySettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

//SaveOverride replaces one guild's settings and rewrites the file
func (f *FileStore) SaveOverride(ctx context.Context, guildID string, s guildmodels.CommunitySettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.readLocked()
	if err != nil {
		return err
	}
	s.GuildID = guildID
	all[guildID] = s

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode guild settings: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		logrus.Warnf("Failed to write settings file %v due to error %v", f.path, err)
		return fmt.Errorf("failed to write settings file %v: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) readLocked() (map[string]guildmodels.CommunitySettings, error) {
	all := make(map[string]guildmodels.CommunitySettings)
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return all, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read settings file %v: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %v: %w", f.path, err)
	}
	return all, nil
}
