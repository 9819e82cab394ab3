package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	settingsKeyNotificationChannelID = "notification_channel_id"
	settingsKeyIcalUrl               = "ical_url"
	settingsKeyPingEveryone          = "ping_everyone"
)

// SettingsStore is a small JSON-object file with typed accessors for the
// three known keys. Unknown keys read from disk are kept in the map and
// written back verbatim. Loaded once at construction; every Set rewrites
// the whole file.
type SettingsStore struct {
	mu       sync.RWMutex
	path     string
	settings map[string]any
}

// NewSettingsStore loads settings from path, writing out the defaults
// when no file exists yet. A corrupt file degrades to defaults.
func NewSettingsStore(path string) *SettingsStore {
	store := &SettingsStore{
		path: path,
		settings: map[string]any{
			settingsKeyNotificationChannelID: nil,
			settingsKeyIcalUrl:               nil,
			settingsKeyPingEveryone:          true,
		},
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Info("no settings file, writing defaults", "path", path)
		if err := store.persist(); err != nil {
			slog.Error("can't write default settings", "path", path, "error", err)
		}
	case err != nil:
		slog.Error("can't read settings, using defaults", "path", path, "error", err)
	default:
		loaded := make(map[string]any)
		// decode numbers as json.Number; channel IDs are Discord
		// snowflakes and would lose precision as float64
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&loaded); err != nil {
			slog.Error("can't decode settings, using defaults", "path", path, "error", err)
		} else {
			for key, value := range loaded {
				store.settings[key] = value
			}
			slog.Info("loaded settings", "path", path)
		}
	}

	return store
}

// persist rewrites the settings file through a temp-file rename. Caller
// must hold the lock.
func (store *SettingsStore) persist() error {
	data, err := json.MarshalIndent(store.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("can't encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(store.path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("can't create temp settings file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("can't write temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("can't close temp settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), store.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("can't replace settings file: %w", err)
	}
	return nil
}

// set stores a value under key and rewrites the file immediately.
func (store *SettingsStore) set(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.settings[key] = value
	return store.persist()
}

// NotificationChannelID returns the digest channel ID, 0 when unset.
func (store *SettingsStore) NotificationChannelID() int64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	switch value := store.settings[settingsKeyNotificationChannelID].(type) {
	case int64:
		return value
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			slog.Error("bad notification_channel_id in settings", "value", value, "error", err)
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func (store *SettingsStore) SetNotificationChannelID(channelID int64) error {
	return store.set(settingsKeyNotificationChannelID, channelID)
}

// IcalUrl returns the stored calendar URL, "" when unset.
func (store *SettingsStore) IcalUrl() string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if value, ok := store.settings[settingsKeyIcalUrl].(string); ok {
		return value
	}
	return ""
}

func (store *SettingsStore) SetIcalUrl(url string) error {
	return store.set(settingsKeyIcalUrl, url)
}

// PingEveryone reports whether the daily digest pings @everyone for
// urgent event types. Defaults to true when unset.
func (store *SettingsStore) PingEveryone() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if value, ok := store.settings[settingsKeyPingEveryone].(bool); ok {
		return value
	}
	return true
}

func (store *SettingsStore) SetPingEveryone(enabled bool) error {
	return store.set(settingsKeyPingEveryone, enabled)
}

// TogglePingEveryone flips the ping flag, persists it and returns the
// new value.
func (store *SettingsStore) TogglePingEveryone() (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	current := true
	if value, ok := store.settings[settingsKeyPingEveryone].(bool); ok {
		current = value
	}
	store.settings[settingsKeyPingEveryone] = !current
	if err := store.persist(); err != nil {
		return !current, err
	}
	return !current, nil
}
