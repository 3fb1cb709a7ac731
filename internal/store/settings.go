package store

import (
	"encoding/json"
	"fmt"

	"github.com/botforge/botforge/internal/model/settings"
)

const settingsKey = "settings"

// Settings persists the UI preference singleton.
type Settings struct {
	kv KV
}

// NewSettings returns a settings store backed by kv.
func NewSettings(kv KV) *Settings {
	return &Settings{kv: kv}
}

// Get returns the stored settings, or the defaults if none were saved yet.
func (s *Settings) Get() (settings.Settings, error) {
	raw, ok, err := s.kv.Get(settingsKey)
	if err != nil {
		return settings.Settings{}, err
	}
	if !ok {
		return settings.Default(), nil
	}
	var value settings.Settings
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return value, nil
}

// Put replaces the stored settings.
func (s *Settings) Put(value settings.Settings) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.kv.Set(settingsKey, string(raw))
}
