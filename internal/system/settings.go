package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/abhisek/mathblat/internal/store"
)

// Setting categories.
const (
	CategoryGame         = "Game"
	CategoryAudio        = "Audio"
	CategoryGraphics     = "Graphics"
	CategoryLocalization = "Localization"
	CategoryPlayer       = "Player"
)

var errNoSettings = errors.New("no settings store configured")

// DefaultSettings returns the built-in value of every known setting.
func DefaultSettings() map[string]map[string]any {
	return map[string]map[string]any{
		CategoryGame: {
			"Difficulty":     "EASY",
			"LastPlayerName": "Player",
			"Volume":         1.0,
		},
		CategoryAudio: {
			"MasterVolume": 1.0,
			"MusicVolume":  0.8,
			"SFXVolume":    1.0,
			"EnableSound":  true,
		},
		CategoryGraphics: {
			"Brightness":        1.0,
			"ShowParticles":     true,
			"AnimationsEnabled": true,
		},
		CategoryLocalization: {
			"Language":   "EN",
			"DateFormat": "YYYY-MM-DD",
		},
		CategoryPlayer: {
			"TotalGamesPlayed": 0,
			"TotalScore":       0,
			"LastPlayedDate":   "",
		},
	}
}

// LoadSetting reads a setting into T. A missing setting yields def with
// Defaulted set. A read or decode failure yields def with Err set.
func LoadSetting[T any](ctx context.Context, s *System, category, key string, def T) Result[T] {
	if s.settings == nil {
		return defaulted(def)
	}
	raw, err := s.settings.Get(ctx, category, key)
	if errors.Is(err, store.ErrNotFound) {
		s.track("load_setting", nil)
		return defaulted(def)
	}
	if err != nil {
		s.track("load_setting", err)
		return failed(def, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		err = fmt.Errorf("decode setting %s.%s: %w", category, key, err)
		s.track("load_setting", err)
		return failed(def, err)
	}
	s.track("load_setting", nil)
	return ok(v)
}

// SaveSetting stores value as JSON.
func (s *System) SaveSetting(ctx context.Context, category, key string, value any) Result[bool] {
	if s.settings == nil {
		s.track("save_setting", errNoSettings)
		return failed(false, errNoSettings)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("encode setting %s.%s: %w", category, key, err)
		s.track("save_setting", err)
		return failed(false, err)
	}
	err = s.settings.Set(ctx, category, key, raw)
	s.track("save_setting", err)
	if err != nil {
		return failed(false, err)
	}
	return ok(true)
}

// SettingsCategory returns the defaults of a category merged with the
// stored values. Stored values are decoded from JSON.
func (s *System) SettingsCategory(ctx context.Context, category string) Result[map[string]any] {
	merged := make(map[string]any)
	maps.Copy(merged, DefaultSettings()[category])
	if s.settings == nil {
		return defaulted(merged)
	}

	stored, err := s.settings.Category(ctx, category)
	s.track("settings_category", err)
	if err != nil {
		return failed(merged, err)
	}
	for k, raw := range stored {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			s.track("settings_category", fmt.Errorf("decode setting %s.%s: %w", category, k, err))
			continue
		}
		merged[k] = v
	}
	if len(stored) == 0 {
		return defaulted(merged)
	}
	return ok(merged)
}

// ResetSettings deletes every stored setting so defaults apply again.
func (s *System) ResetSettings(ctx context.Context) Result[bool] {
	if s.settings == nil {
		return ok(true)
	}
	err := s.settings.Reset(ctx)
	s.track("reset_settings", err)
	if err != nil {
		return failed(false, err)
	}
	return ok(true)
}

// PlayerTotals are the lifetime counters kept in the Player category.
type PlayerTotals struct {
	GamesPlayed    int
	TotalScore     int
	LastPlayedDate string
}

// LoadPlayerTotals reads the lifetime counters.
func (s *System) LoadPlayerTotals(ctx context.Context) Result[PlayerTotals] {
	games := LoadSetting(ctx, s, CategoryPlayer, "TotalGamesPlayed", 0)
	total := LoadSetting(ctx, s, CategoryPlayer, "TotalScore", 0)
	date := LoadSetting(ctx, s, CategoryPlayer, "LastPlayedDate", "")
	t := PlayerTotals{GamesPlayed: games.Value, TotalScore: total.Value, LastPlayedDate: date.Value}
	if err := errors.Join(games.Err, total.Err, date.Err); err != nil {
		return failed(t, err)
	}
	if games.Defaulted && total.Defaulted && date.Defaulted {
		return defaulted(t)
	}
	return ok(t)
}

// RecordPlayerTotals adds a finished game to the lifetime counters.
func (s *System) RecordPlayerTotals(ctx context.Context, score int) Result[PlayerTotals] {
	cur := s.LoadPlayerTotals(ctx)
	if cur.Err != nil {
		return cur
	}
	t := PlayerTotals{
		GamesPlayed:    cur.Value.GamesPlayed + 1,
		TotalScore:     cur.Value.TotalScore + score,
		LastPlayedDate: s.clock.Now().Format(time.DateOnly),
	}
	for _, r := range []Result[bool]{
		s.SaveSetting(ctx, CategoryPlayer, "TotalGamesPlayed", t.GamesPlayed),
		s.SaveSetting(ctx, CategoryPlayer, "TotalScore", t.TotalScore),
		s.SaveSetting(ctx, CategoryPlayer, "LastPlayedDate", t.LastPlayedDate),
	} {
		if r.Err != nil {
			return failed(t, r.Err)
		}
	}
	return ok(t)
}
