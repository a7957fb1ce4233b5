package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/rsnote/internal/atomicfile"
)

type persistedConfig struct {
	NotesDir *string              `toml:"notes_dir,omitempty"`
	Editor   *string              `toml:"editor,omitempty"`
	UI       *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent         *string `toml:"accent,omitempty"`
	RenderMarkdown *bool   `toml:"render_markdown,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		NotesDir: nonEmptyPtr(cfg.NotesDir),
		Editor:   nonEmptyPtr(cfg.Editor),
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	if accent != nil || cfg.UI.RenderMarkdown {
		out.UI = &persistedUISettings{Accent: accent}
		if cfg.UI.RenderMarkdown {
			render := true
			out.UI.RenderMarkdown = &render
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// Clear deletes the config file at path. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove config %s: %w", path, err)
	}
	return nil
}
