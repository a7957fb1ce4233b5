// Package config handles global rsnote configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// appDir is the directory name used under the user config directory.
	appDir = "rsnote"

	// legacyFileName is the flat config file written by older rsnote releases
	// directly inside the user config directory.
	legacyFileName = "rsnote.toml"

	// DefaultNotesDirName is the notes directory created under $HOME when the
	// user accepts the default on first run.
	DefaultNotesDirName = "rsnotes_storage"

	// EnvNotesDir overrides the configured notes directory without persisting it.
	EnvNotesDir = "RSNOTE_DIR"
)

var (
	// ErrParse indicates the config file exists but is not valid TOML.
	ErrParse = errors.New("config parse error")
	// ErrSerialize indicates the config could not be encoded for saving.
	ErrSerialize = errors.New("config serialize error")
)

// Config represents the global rsnote configuration.
type Config struct {
	// NotesDir is the directory that holds one file per note.
	NotesDir string `toml:"notes_dir"`

	// Editor is used by --edit (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// UI controls optional CLI presentation preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI presentation preferences.
type UIConfig struct {
	// Accent is an optional accent color: ANSI code ("0" to "255") or "#RRGGBB".
	Accent string `toml:"accent"`

	// RenderMarkdown makes `show` render bodies as markdown by default.
	RenderMarkdown bool `toml:"render_markdown"`
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	config.NotesDir = ExpandHome(config.NotesDir)
	return &config, nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// ResolvePath returns the config path to use: the explicit override when set,
// otherwise DefaultPath.
func ResolvePath(override string) string {
	if p := strings.TrimSpace(override); p != "" {
		return ExpandHome(p)
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/rsnote/config.toml first (XDG style), then the OS-specific
// location, then the legacy flat rsnote.toml. When none exist the OS-specific
// location is returned so first-run setup writes there.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", appDir, "config.toml")
		if Exists(xdgPath) {
			return xdgPath
		}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Last resort fallback
		return filepath.Join(".", "config.toml")
	}

	osPath := filepath.Join(configDir, appDir, "config.toml")
	if Exists(osPath) {
		return osPath
	}
	if legacy := filepath.Join(configDir, legacyFileName); Exists(legacy) {
		return legacy
	}
	return osPath
}

// DefaultNotesDir returns ~/rsnotes_storage, or ./rsnotes_storage when the home
// directory is unknown.
func DefaultNotesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, DefaultNotesDirName)
}

// NotesDirFor resolves the notes directory for this invocation:
// explicit flag > $RSNOTE_DIR > config > default.
func NotesDirFor(cfg *Config, flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return ExpandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvNotesDir)); v != "" {
		return ExpandHome(v)
	}
	if cfg != nil && strings.TrimSpace(cfg.NotesDir) != "" {
		return cfg.NotesDir
	}
	return DefaultNotesDir()
}

// ExpandHome expands a leading "~" to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// GetEditor returns the editor to use, falling back to $VISUAL and $EDITOR.
func (c *Config) GetEditor() string {
	if c != nil && c.Editor != "" {
		return c.Editor
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}
