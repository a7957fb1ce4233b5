// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var (
	// Global flags
	configPath   string
	notesDirFlag string
	verbose      bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	store              *note.Store
	logger             = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rsnote",
	Short: "rsnote - plain-text notes from the command line",
	Long: `rsnote keeps notes as plain-text files in a single directory.

Each note has a title, a creation time, a last-updated time and a body.
Notes are addressed by their numeric ID (see 'rsnote list') or exact title.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Argument errors above this point still print usage; runtime errors don't.
		cmd.SilenceUsage = true
		logger = newLogger(os.Stderr, verbose)
		resolvedConfigPath = config.ResolvePath(configPath)

		meta, ok := commands.GetCommandMeta(cmd.Name())
		if !ok || !meta.NeedsStore {
			return nil
		}
		return openStore()
	},
}

// errReported marks an error that has already been written as JSON.
var errReported = errors.New("error already reported")

// Execute runs the CLI. A non-nil error means the process should exit 1;
// the error has already been shown to the user.
func Execute() error {
	err := rootCmd.Execute()
	closeStore()
	if err == nil || errors.Is(err, errReported) {
		return err
	}
	if jsonOutput {
		outputError(ErrInvalidInput, err.Error(), nil, "Run 'rsnote --help' for usage")
		return err
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&notesDirFlag, "notes-dir", "", "Notes directory (overrides config and $"+config.EnvNotesDir+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug output to stderr")
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openStore loads the config, asking for a notes directory on first run,
// and opens the notes store.
func openStore() error {
	loaded, err := loadOrInitConfig()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix the config file or run 'rsnote clear-config'")
	}
	cfg = loaded
	ui.ConfigureTheme(cfg.UI.Accent)

	dir := config.NotesDirFor(cfg, notesDirFlag)
	logger.Debug("opening notes directory", "dir", dir, "config", resolvedConfigPath)

	s, err := note.Open(dir, note.WithLogger(logger))
	if err != nil {
		return handleNoteError(err)
	}
	store = s
	return nil
}

// loadOrInitConfig returns the config at resolvedConfigPath. When none exists
// and no notes directory override is given, the first-run prompt creates one.
// Without a terminal on stdin the default directory is accepted, so piped
// note content is never mistaken for an answer.
func loadOrInitConfig() (*config.Config, error) {
	if config.Exists(resolvedConfigPath) {
		return config.LoadFrom(resolvedConfigPath)
	}
	if notesDirOverridden() {
		return &config.Config{}, nil
	}

	var in io.Reader = os.Stdin
	if !stdinIsTerminal() {
		in = strings.NewReader("")
	}
	var out io.Writer = os.Stdout
	if jsonOutput {
		out = os.Stderr
	}
	return config.FirstRun(in, out, resolvedConfigPath)
}

func notesDirOverridden() bool {
	return strings.TrimSpace(notesDirFlag) != "" || strings.TrimSpace(os.Getenv(config.EnvNotesDir)) != ""
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Debug("failed to close index", "error", err)
	}
	store = nil
}

// getStore returns the store opened by PersistentPreRunE.
func getStore() *note.Store {
	return store
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}
