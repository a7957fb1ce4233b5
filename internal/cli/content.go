package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/editor"
)

// stdin is the content source of last resort. Tests replace it.
var stdin io.Reader = os.Stdin

func stdinIsTerminal() bool {
	f, ok := stdin.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// resolveContent picks the note body for new and update: the positional
// argument at argIndex, then --file, then --edit, then stdin. initial seeds
// the editor buffer.
func resolveContent(cmd *cobra.Command, args []string, argIndex int, initial string) (string, error) {
	if len(args) > argIndex {
		return args[argIndex], nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(config.ExpandHome(path))
		if err != nil {
			return "", handleError(ErrFileReadError, fmt.Errorf("failed to read content file: %w", err), "")
		}
		return string(data), nil
	}

	if edit, _ := cmd.Flags().GetBool("edit"); edit {
		session := editor.Session{Command: getConfig().GetEditor(), Stdin: stdin}
		logger.Debug("opening editor", "editor", editor.CommandName(session.Command))
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		content, err := session.Edit(ctx, initial)
		if err != nil {
			return "", handleError(ErrEditorFailed, err, "Set 'editor' in the config file or $EDITOR")
		}
		return content, nil
	}

	if stdinIsTerminal() && !isJSONOutput() {
		fmt.Println("Enter your note content (press Ctrl+D when finished):")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", handleError(ErrFileReadError, fmt.Errorf("failed to read stdin: %w", err), "")
	}
	return string(data), nil
}
