package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var newCmd = commands.GenerateCobraCommand("new", runNew, completeNotes)

func runNew(cmd *cobra.Command, args []string) error {
	title := args[0]

	// Reject the title before asking for content.
	if err := getStore().CheckNew(title); err != nil {
		return handleNoteError(err)
	}

	content, err := resolveContent(cmd, args, 1, "")
	if err != nil {
		return err
	}

	sum, err := getStore().Create(title, content)
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"note": sum}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Note '%s' created successfully at %s (ID %d)", sum.Title, ui.FilePath(sum.Path), sum.ID))
	return nil
}

func init() {
	rootCmd.AddCommand(newCmd)
}
