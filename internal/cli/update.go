package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var updateCmd = commands.GenerateCobraCommand("update", runUpdate, completeNotes)

func runUpdate(cmd *cobra.Command, args []string) error {
	identifier := args[0]

	// Resolve first so a bad identifier fails before any content is collected.
	current, err := getStore().Get(identifier)
	if err != nil {
		return handleNoteError(err)
	}

	content, err := resolveContent(cmd, args, 1, current.Body)
	if err != nil {
		return err
	}

	sum, err := getStore().Update(identifier, content)
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"note": sum}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Note '%s' updated (ID %d)", sum.Title, sum.ID))
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
