package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var deleteCmd = commands.GenerateCobraCommand("delete", runDelete, completeNotes)

func runDelete(cmd *cobra.Command, args []string) error {
	identifier := args[0]

	target, err := getStore().Get(identifier)
	if err != nil {
		return handleNoteError(err)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && shouldPromptForConfirm() {
		if !promptForConfirm(fmt.Sprintf("Delete note %d '%s'?", target.ID, target.Title)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Delete by ID: the title lookup above already picked the note.
	if err := getStore().Delete(fmt.Sprintf("%d", target.ID)); err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"deleted": target.Summary}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Deleted note %d '%s'", target.ID, target.Title))
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
