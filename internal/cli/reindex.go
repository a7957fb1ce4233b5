package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var reindexCmd = commands.GenerateCobraCommand("reindex", runReindex, nil)

func runReindex(cmd *cobra.Command, args []string) error {
	stats, err := getStore().Reindex()
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(stats, nil)
		return nil
	}

	fmt.Println(ui.Successf("Indexed %s in %s", ui.Count(stats.Indexed, "note", "notes"), ui.FilePath(getStore().Dir())))
	fmt.Print(ui.KeyValues([][2]string{
		{"Assigned IDs", strconv.Itoa(stats.Adopted)},
		{"Removed", strconv.Itoa(stats.Removed)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
	}))
	if stats.Skipped > 0 {
		fmt.Println(ui.Hint("Skipped files have no title/created header and are not notes."))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
