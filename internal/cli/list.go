package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/ui"
)

const (
	idColumnWidth        = 4
	titleColumnWidth     = 30
	timestampColumnWidth = 19
)

var listCmd = commands.GenerateCobraCommand("list", runList, completeNotes)

func runList(cmd *cobra.Command, args []string) error {
	notes, err := getStore().List()
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"notes": notes}, &Meta{Count: len(notes)})
		return nil
	}
	fmt.Print(renderNoteList(notes))
	return nil
}

// renderNoteList renders the list table, or "No notes found." when empty.
func renderNoteList(notes []note.Summary) string {
	if len(notes) == 0 {
		return "No notes found.\n"
	}
	tbl := ui.NewTable(
		ui.Column{Header: "ID", Width: idColumnWidth},
		ui.Column{Header: "Title", Width: titleColumnWidth, Truncate: true},
		ui.Column{Header: "Created", Width: timestampColumnWidth},
		ui.Column{Header: "Last Updated", Width: timestampColumnWidth},
	)
	for _, n := range notes {
		tbl.AddRow(strconv.FormatInt(n.ID, 10), n.Title, n.Created, n.LastUpdated)
	}
	return tbl.String()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
