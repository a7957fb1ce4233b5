package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var searchCmd = commands.GenerateCobraCommand("search", runSearch, completeNotes)

func runSearch(cmd *cobra.Command, args []string) error {
	results, err := getStore().Search(args[0])
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"results": results}, &Meta{Count: len(results)})
		return nil
	}
	fmt.Print(renderSearchResults(results))
	return nil
}

// renderSearchResults renders the search table with a preview line under
// each content match.
func renderSearchResults(results []note.SearchResult) string {
	if len(results) == 0 {
		return "No notes found.\n"
	}
	tbl := ui.NewTable(
		ui.Column{Header: "ID", Width: idColumnWidth},
		ui.Column{Header: "Title", Width: titleColumnWidth},
		ui.Column{Header: "Last Updated", Width: timestampColumnWidth},
	)
	for _, r := range results {
		tbl.AddRow(strconv.FormatInt(r.Note.ID, 10), r.Note.Title, r.Note.LastUpdated)
		if r.Preview != "" {
			tbl.AddDetail(r.Preview)
		}
	}
	return tbl.String()
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
