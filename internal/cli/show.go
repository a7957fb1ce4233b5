package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var showCmd = commands.GenerateCobraCommand("show", runShow, completeNotes)

func runShow(cmd *cobra.Command, args []string) error {
	n, err := getStore().Get(args[0])
	if err != nil {
		return handleNoteError(err)
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"note": n}, nil)
		return nil
	}

	if showMeta, _ := cmd.Flags().GetBool("meta"); showMeta {
		fmt.Print(noteMetadata(n.Summary))
		fmt.Println()
	}

	body := n.Body
	render, _ := cmd.Flags().GetBool("render")
	if render || getConfig().UI.RenderMarkdown {
		display := ui.NewDisplayContext(cmd.OutOrStdout())
		// Rendering is for people; pipes get the raw body.
		if render || display.IsTTY {
			rendered, err := ui.RenderMarkdown(body, display.TermWidth)
			if err != nil {
				logger.Debug("markdown rendering failed, printing raw body", "error", err)
			} else {
				body = rendered
			}
		}
	}

	fmt.Print(body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Println()
	}
	return nil
}

func noteMetadata(s note.Summary) string {
	return ui.KeyValues([][2]string{
		{"ID", strconv.FormatInt(s.ID, 10)},
		{"Title", ui.Accent.Render(s.Title)},
		{"Created", s.Created},
		{"Last Updated", s.LastUpdated},
		{"Path", ui.FilePath(s.Path)},
	})
}

func init() {
	rootCmd.AddCommand(showCmd)
}
