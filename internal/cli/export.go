package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/atomicfile"
	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/export"
	"github.com/aidanlsb/rsnote/internal/note"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var exportCmd = commands.GenerateCobraCommand("export", runExport, completeNotes)

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	n, err := getStore().Get(args[0])
	if err != nil {
		return handleNoteError(err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, n); err != nil {
		return handleError(ErrInternal, err, "")
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":      n.ID,
				"format":  format,
				"content": buf.String(),
			}, nil)
			return nil
		}
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	path := config.ExpandHome(output)
	// A directory gets a file named after the note.
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		stem := strings.TrimSuffix(note.FileName(n.ID, n.Title), note.Extension)
		path = filepath.Join(path, stem+format.Extension())
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return handleError(ErrFileWriteError, fmt.Errorf("failed to write %s: %w", path, err), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"id":     n.ID,
			"format": format,
			"path":   path,
		}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Exported note %d to %s", n.ID, ui.FilePath(path)))
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
