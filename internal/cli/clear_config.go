package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/commands"
	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/ui"
)

var clearConfigCmd = commands.GenerateCobraCommand("clear-config", runClearConfig, nil)

func runClearConfig(cmd *cobra.Command, args []string) error {
	existed := config.Exists(resolvedConfigPath)
	if err := config.Clear(resolvedConfigPath); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"path":    resolvedConfigPath,
			"removed": existed,
		}, nil)
		return nil
	}
	if existed {
		fmt.Println(ui.Successf("Removed config file %s", ui.FilePath(resolvedConfigPath)))
	} else {
		fmt.Println(ui.Infof("No config file at %s", ui.FilePath(resolvedConfigPath)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(clearConfigCmd)
}
