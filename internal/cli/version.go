package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/rsnote/internal/buildinfo"
	"github.com/aidanlsb/rsnote/internal/commands"
)

const defaultModulePath = "github.com/aidanlsb/rsnote"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = commands.GenerateCobraCommand("version", runVersion, nil)

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentVersionInfo()

	if isJSONOutput() {
		outputSuccess(info, nil)
		return nil
	}

	fmt.Printf("rsnote %s\n", info.Version)
	fmt.Printf("module: %s\n", info.ModulePath)
	if info.Commit != "" {
		fmt.Printf("commit: %s\n", info.Commit)
	}
	if info.CommitTime != "" {
		fmt.Printf("commit_time: %s\n", info.CommitTime)
	}
	fmt.Printf("go: %s\n", info.GoVersion)
	fmt.Printf("platform: %s/%s\n", info.GOOS, info.GOARCH)
	fmt.Printf("modified: %t\n", info.Modified)
	return nil
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		applyLdflagsFallback(&info)
		return info
	}

	if bi.Main.Path != "" {
		info.ModulePath = bi.Main.Path
	}
	info.Version = normalizeVersion(bi.Main.Version)
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	if val := buildSetting(bi, "GOOS"); val != "" {
		info.GOOS = val
	}
	if val := buildSetting(bi, "GOARCH"); val != "" {
		info.GOARCH = val
	}

	info.Commit = buildSetting(bi, "vcs.revision")
	info.CommitTime = buildSetting(bi, "vcs.time")
	info.Modified = strings.EqualFold(buildSetting(bi, "vcs.modified"), "true")
	applyLdflagsFallback(&info)
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// applyLdflagsFallback fills gaps from values injected at release time.
func applyLdflagsFallback(info *versionInfo) {
	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
