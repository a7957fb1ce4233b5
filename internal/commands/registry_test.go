package commands

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestRegistryHasRequiredCommands verifies that essential commands exist.
func TestRegistryHasRequiredCommands(t *testing.T) {
	requiredCommands := []string{
		"new", "list", "show", "update", "delete", "search", "clear-config",
	}

	for _, cmd := range requiredCommands {
		if _, ok := Registry[cmd]; !ok {
			t.Errorf("Registry missing required command %q", cmd)
		}
	}
}

// TestRegistryMetadataComplete verifies all commands have required metadata.
func TestRegistryMetadataComplete(t *testing.T) {
	for name, meta := range Registry {
		t.Run(name, func(t *testing.T) {
			if meta.Name != name {
				t.Errorf("Name = %q, want %q", meta.Name, name)
			}
			if meta.Description == "" {
				t.Error("Command has empty Description")
			}

			seenOptional := false
			for i, arg := range meta.Args {
				if arg.Name == "" {
					t.Errorf("Arg %d has empty Name", i)
				}
				if arg.Description == "" {
					t.Errorf("Arg %q has empty Description", arg.Name)
				}
				if arg.Required && seenOptional {
					t.Errorf("Required arg %q follows an optional one", arg.Name)
				}
				seenOptional = seenOptional || !arg.Required
			}

			for i, flag := range meta.Flags {
				if flag.Name == "" {
					t.Errorf("Flag %d has empty Name", i)
				}
				if flag.Description == "" {
					t.Errorf("Flag %q has empty Description", flag.Name)
				}
				if flag.Type == "" {
					t.Errorf("Flag %q has empty Type", flag.Name)
				}
			}

			if meta.Mutates && !meta.NeedsStore {
				t.Error("Mutating command does not open the store")
			}
		})
	}
}

func TestStoreFreeCommands(t *testing.T) {
	for _, name := range []string{"clear-config", "version"} {
		if Registry[name].NeedsStore {
			t.Errorf("%s should not need the notes directory", name)
		}
	}
}

// TestCobraCommandGeneration verifies Cobra command generation works.
func TestCobraCommandGeneration(t *testing.T) {
	cmd := GenerateCobraCommand("update", nil, nil)
	if cmd == nil {
		t.Fatal("GenerateCobraCommand returned nil for 'update'")
	}

	if cmd.Use != "update <identifier> [content]" {
		t.Errorf("Use = %q", cmd.Use)
	}

	edit := cmd.Flags().Lookup("edit")
	if edit == nil || edit.Shorthand != "e" {
		t.Fatalf("edit flag = %+v", edit)
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected error for missing identifier")
	}
	if err := cmd.Args(cmd, []string{"1", "body"}); err != nil {
		t.Errorf("two args rejected: %v", err)
	}
	if err := cmd.Args(cmd, []string{"1", "body", "extra"}); err == nil {
		t.Error("expected error for three args")
	}
}

func TestCobraCommandWithNoArgs(t *testing.T) {
	cmd := GenerateCobraCommand("list", nil, nil)
	if cmd == nil {
		t.Fatal("GenerateCobraCommand returned nil for 'list'")
	}
	if cmd.Use != "list" {
		t.Errorf("Use = %q, want 'list'", cmd.Use)
	}
	if err := cmd.Args(cmd, []string{"x"}); err == nil {
		t.Error("expected list to reject arguments")
	}
}

func TestCobraCommandFlagDefaults(t *testing.T) {
	cmd := GenerateCobraCommand("export", nil, nil)
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		t.Fatal(err)
	}
	if format != "markdown" {
		t.Errorf("format default = %q", format)
	}
}

func TestDynamicCompletion(t *testing.T) {
	var gotKind string
	complete := func(kind, toComplete string) []string {
		gotKind = kind
		return []string{"Shopping List"}
	}
	cmd := GenerateCobraCommand("show", nil, complete)

	got, directive := cmd.ValidArgsFunction(cmd, nil, "Sho")
	if gotKind != "notes" {
		t.Errorf("completion kind = %q", gotKind)
	}
	if len(got) != 1 || got[0] != "Shopping List" {
		t.Errorf("completions = %v", got)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}

	got, _ = cmd.ValidArgsFunction(cmd, []string{"1"}, "")
	if got != nil {
		t.Errorf("expected no completions past the last arg, got %v", got)
	}
}

// TestAllCommandsGeneratable verifies all registry commands can generate Cobra commands.
func TestAllCommandsGeneratable(t *testing.T) {
	for _, name := range AllCommandNames() {
		t.Run(name, func(t *testing.T) {
			if cmd := GenerateCobraCommand(name, nil, nil); cmd == nil {
				t.Errorf("GenerateCobraCommand returned nil for %q", name)
			}
		})
	}
}
