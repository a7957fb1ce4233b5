package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// RunFunc is the body of a generated command.
type RunFunc func(cmd *cobra.Command, args []string) error

// CompleteFunc returns completion candidates for one dynamic completion type.
type CompleteFunc func(kind, toComplete string) []string

// GenerateCobraCommand creates a Cobra command from registry metadata.
// Use, Short, Long, Args and flags come from the registry; run supplies the
// behaviour. complete may be nil.
func GenerateCobraCommand(name string, run RunFunc, complete CompleteFunc) *cobra.Command {
	meta, ok := Registry[name]
	if !ok {
		return nil
	}

	use := name
	for _, arg := range meta.Args {
		if arg.Required {
			use += fmt.Sprintf(" <%s>", arg.Name)
		} else {
			use += fmt.Sprintf(" [%s]", arg.Name)
		}
	}

	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) > 0 {
		longDesc += "\n\nExamples:\n"
		for _, ex := range meta.Examples {
			longDesc += "  " + ex + "\n"
		}
	}

	minArgs := 0
	for _, arg := range meta.Args {
		if arg.Required {
			minArgs++
		}
	}
	maxArgs := len(meta.Args)

	cmd := &cobra.Command{
		Use:   use,
		Short: meta.Description,
		Long:  longDesc,
	}

	switch {
	case maxArgs == 0:
		cmd.Args = cobra.NoArgs
	case minArgs == maxArgs:
		cmd.Args = cobra.ExactArgs(minArgs)
	default:
		cmd.Args = cobra.RangeArgs(minArgs, maxArgs)
	}

	for _, flag := range meta.Flags {
		switch flag.Type {
		case FlagTypeBool:
			cmd.Flags().BoolP(flag.Name, flag.Short, flag.Default == "true", flag.Description)
		default:
			cmd.Flags().StringP(flag.Name, flag.Short, flag.Default, flag.Description)
		}
	}

	if len(meta.Args) > 0 {
		cmd.ValidArgsFunction = generateCompletionFunc(meta.Args, complete)
	}

	if run != nil {
		cmd.RunE = run
	}
	return cmd
}

// generateCompletionFunc creates a shell completion function based on arg metadata.
func generateCompletionFunc(args []ArgMeta, complete CompleteFunc) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, completedArgs []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		argIndex := len(completedArgs)
		if argIndex >= len(args) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		arg := args[argIndex]

		if len(arg.Completions) > 0 {
			var matches []string
			for _, c := range arg.Completions {
				if strings.HasPrefix(c, toComplete) {
					matches = append(matches, c)
				}
			}
			return matches, cobra.ShellCompDirectiveNoFileComp
		}

		switch arg.DynamicComp {
		case "files":
			return nil, cobra.ShellCompDirectiveDefault
		case "":
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if complete == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return complete(arg.DynamicComp, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// GetCommandMeta returns the metadata for a command.
func GetCommandMeta(name string) (Meta, bool) {
	meta, ok := Registry[name]
	return meta, ok
}

// AllCommandNames returns all registered command names, sorted.
func AllCommandNames() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
