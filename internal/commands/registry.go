// Package commands provides a central registry of rsnote CLI commands.
// This registry is the single source of truth for command metadata.
package commands

// Meta defines metadata for a CLI command, used to generate its Cobra
// command and help text.
type Meta struct {
	Name        string     // Command name (e.g., "new", "show")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples

	// NeedsStore is set for commands that read or write notes. Only these
	// trigger the first-run prompt and open the notes directory.
	NeedsStore bool
	// Mutates is set for commands that change files in the notes directory.
	Mutates bool
}

// ArgMeta defines a positional argument.
type ArgMeta struct {
	Name        string   // Argument name
	Description string   // Description
	Required    bool     // Is this argument required?
	Completions []string // Static completions (if any)
	DynamicComp string   // Dynamic completion type: "notes", "files"
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "file", "format")
	Short       string   // Short flag (e.g., "f" for -f)
	Description string   // Description
	Type        FlagType // Type of flag
	Default     string   // Default value
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
)

// identifierArg is shared by every command that looks up one note.
var identifierArg = ArgMeta{
	Name:        "identifier",
	Description: "Note ID (as shown by list) or exact title",
	Required:    true,
	DynamicComp: "notes",
}

var contentFlags = []FlagMeta{
	{Name: "file", Short: "f", Description: "Read content from a file", Type: FlagTypeString},
	{Name: "edit", Short: "e", Description: "Write content in $EDITOR", Type: FlagTypeBool},
}

// Registry holds all registered commands.
var Registry = map[string]Meta{
	"new": {
		Name:        "new",
		Description: "Create a new note",
		LongDesc: `Creates a note with the given title.

Content is taken from the first source available:
  1. the content argument
  2. --file <path>
  3. --edit, which opens your editor on an empty buffer
  4. standard input, read until EOF (press Ctrl+D when typing interactively)

Titles must be unique. Each note gets a numeric ID that never changes.`,
		Args: []ArgMeta{
			{Name: "title", Description: "Note title", Required: true},
			{Name: "content", Description: "Note content"},
		},
		Flags: contentFlags,
		Examples: []string{
			`rsnote new "Shopping List" "milk, eggs"`,
			`rsnote new "Meeting" --file agenda.md`,
			`echo "remember this" | rsnote new "Inbox"`,
		},
		NeedsStore: true,
		Mutates:    true,
	},
	"list": {
		Name:        "list",
		Description: "List all notes",
		LongDesc: `Lists every note ordered by ID, with its title (up to 30 characters),
creation time and last update time.`,
		Examples: []string{
			"rsnote list",
			"rsnote list --json",
		},
		NeedsStore: true,
	},
	"show": {
		Name:        "show",
		Description: "Print a note's content",
		LongDesc: `Prints the body of a note. The identifier is the note's ID or its exact title.
Numeric identifiers are always treated as IDs.`,
		Args: []ArgMeta{identifierArg},
		Flags: []FlagMeta{
			{Name: "render", Short: "r", Description: "Render markdown for the terminal", Type: FlagTypeBool},
			{Name: "meta", Short: "m", Description: "Print the note's metadata before the body", Type: FlagTypeBool},
		},
		Examples: []string{
			"rsnote show 3",
			`rsnote show "Shopping List" --render`,
		},
		NeedsStore: true,
	},
	"update": {
		Name:        "update",
		Description: "Replace a note's content",
		LongDesc: `Replaces the whole body of a note. The ID, title and creation time are kept;
the last-updated time is set to now.

Content sources are the same as for 'new'. With --edit the editor starts with
the current body.`,
		Args: []ArgMeta{
			identifierArg,
			{Name: "content", Description: "New note content"},
		},
		Flags: contentFlags,
		Examples: []string{
			`rsnote update 3 "milk, eggs, bread"`,
			`rsnote update "Shopping List" --edit`,
		},
		NeedsStore: true,
		Mutates:    true,
	},
	"delete": {
		Name:        "delete",
		Description: "Delete a note",
		LongDesc: `Deletes a note's file. Its ID is not reused.

When run interactively you are asked to confirm; use --force to skip the prompt.`,
		Args: []ArgMeta{identifierArg},
		Flags: []FlagMeta{
			{Name: "force", Description: "Skip confirmation prompt", Type: FlagTypeBool},
		},
		Examples: []string{
			"rsnote delete 3",
			`rsnote delete "Old Draft" --force`,
		},
		NeedsStore: true,
		Mutates:    true,
	},
	"search": {
		Name:        "search",
		Description: "Search notes by title or content",
		LongDesc: `Finds notes whose title or content contains the keyword, ignoring case.
Content matches show a short preview around the first occurrence.`,
		Args: []ArgMeta{
			{Name: "keyword", Description: "Text to search for", Required: true},
		},
		Examples: []string{
			"rsnote search milk",
			`rsnote search "project plan" --json`,
		},
		NeedsStore: true,
	},
	"clear-config": {
		Name:        "clear-config",
		Description: "Delete the configuration file",
		LongDesc: `Deletes the configuration file. Notes are not touched.
The next command that needs the notes directory asks for it again.`,
		Examples: []string{"rsnote clear-config"},
	},
	"reindex": {
		Name:        "reindex",
		Description: "Rebuild the note index",
		LongDesc: `Rescans the notes directory and rebuilds the index.

Files without an ID (for example notes written by older releases) are given
one, in order of creation. Rows for files that no longer exist are dropped.`,
		Examples:   []string{"rsnote reindex"},
		NeedsStore: true,
		Mutates:    true,
	},
	"export": {
		Name:        "export",
		Description: "Export a note as markdown, YAML or HTML",
		LongDesc: `Writes a note in another format:
  markdown  YAML frontmatter followed by the body (default)
  yaml      a single YAML document including the body
  html      a standalone page with the body rendered from markdown`,
		Args: []ArgMeta{identifierArg},
		Flags: []FlagMeta{
			{Name: "format", Description: "Output format: markdown, yaml, html", Type: FlagTypeString, Default: "markdown"},
			{Name: "output", Short: "o", Description: "Write to a file, or into a directory as <id>-<title>.<ext>, instead of stdout", Type: FlagTypeString},
		},
		Examples: []string{
			"rsnote export 3",
			`rsnote export "Shopping List" --format html -o list.html`,
		},
		NeedsStore: true,
	},
	"version": {
		Name:        "version",
		Description: "Show version information",
		Examples:    []string{"rsnote version", "rsnote version --json"},
	},
}
