package cli

import (
	"strconv"
	"strings"

	"github.com/aidanlsb/rsnote/internal/config"
	"github.com/aidanlsb/rsnote/internal/note"
)

// completeNotes offers note titles and IDs for identifier arguments. It never
// prompts or writes: without a config or an existing index there is nothing
// to offer.
func completeNotes(kind, toComplete string) []string {
	if kind != "notes" {
		return nil
	}

	path := config.ResolvePath(configPath)
	loaded := &config.Config{}
	if config.Exists(path) {
		c, err := config.LoadFrom(path)
		if err != nil {
			return nil
		}
		loaded = c
	} else if !notesDirOverridden() {
		return nil
	}

	notes, err := note.ListIndexed(config.NotesDirFor(loaded, notesDirFlag))
	if err != nil {
		return nil
	}
	return matchCompletions(notes, toComplete)
}

func matchCompletions(notes []note.Summary, toComplete string) []string {
	prefix := strings.ToLower(toComplete)
	var out []string
	for _, n := range notes {
		id := strconv.FormatInt(n.ID, 10)
		switch {
		case strings.HasPrefix(strings.ToLower(n.Title), prefix):
			out = append(out, n.Title+"\t"+"ID "+id)
		case strings.HasPrefix(id, toComplete):
			out = append(out, id+"\t"+n.Title)
		}
	}
	return out
}
