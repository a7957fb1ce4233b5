package note

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/rsnote/internal/atomicfile"
	"github.com/aidanlsb/rsnote/internal/index"
)

// scannedFile is a directory entry that parsed as a note.
type scannedFile struct {
	name   string
	info   fs.FileInfo
	header header
	cached bool // unchanged since it was last indexed
}

// Reindex rescans every file in the notes directory, ignoring cached
// modification times. Files without an id line are assigned one.
func (s *Store) Reindex() (ReindexStats, error) {
	return s.sync(true)
}

// sync reconciles the index with the directory. Unless full is set, files
// whose size and mtime match their index row are not re-read.
func (s *Store) sync(full bool) (ReindexStats, error) {
	var stats ReindexStats

	lock, err := s.db.AcquireRebuildLock()
	if err != nil {
		return stats, err
	}
	defer lock.Release()

	indexed, err := s.db.All()
	if err != nil {
		return stats, indexErr(err)
	}
	byFile := make(map[string]index.Entry, len(indexed))
	for _, e := range indexed {
		byFile[e.Filename] = e
	}

	files, skipped, err := s.scan(byFile, full)
	if err != nil {
		return stats, err
	}
	stats.Skipped = skipped

	// Established owners keep their IDs; changed files claim theirs in name
	// order; everything else (no id, or a duplicated one) is adopted.
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].cached != files[j].cached {
			return files[i].cached
		}
		return files[i].name < files[j].name
	})

	owners := make(map[int64]string, len(files))
	keep := make(map[string]int64, len(files))
	var adopt []scannedFile
	for _, f := range files {
		id := f.header.ID
		if id <= 0 {
			adopt = append(adopt, f)
			continue
		}
		if _, taken := owners[id]; taken {
			s.logger.Debug("duplicate note id, assigning a new one", "id", id, "file", f.name)
			adopt = append(adopt, f)
			continue
		}
		owners[id] = f.name
		keep[f.name] = id
		if f.cached {
			continue
		}
		if err := s.db.Upsert(entryFor(f)); err != nil {
			return stats, indexErr(err)
		}
	}

	// Legacy notes get IDs in creation order.
	sort.SliceStable(adopt, func(i, j int) bool {
		if adopt[i].header.Created != adopt[j].header.Created {
			return adopt[i].header.Created < adopt[j].header.Created
		}
		return adopt[i].name < adopt[j].name
	})
	for _, f := range adopt {
		id, err := s.adopt(f)
		if err != nil {
			return stats, err
		}
		keep[f.name] = id
		stats.Adopted++
	}

	current, err := s.db.All()
	if err != nil {
		return stats, indexErr(err)
	}
	for _, e := range current {
		if keep[e.Filename] == e.ID {
			continue
		}
		if err := s.db.Remove(e.ID); err != nil && !errors.Is(err, index.ErrNotFound) {
			return stats, indexErr(err)
		}
		stats.Removed++
	}
	stats.Indexed = len(keep)

	if stats.Adopted > 0 || stats.Removed > 0 {
		s.logger.Debug("reconciled index", "dir", s.dir, "indexed", stats.Indexed,
			"adopted", stats.Adopted, "removed", stats.Removed)
	}
	return stats, nil
}

// scan reads the notes directory. Hidden entries, directories and files
// without a complete header are skipped.
func (s *Store) scan(byFile map[string]index.Entry, full bool) ([]scannedFile, int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, 0, ioErr("read", s.dir, err)
	}

	var files []scannedFile
	skipped := 0
	for _, de := range entries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(s.dir, name)

		// Stat follows symlinks, so a link to a note file counts as a note.
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, 0, ioErr("stat", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if e, ok := byFile[name]; ok && !full &&
			e.ModTime == info.ModTime().UnixNano() && e.Size == info.Size() {
			files = append(files, scannedFile{
				name:   name,
				info:   info,
				header: header{ID: e.ID, Title: e.Title, Created: e.Created, LastUpdated: e.LastUpdated},
				cached: true,
			})
			continue
		}

		h, ok, err := readHeaderFile(path)
		if err != nil {
			return nil, 0, ioErr("read", path, err)
		}
		if !ok {
			skipped++
			continue
		}
		files = append(files, scannedFile{name: name, info: info, header: h})
	}
	return files, skipped, nil
}

// adopt assigns a fresh ID to f and writes it into the file's header.
func (s *Store) adopt(f scannedFile) (int64, error) {
	path := filepath.Join(s.dir, f.name)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, ioErr("read", path, err)
	}
	h, body, ok, err := decode(data)
	if err != nil {
		return 0, ioErr("read", path, err)
	}
	if !ok {
		return 0, ioErr("read", path, errors.New("note header changed during scan"))
	}

	id, err := s.db.NextID()
	if err != nil {
		return 0, indexErr(err)
	}
	h.ID = id
	if err := atomicfile.WriteFile(path, encode(h, body), 0); err != nil {
		return 0, ioErr("write", path, err)
	}
	if _, err := s.indexFile(h, f.name); err != nil {
		return 0, err
	}
	s.logger.Debug("adopted note", "id", id, "file", f.name)
	return id, nil
}

func readHeaderFile(path string) (header, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return header{}, false, err
	}
	defer f.Close()
	return readHeader(bufio.NewReader(f))
}

func entryFor(f scannedFile) index.Entry {
	return index.Entry{
		ID:          f.header.ID,
		Title:       f.header.Title,
		Filename:    f.name,
		Created:     f.header.Created,
		LastUpdated: f.header.LastUpdated,
		ModTime:     f.info.ModTime().UnixNano(),
		Size:        f.info.Size(),
	}
}
