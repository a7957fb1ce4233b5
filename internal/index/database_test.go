package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextID(t *testing.T) {
	t.Run("starts at one and increments", func(t *testing.T) {
		db := openTestDB(t)
		for want := int64(1); want <= 3; want++ {
			got, err := db.NextID()
			if err != nil {
				t.Fatalf("NextID: %v", err)
			}
			if got != want {
				t.Errorf("NextID = %d, want %d", got, want)
			}
		}
	})

	t.Run("not reused after remove", func(t *testing.T) {
		db := openTestDB(t)
		id, _ := db.NextID()
		if err := db.Upsert(Entry{ID: id, Title: "a", Filename: "1-a.note", Created: "2024-01-01 00:00:00"}); err != nil {
			t.Fatal(err)
		}
		if err := db.Remove(id); err != nil {
			t.Fatal(err)
		}
		next, err := db.NextID()
		if err != nil {
			t.Fatal(err)
		}
		if next == id {
			t.Errorf("id %d was reused", id)
		}
	})

	t.Run("skips ids present in the table", func(t *testing.T) {
		db := openTestDB(t)
		if err := db.Upsert(Entry{ID: 41, Title: "manual", Filename: "manual.note", Created: "2024-01-01 00:00:00"}); err != nil {
			t.Fatal(err)
		}
		next, err := db.NextID()
		if err != nil {
			t.Fatal(err)
		}
		if next != 42 {
			t.Errorf("NextID = %d, want 42", next)
		}
	})

	t.Run("upsert raises the counter", func(t *testing.T) {
		db := openTestDB(t)
		if err := db.Upsert(Entry{ID: 9, Title: "nine", Filename: "9.note", Created: "2024-01-01 00:00:00"}); err != nil {
			t.Fatal(err)
		}
		if err := db.Remove(9); err != nil {
			t.Fatal(err)
		}
		next, _ := db.NextID()
		if next != 10 {
			t.Errorf("NextID = %d, want 10", next)
		}
		// A lower id never moves the counter backwards.
		if err := db.Upsert(Entry{ID: 2, Title: "two", Filename: "2.note", Created: "2024-01-01 00:00:00"}); err != nil {
			t.Fatal(err)
		}
		next, _ = db.NextID()
		if next != 11 {
			t.Errorf("NextID = %d, want 11", next)
		}
	})
}

func TestLookups(t *testing.T) {
	db := openTestDB(t)
	entries := []Entry{
		{ID: 2, Title: "Diary", Filename: "2-diary.note", Created: "2024-01-02 00:00:00"},
		{ID: 1, Title: "Shopping List", Filename: "1-shopping-list.note", Created: "2024-01-01 00:00:00"},
		{ID: 3, Title: "Diary", Filename: "Diary", Created: "2024-01-03 00:00:00"},
	}
	for _, e := range entries {
		if err := db.Upsert(e); err != nil {
			t.Fatalf("Upsert(%d): %v", e.ID, err)
		}
	}

	all, err := db.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
		t.Errorf("All not ordered by id: %+v", all)
	}

	got, err := db.ByID(1)
	if err != nil || got.Title != "Shopping List" {
		t.Errorf("ByID(1) = %+v, %v", got, err)
	}
	if _, err := db.ByID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByID(99) err = %v, want ErrNotFound", err)
	}

	byTitle, err := db.ByTitle("Diary")
	if err != nil {
		t.Fatal(err)
	}
	if len(byTitle) != 2 {
		t.Errorf("ByTitle(Diary) returned %d entries, want 2", len(byTitle))
	}

	byFile, err := db.ByFilename("1-shopping-list.note")
	if err != nil || byFile.ID != 1 {
		t.Errorf("ByFilename = %+v, %v", byFile, err)
	}

	titles, err := db.Titles()
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 3 || titles[0] != "Shopping List" {
		t.Errorf("Titles = %v", titles)
	}
}

func TestUpsertReplacesFileOwner(t *testing.T) {
	db := openTestDB(t)
	if err := db.Upsert(Entry{ID: 1, Title: "old", Filename: "shared.note", Created: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Upsert(Entry{ID: 2, Title: "new", Filename: "shared.note", Created: "x"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := db.ByID(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale row for shared.note should be gone, got %v", err)
	}
	e, err := db.ByFilename("shared.note")
	if err != nil || e.ID != 2 {
		t.Errorf("ByFilename = %+v, %v", e, err)
	}
}

func TestRemoveMissing(t *testing.T) {
	db := openTestDB(t)
	if err := db.Remove(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(5) err = %v, want ErrNotFound", err)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := db.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, Dir, dbFile)); err != nil {
		t.Fatalf("index file not created: %v", err)
	}

	// The counter survives reopening.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	next, err := db.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if next != id+1 {
		t.Errorf("NextID after reopen = %d, want %d", next, id+1)
	}
}

func TestRebuildLock(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	lock, err := db.AcquireRebuildLock()
	if err != nil {
		t.Fatalf("AcquireRebuildLock: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}

	// Released locks can be taken again.
	lock, err = db.AcquireRebuildLock()
	if err != nil {
		t.Fatalf("second AcquireRebuildLock: %v", err)
	}
	_ = lock.Release()
}

func TestCounterSurvivesIndexRemoval(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	var last int64
	for i := 0; i < 3; i++ {
		if last, err = db.NextID(); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	data, err := os.ReadFile(filepath.Join(dir, HighWaterFile))
	if err != nil {
		t.Fatalf("high-water file not written: %v", err)
	}
	if string(data) != "4\n" {
		t.Errorf("high-water file = %q, want %q", data, "4\n")
	}

	if err := os.RemoveAll(filepath.Join(dir, Dir)); err != nil {
		t.Fatal(err)
	}
	db, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	next, err := db.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if next <= last {
		t.Errorf("NextID after rebuild = %d, want > %d", next, last)
	}
}

func TestDamagedHighWaterFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, HighWaterFile), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if next, err := db.NextID(); err != nil || next != 1 {
		t.Errorf("NextID = %d, %v; want 1", next, err)
	}
}

func TestOpenReadOnly(t *testing.T) {
	t.Run("missing index", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := OpenReadOnly(dir); !errors.Is(err, ErrNoIndex) {
			t.Fatalf("err = %v, want ErrNoIndex", err)
		}
		if _, err := os.Stat(filepath.Join(dir, Dir)); !os.IsNotExist(err) {
			t.Errorf("%s was created: %v", Dir, err)
		}
	})

	t.Run("reads but never writes", func(t *testing.T) {
		dir := t.TempDir()
		db, err := Open(dir)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.Upsert(Entry{ID: 1, Title: "a", Filename: "1-a.note", Created: "2024-01-01 00:00:00"}); err != nil {
			t.Fatal(err)
		}
		db.Close()

		ro, err := OpenReadOnly(dir)
		if err != nil {
			t.Fatalf("OpenReadOnly: %v", err)
		}
		defer ro.Close()
		entries, err := ro.All()
		if err != nil || len(entries) != 1 || entries[0].Title != "a" {
			t.Fatalf("All = %+v, %v", entries, err)
		}
		if err := ro.Remove(1); err == nil {
			t.Error("Remove succeeded on a read-only index")
		}
	})
}
