package note

import (
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		data := "id: 12\ntitle: T\ncreated: 2024-01-01 10:00:00\nlast_updated: 2024-01-02 10:00:00\n---\nbody\n"
		h, body, ok, err := decode([]byte(data))
		if err != nil || !ok {
			t.Fatalf("decode: ok=%v err=%v", ok, err)
		}
		want := header{ID: 12, Title: "T", Created: "2024-01-01 10:00:00", LastUpdated: "2024-01-02 10:00:00"}
		if h != want {
			t.Errorf("header = %+v, want %+v", h, want)
		}
		if body != "body" {
			t.Errorf("body = %q", body)
		}
	})

	t.Run("crlf", func(t *testing.T) {
		data := "title: T\r\ncreated: c\r\n---\r\nline\r\n"
		h, body, ok, err := decode([]byte(data))
		if err != nil || !ok {
			t.Fatalf("decode: ok=%v err=%v", ok, err)
		}
		if h.Title != "T" || h.Created != "c" || body != "line" {
			t.Errorf("got %+v body=%q", h, body)
		}
	})

	t.Run("bad id ignored", func(t *testing.T) {
		h, _, ok, _ := decode([]byte("id: abc\ntitle: T\ncreated: c\n---\n"))
		if !ok || h.ID != 0 {
			t.Errorf("ok=%v id=%d", ok, h.ID)
		}
	})

	t.Run("missing delimiter still a note", func(t *testing.T) {
		_, body, ok, _ := decode([]byte("title: T\ncreated: c\n"))
		if !ok || body != "" {
			t.Errorf("ok=%v body=%q", ok, body)
		}
	})

	for name, data := range map[string]string{
		"no title":           "created: c\n---\nbody\n",
		"no created":         "title: T\n---\nbody\n",
		"fields after delim": "---\ntitle: T\ncreated: c\n",
		"empty":              "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, _, ok, _ := decode([]byte(data)); ok {
				t.Error("expected not a note")
			}
		})
	}
}

func TestEncodeDecodeBody(t *testing.T) {
	for _, body := range []string{"", "x", "x\n", "x\n\n", "\n", "a\n---\nb"} {
		h := header{ID: 1, Title: "T", Created: "c", LastUpdated: "u"}
		got, gotBody, ok, err := decode(encode(h, body))
		if err != nil || !ok {
			t.Fatalf("decode(encode(%q)): ok=%v err=%v", body, ok, err)
		}
		if got != h || gotBody != body {
			t.Errorf("body %q came back as %q (header %+v)", body, gotBody, got)
		}
	}
}

func TestEncodeOmitsZeroID(t *testing.T) {
	got := string(encode(header{Title: "T", Created: "c", LastUpdated: "c"}, "b"))
	want := "title: T\ncreated: c\nlast_updated: c\n---\nb\n"
	if got != want {
		t.Errorf("encode = %q, want %q", got, want)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := map[string]string{
		"Shopping List": "Shopping_List",
		"a-b":           "a_b",
		"a b":           "a_b",
		"café":          "caf_",
		"2024 plans!":   "2024_plans_",
	}
	for in, want := range tests {
		if got := SanitizeTitle(in); got != want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		id    int64
		title string
		want  string
	}{
		{1, "Shopping List", "1-shopping-list.note"},
		{42, "???", "42.note"},
		{7, "a b", "7-a-b.note"},
	}
	for _, tt := range tests {
		if got := FileName(tt.id, tt.title); got != tt.want {
			t.Errorf("FileName(%d, %q) = %q, want %q", tt.id, tt.title, got, tt.want)
		}
	}

	long := FileName(3, "a very long title that keeps going and going well past any reasonable filename length")
	if len(long) > len("3-")+maxSlugLen+len(Extension) {
		t.Errorf("FileName not truncated: %q", long)
	}
}
