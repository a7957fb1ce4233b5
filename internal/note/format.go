package note

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiter separates the header lines from the body.
const Delimiter = "---"

const (
	keyID          = "id: "
	keyTitle       = "title: "
	keyCreated     = "created: "
	keyLastUpdated = "last_updated: "
)

// header is the metadata block at the top of a note file.
type header struct {
	ID          int64 // 0 when the file carries no id line
	Title       string
	Created     string
	LastUpdated string
}

// readHeader scans header lines up to the first delimiter line. ok is false
// when the title or created line is missing, which means the file is not a
// note. After a successful return r is positioned at the start of the body.
func readHeader(r *bufio.Reader) (h header, ok bool, err error) {
	var foundTitle, foundCreated bool
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return header{}, false, readErr
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == Delimiter:
			return h, foundTitle && foundCreated, nil
		case strings.HasPrefix(line, keyID):
			if id, convErr := strconv.ParseInt(strings.TrimSpace(line[len(keyID):]), 10, 64); convErr == nil && id > 0 {
				h.ID = id
			}
		case strings.HasPrefix(line, keyTitle):
			h.Title = line[len(keyTitle):]
			foundTitle = true
		case strings.HasPrefix(line, keyCreated):
			h.Created = line[len(keyCreated):]
			foundCreated = true
		case strings.HasPrefix(line, keyLastUpdated):
			h.LastUpdated = line[len(keyLastUpdated):]
		}

		if errors.Is(readErr, io.EOF) {
			return h, foundTitle && foundCreated, nil
		}
	}
}

// decode parses a whole note file. The body is everything after the first
// delimiter line with a single trailing newline removed.
func decode(data []byte) (header, string, bool, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	h, ok, err := readHeader(r)
	if err != nil || !ok {
		return h, "", ok, err
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return h, "", false, err
	}
	body := string(rest)
	if strings.HasSuffix(body, "\r\n") {
		body = body[:len(body)-2]
	} else {
		body = strings.TrimSuffix(body, "\n")
	}
	return h, body, true, nil
}

// encode renders a note file. The body is followed by one newline, which
// decode strips again, so bodies round-trip exactly.
func encode(h header, body string) []byte {
	var b bytes.Buffer
	if h.ID > 0 {
		fmt.Fprintf(&b, "%s%d\n", keyID, h.ID)
	}
	fmt.Fprintf(&b, "%s%s\n", keyTitle, h.Title)
	fmt.Fprintf(&b, "%s%s\n", keyCreated, h.Created)
	fmt.Fprintf(&b, "%s%s\n", keyLastUpdated, h.LastUpdated)
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	b.WriteString(body)
	b.WriteByte('\n')
	return b.Bytes()
}
