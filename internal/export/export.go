// Package export renders notes in formats other tools understand.
package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/rsnote/internal/note"
)

// Format names an export encoding.
type Format string

const (
	Markdown Format = "markdown"
	YAML     Format = "yaml"
	HTML     Format = "html"
)

// Formats lists the accepted format names.
var Formats = []Format{Markdown, YAML, HTML}

// ParseFormat maps a user-supplied name to a Format. "md" and "yml" are
// accepted as aliases; the empty string means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return Markdown, nil
	case "yaml", "yml":
		return YAML, nil
	case "html":
		return HTML, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown export format %q (want %s)", s, strings.Join(names, ", "))
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case HTML:
		return ".html"
	default:
		return ".md"
	}
}

// frontmatter is the metadata block shared by the markdown and yaml formats.
type frontmatter struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Created     string `yaml:"created"`
	LastUpdated string `yaml:"last_updated,omitempty"`
}

type record struct {
	frontmatter `yaml:",inline"`
	Body        string `yaml:"body"`
}

func frontmatterFor(n note.Note) frontmatter {
	return frontmatter{
		ID:          n.ID,
		Title:       n.Title,
		Created:     n.Created,
		LastUpdated: n.LastUpdated,
	}
}

// Write renders n to w in format f.
func Write(w io.Writer, f Format, n note.Note) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case Markdown:
		data, err = renderMarkdown(n)
	case YAML:
		data, err = yaml.Marshal(record{frontmatter: frontmatterFor(n), Body: n.Body})
	case HTML:
		data, err = renderHTML(n)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderMarkdown(n note.Note) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatterFor(n))
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n")
	b.WriteString(n.Body)
	if !strings.HasSuffix(n.Body, "\n") {
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderHTML(n note.Note) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(n.Body), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	title := html.EscapeString(n.Title)
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", title)
	fmt.Fprintf(&b, "<meta name=\"created\" content=\"%s\">\n", html.EscapeString(n.Created))
	if n.LastUpdated != "" {
		fmt.Fprintf(&b, "<meta name=\"last_updated\" content=\"%s\">\n", html.EscapeString(n.LastUpdated))
	}
	b.WriteString("</head>\n<body>\n<article>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	b.Write(body.Bytes())
	b.WriteString("</article>\n</body>\n</html>\n")
	return b.Bytes(), nil
}
