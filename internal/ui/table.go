package ui

import "strings"

// SeparatorWidth is the length of the dashed line under table headers.
const SeparatorWidth = 80

// Column is one column of a fixed-width table. Cells are padded to Width
// runes; when Truncate is set longer cells are cut to Width runes.
type Column struct {
	Header   string
	Width    int
	Truncate bool
}

// Table renders rows as "a | b | c" lines under a header and a dashed
// separator. Cell text is never styled so columns stay aligned.
type Table struct {
	columns []Column
	rows    []tableRow
}

type tableRow struct {
	cells  []string
	detail string
}

// detailIndent prefixes detail lines printed under a row.
const detailIndent = "     "

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow adds a row. Missing cells are rendered empty.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, tableRow{cells: row})
}

// AddDetail attaches a muted line under the most recently added row.
func (t *Table) AddDetail(text string) {
	if len(t.rows) == 0 {
		return
	}
	t.rows[len(t.rows)-1].detail = text
}

// String renders the table. The last column is padded like the others.
func (t *Table) String() string {
	var sb strings.Builder

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	t.writeRow(&sb, headers)
	sb.WriteString(strings.Repeat("-", SeparatorWidth))
	sb.WriteByte('\n')

	for _, row := range t.rows {
		t.writeRow(&sb, row.cells)
		if row.detail != "" {
			sb.WriteString(detailIndent)
			sb.WriteString(Muted.Render(row.detail))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	for i, c := range t.columns {
		if i > 0 {
			sb.WriteString(" | ")
		}
		cell := cells[i]
		if c.Truncate {
			cell = TruncateRunes(cell, c.Width)
		}
		sb.WriteString(PadRight(cell, c.Width))
	}
	sb.WriteByte('\n')
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// PadRight pads s with spaces to n runes. Longer strings are returned as is.
func PadRight(s string, n int) string {
	if pad := n - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// KeyValues renders label/value pairs as an aligned two-column block with
// muted labels, used for note metadata and command summaries.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if n := len([]rune(p[0])); n > width {
			width = n
		}
	}

	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(Muted.Render(PadRight(p[0], width)))
		sb.WriteString("  ")
		sb.WriteString(p[1])
		sb.WriteByte('\n')
	}
	return sb.String()
}
