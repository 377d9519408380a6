package output

import (
	"bytes"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Alignment selects per-column text alignment for Columns.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ParseAlignment maps the conventional single-character alignment markers
// to an Alignment: "<" or "l" left, "^" or "c" center, ">" or "r" right.
// Anything else is left-aligned.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(s) {
	case ">", "r":
		return AlignRight
	case "^", "c":
		return AlignCenter
	default:
		return AlignLeft
	}
}

func (a Alignment) tablewriter() int {
	switch a {
	case AlignCenter:
		return tablewriter.ALIGN_CENTER
	case AlignRight:
		return tablewriter.ALIGN_RIGHT
	default:
		return tablewriter.ALIGN_LEFT
	}
}

// Columns formats rows into lines with columns padded to a common width and
// separated by two spaces, like `column -t`. align supplies per-column
// alignment; nil or short slices leave remaining columns left-aligned.
func Columns(rows [][]string, align []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}

	alignments := make([]int, len(rows[0]))
	for i := range alignments {
		if i < len(align) {
			alignments[i] = align[i].tablewriter()
		} else {
			alignments[i] = tablewriter.ALIGN_LEFT
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment(alignments)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range rows {
		table.Append(row)
	}
	table.Render()

	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
