package table

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/restic/fhbackup/internal/ui"
)

// Table renders rows of data as aligned columns, framed by separator lines.
type Table struct {
	headers   []string
	templates []*template.Template
	rows      []interface{}

	CellSeparator string
}

// New returns an empty Table with two spaces between cells.
func New() *Table {
	return &Table{CellSeparator: "  "}
}

// AddColumn adds a column with header. Cells are rendered by executing the
// text/template format with the row data. AddColumn panics if format does not
// compile.
func (t *Table) AddColumn(header, format string) {
	tmpl, err := template.New(header).Parse(format)
	if err != nil {
		panic(err)
	}

	t.headers = append(t.headers, header)
	t.templates = append(t.templates, tmpl)
}

// AddRow adds a row rendered from data.
func (t *Table) AddRow(data interface{}) {
	t.rows = append(t.rows, data)
}

func (t *Table) render() ([][]string, error) {
	var buf bytes.Buffer
	cells := make([][]string, 0, len(t.rows))

	for _, data := range t.rows {
		row := make([]string, 0, len(t.templates))
		for _, tmpl := range t.templates {
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, err
			}
			row = append(row, buf.String())
			buf.Reset()
		}
		cells = append(cells, row)
	}

	return cells, nil
}

func (t *Table) writeLine(w io.Writer, cells []string, widths []int) error {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString(t.CellSeparator)
		}
		line.WriteString(cell)
		if pad := widths[i] - ui.DisplayWidth(cell); pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
	}

	_, err := io.WriteString(w, strings.TrimRight(line.String(), " ")+"\n")
	return err
}

// Write prints the header, all rows and the closing separator to w. Column
// widths are measured in terminal cells.
func (t *Table) Write(w io.Writer) error {
	if len(t.templates) == 0 {
		return nil
	}

	rows, err := t.render()
	if err != nil {
		return err
	}

	widths := make([]int, len(t.headers))
	for _, row := range append([][]string{t.headers}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], ui.DisplayWidth(cell))
		}
	}

	total := (len(widths) - 1) * ui.DisplayWidth(t.CellSeparator)
	for _, width := range widths {
		total += width
	}
	separator := strings.Repeat("-", total) + "\n"

	if err := t.writeLine(w, t.headers, widths); err != nil {
		return err
	}
	if _, err := io.WriteString(w, separator); err != nil {
		return err
	}
	for _, row := range rows {
		if err := t.writeLine(w, row, widths); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, separator)
	return err
}
