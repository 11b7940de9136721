// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Table is a matrix of cells.
type Table struct {
	width int
	rows  []*Row
}

// NewTable creates a table with the given number of columns.
func NewTable(width int) *Table {
	return &Table{width: width}
}

// AddRow adds a row.
func (t *Table) AddRow() *Row {
	row := &Row{cells: make([]cell, 0, t.width)}
	t.rows = append(t.rows, row)
	return row
}

// AddSeparatorRow adds a separator row.
func (t *Table) AddSeparatorRow() {
	r := t.AddRow()
	for i := 0; i < t.width; i++ {
		r.cells = append(r.cells, separatorCell{})
	}
}

// AddEmptyRow adds an empty row.
func (t *Table) AddEmptyRow() {
	t.AddRow().FillEmpty()
}

// Row is a table row.
type Row struct {
	cells []cell
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	r.cells = append(r.cells, emptyCell{})
	return r
}

// AddText adds a text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	r.cells = append(r.cells, textCell{Content: content, Align: align})
	return r
}

// AddIndented adds a left-aligned, indented text cell.
func (r *Row) AddIndented(content string, indent int) *Row {
	r.cells = append(r.cells, textCell{Content: content, Indent: indent})
	return r
}

// AddNumber adds a number cell. Zero is rendered as an empty cell.
func (r *Row) AddNumber(n decimal.Decimal) *Row {
	if n.IsZero() {
		return r.AddEmpty()
	}
	r.cells = append(r.cells, numberCell{n})
	return r
}

// FillEmpty fills the row with empty cells.
func (r *Row) FillEmpty() {
	for i := len(r.cells); i < cap(r.cells); i++ {
		r.AddEmpty()
	}
}

// Alignment is the alignment of a text cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cell interface {
	isSep() bool
}

type textCell struct {
	Content string
	Align   Alignment
	Indent  int
}

func (textCell) isSep() bool { return false }

type numberCell struct {
	n decimal.Decimal
}

func (numberCell) isSep() bool { return false }

type separatorCell struct{}

func (separatorCell) isSep() bool { return true }

type emptyCell struct{}

func (emptyCell) isSep() bool { return false }

// TextRenderer renders a table to text.
type TextRenderer struct {
	// Color renders negative numbers in red and positive ones in green.
	Color bool
	// Digits is the number of decimal places shown.
	Digits int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders the table.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color

	widths := make([]int, t.width)
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := r.minLength(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	for _, row := range t.rows {
		if len(row.cells) == 0 {
			continue
		}
		start, end := "| ", " |\n"
		if row.cells[0].isSep() {
			start, end = "+-", "-+\n"
		}
		if _, err := io.WriteString(w, start); err != nil {
			return err
		}
		for i, c := range row.cells {
			if err := r.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if _, err := io.WriteString(w, separator(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, end); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, l)

	case separatorCell:
		_, err := io.WriteString(w, strings.Repeat("-", l))
		return err

	case textCell:
		var (
			n      = utf8.RuneCountInString(t.Content)
			before int
		)
		switch t.Align {
		case Left:
			before = t.Indent
		case Right:
			before = l - n
		case Center:
			before = (l - n) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if _, err := io.WriteString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, l-before-n)

	case numberCell:
		s := r.format(t.n)
		if err := writeSpace(w, l-utf8.RuneCountInString(s)); err != nil {
			return err
		}
		var err error
		if t.n.IsNegative() {
			_, err = red.Fprint(w, s)
		} else {
			_, err = green.Fprint(w, s)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func writeSpace(w io.Writer, l int) error {
	if l <= 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Repeat(" ", l))
	return err
}

func (r *TextRenderer) minLength(c cell) int {
	switch t := c.(type) {
	case textCell:
		if t.Align == Left {
			return t.Indent + utf8.RuneCountInString(t.Content)
		}
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(r.format(t.n))
	}
	return 0
}

func separator(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

func (r *TextRenderer) format(d decimal.Decimal) string {
	return addThousandsSep(d.StringFixed(r.Digits))
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	var (
		b  strings.Builder
		ok bool
	)
	for i, ch := range e {
		if i >= index {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}
