package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/multierr"

	"github.com/alexhholmes/bitfield/internal/analyzer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	paddingStyle = cellStyle.
			Foreground(lipgloss.Color("#808080"))
)

func describeAll(w io.Writer, files []string) error {
	if len(files) == 0 {
		return errNoInput
	}

	var errs error
	for _, path := range files {
		_, layouts, err := load(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, a := range layouts {
			fmt.Fprintln(w, describe(a))
		}
	}
	return errs
}

// describe renders the planned layout of a record type as a table
func describe(a *analyzer.AnalyzedLayout) string {
	lay := a.Schema.Layout()
	cfg := a.Config

	title := titleStyle.Render(a.TypeName)
	summary := fmt.Sprintf("%d bits, %d bytes, %s, %s first", lay.DeclaredBits, lay.Bytes, cfg.Repr, cfg.Order)
	if lay.BackingWidth != 0 {
		summary += fmt.Sprintf(", uint%d", lay.BackingWidth)
	}

	rows := make([][]string, len(a.Fields))
	for i, f := range a.Fields {
		rows[i] = []string{
			strconv.Itoa(i),
			f.Name,
			f.GoType,
			f.Spec.Domain.String(),
			strconv.Itoa(lay.Offsets[i]),
			strconv.Itoa(lay.Widths[i]),
			f.Spec.Skip.String(),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case a.Fields[row].Padding():
				return paddingStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "field", "type", "domain", "offset", "width", "skip").
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left, title+" "+summary, t.Render())
}
