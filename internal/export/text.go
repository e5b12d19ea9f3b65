package export

import (
	"fmt"
	"sort"
	"strings"

	"gridiron/internal/reconcile"
)

// renderRows lists assignments grouped by round, in pick order, so the
// sheet reads the way the draft ran.
func (e *Exporter) renderRows(result *reconcile.Result) ([]byte, error) {
	var b strings.Builder
	geometry := result.Board.Geometry()
	for row := 0; row < geometry.Rows; row++ {
		cells := cellsInRow(result, row)
		if len(cells) == 0 {
			continue
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].Pick < cells[j].Pick })
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Round %d\n", row+1)
		for _, a := range cells {
			b.WriteString(formatLine(a))
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

// renderCols lists assignments grouped by seat, top to bottom, so each
// team's picks read in the order they were made.
func (e *Exporter) renderCols(result *reconcile.Result) ([]byte, error) {
	var b strings.Builder
	geometry := result.Board.Geometry()
	for col := 0; col < geometry.Cols; col++ {
		cells := cellsInCol(result, col)
		if len(cells) == 0 {
			continue
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].Row < cells[j].Row })
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Seat %d\n", col+1)
		for _, a := range cells {
			b.WriteString(formatLine(a))
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

func cellsInRow(result *reconcile.Result, row int) []*reconcile.Assignment {
	var cells []*reconcile.Assignment
	for _, a := range result.Assignments() {
		if a.Row == row {
			cells = append(cells, a)
		}
	}
	return cells
}

func cellsInCol(result *reconcile.Result, col int) []*reconcile.Assignment {
	var cells []*reconcile.Assignment
	for _, a := range result.Assignments() {
		if a.Col == col {
			cells = append(cells, a)
		}
	}
	return cells
}

func formatLine(a *reconcile.Assignment) string {
	name := a.DisplayName()
	if name == "" {
		name = "(unreadable)"
	}
	details := make([]string, 0, 3)
	if a.Team != "" {
		details = append(details, a.Team)
	}
	if a.Position != "" {
		details = append(details, a.Position)
	}
	if a.Bye > 0 {
		details = append(details, fmt.Sprintf("bye %d", a.Bye))
	}
	line := fmt.Sprintf("%4d. %s", a.Pick, name)
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	switch {
	case a.Source == reconcile.SourceRawText:
		line += "  [raw text]"
	case a.Locked:
		line += "  [pinned]"
	}
	return line
}
