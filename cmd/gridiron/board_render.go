package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gridiron/internal/catalog"
	"gridiron/internal/reconcile"
	"gridiron/internal/session"
	"gridiron/internal/textutil"
)

const (
	shortIDLength      = 8
	sessionTimeLayout  = "2006-01-02 15:04"
	unreadableCellText = "(unreadable)"
)

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatBye(bye int) string {
	if bye <= 0 {
		return ""
	}
	return strconv.Itoa(bye)
}

// matchLabel condenses source, match class, and strategy into one table
// cell. Raw-text fallbacks carry no match class, so the source stands in.
func matchLabel(a *reconcile.Assignment) string {
	if a.Source == reconcile.SourceRawText {
		if a.Match == reconcile.MatchManual {
			return "manual text"
		}
		return "raw text"
	}
	return string(a.Match)
}

func renderBoardTable(assignments []*reconcile.Assignment) string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		player := a.DisplayName()
		if player == "" {
			player = unreadableCellText
		}
		rows = append(rows, []string{
			strconv.Itoa(a.Pick),
			a.Coord().String(),
			strconv.Itoa(a.Round),
			player,
			a.Position,
			a.Team,
			formatBye(a.Bye),
			textutil.Ternary(a.Source == reconcile.SourceCatalog, formatScore(a.Total()), ""),
			matchLabel(a),
			textutil.Ternary(a.Locked, "yes", ""),
		})
	}
	return renderTable(
		[]string{"Pick", "Cell", "Round", "Player", "Pos", "Team", "Bye", "Score", "Match", "Locked"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func printResultSummary(out io.Writer, stats reconcile.Stats) {
	fmt.Fprintf(out, "Cells: %d\nCatalog: %d\nExact: %d\nManual: %d\nRaw text: %d\nUnreadable: %d\nMean score: %s\n",
		stats.Cells,
		stats.Catalog,
		stats.Exact,
		stats.Manual,
		stats.RawText,
		stats.Unnamed,
		formatScore(stats.MeanConf),
	)
}

func buildSessionListRows(sessions []*session.Session) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, []string{
			shortID(sess.ID),
			sess.CreatedAt.Local().Format(sessionTimeLayout),
			fmt.Sprintf("%dx%d", sess.Rows, sess.Cols),
			strconv.Itoa(sess.Cells),
			strconv.Itoa(sess.CatalogCells),
			strconv.Itoa(sess.ManualCells),
			strconv.Itoa(sess.RawCells),
			formatScore(sess.MeanScore),
		})
	}
	return rows
}

func printSessionSummary(out io.Writer, sess *session.Session) {
	fmt.Fprintf(out, "Session: %s\n", sess.ID)
	fmt.Fprintf(out, "Created: %s\n", sess.CreatedAt.Local().Format(sessionTimeLayout))
	fmt.Fprintf(out, "Board: %dx%d\n", sess.Rows, sess.Cols)
	fmt.Fprintf(out, "Threshold: %s\n", formatScore(sess.Threshold))
	if sess.SourcePath != "" {
		fmt.Fprintf(out, "Source: %s\n", sess.SourcePath)
	}
	if sess.CatalogPath != "" {
		fmt.Fprintf(out, "Catalog: %s (%d players)\n", sess.CatalogPath, sess.CatalogEntries)
	}
}

// buildReviewRows lists the cells an operator should eyeball: raw-text
// fallbacks and catalog assignments inside the review margin. Locked cells
// were placed by hand and are skipped.
func buildReviewRows(result *reconcile.Result, cutoff float64) [][]string {
	var rows [][]string
	for _, a := range result.Assignments() {
		if a.Locked {
			continue
		}
		lowCatalog := a.Source == reconcile.SourceCatalog && a.Total() < cutoff
		if !lowCatalog && a.Source != reconcile.SourceRawText {
			continue
		}
		player := a.DisplayName()
		if player == "" {
			player = unreadableCellText
		}
		rows = append(rows, []string{
			strconv.Itoa(a.Pick),
			a.Coord().String(),
			player,
			textutil.Ternary(a.Source == reconcile.SourceCatalog, formatScore(a.Total()), ""),
			formatSuggestions(result, a.Coord()),
		})
	}
	return rows
}

func formatSuggestions(result *reconcile.Result, coord reconcile.Coord) string {
	trace, ok := result.Trace(coord)
	if !ok || len(trace.Candidates) == 0 {
		return ""
	}
	parts := make([]string, 0, len(trace.Candidates))
	for _, candidate := range trace.Candidates {
		label := fmt.Sprintf("%s %s", candidate.Name, formatScore(candidate.Total))
		if candidate.InUse {
			label += " (taken)"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "; ")
}

func buildCatalogRows(entries []catalog.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.Rank),
			entry.DisplayName(),
			string(entry.Position),
			entry.Team,
			formatBye(entry.ByeWeek),
		})
	}
	return rows
}
