package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gridiron/internal/reconcile"
	"gridiron/internal/services"
)

var boardHeader = []string{
	"row", "col", "pick", "round", "pick_in_round",
	"first_name", "last_name", "team", "position", "bye", "rank",
	"source", "match", "strategy", "swapped", "total",
}

func (e *Exporter) renderCSV(result *reconcile.Result) ([]byte, error) {
	geometry := result.Board.Geometry()
	records := make([][]string, 0, result.Board.Len())
	for _, a := range result.Assignments() {
		_, pickInRound := geometry.RoundOf(a.Pick)
		records = append(records, []string{
			strconv.Itoa(a.Row),
			strconv.Itoa(a.Col),
			strconv.Itoa(a.Pick),
			strconv.Itoa(a.Round),
			strconv.Itoa(pickInRound),
			a.FirstName,
			a.LastName,
			a.Team,
			a.Position,
			formatCount(a.Bye),
			formatCount(a.Rank),
			string(a.Source),
			string(a.Match),
			string(a.Strategy),
			strconv.FormatBool(a.Swapped),
			formatScore(a.Total()),
		})
	}
	return writeCSV(boardHeader, records)
}

var reviewHeader = []string{
	"row", "col", "pick",
	"first_name", "last_name", "team", "position", "bye",
	"source", "match", "total",
	"candidate_1", "candidate_2", "candidate_3",
}

// renderReview keeps only the cells an operator should double-check: raw
// text fallbacks and catalog assignments that barely cleared the threshold.
// Pinned corrections are the operator's own work and stay off the sheet.
func (e *Exporter) renderReview(result *reconcile.Result) ([]byte, error) {
	cutoff := e.threshold + e.margin
	var records [][]string
	for _, a := range result.Assignments() {
		if a.Locked {
			continue
		}
		if a.Source != reconcile.SourceRawText && a.Total() >= cutoff {
			continue
		}
		record := []string{
			strconv.Itoa(a.Row),
			strconv.Itoa(a.Col),
			strconv.Itoa(a.Pick),
			a.FirstName,
			a.LastName,
			a.Team,
			a.Position,
			formatCount(a.Bye),
			string(a.Source),
			string(a.Match),
			formatScore(a.Total()),
		}
		record = append(record, reviewSuggestions(result, a.Coord())...)
		records = append(records, record)
	}
	return writeCSV(reviewHeader, records)
}

// reviewSuggestions renders a cell's top three trace candidates, padded so
// every review row has the same width.
func reviewSuggestions(result *reconcile.Result, coord reconcile.Coord) []string {
	suggestions := make([]string, 3)
	trace, ok := result.Trace(coord)
	if !ok {
		return suggestions
	}
	for i, candidate := range trace.Candidates {
		if i >= len(suggestions) {
			break
		}
		text := fmt.Sprintf("%s (%.1f", candidate.Name, candidate.Total)
		if candidate.InUse {
			text += ", taken"
		}
		text += ")"
		suggestions[i] = text
	}
	return suggestions
}

func writeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "export", "csv", "write header", err)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, services.Wrap(services.ErrUnavailable, "export", "csv", "write record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "export", "csv", "flush", err)
	}
	return buf.Bytes(), nil
}

func formatCount(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
