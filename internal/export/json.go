package export

import (
	"encoding/json"

	"gridiron/internal/reconcile"
	"gridiron/internal/services"
)

// boardDocument is the board.json shape: the geometry plus every settled
// cell with its full breakdown and provenance.
type boardDocument struct {
	Rows  int                     `json:"rows"`
	Cols  int                     `json:"cols"`
	Cells []*reconcile.Assignment `json:"cells"`
}

func (e *Exporter) renderJSON(result *reconcile.Result) ([]byte, error) {
	geometry := result.Board.Geometry()
	doc := boardDocument{
		Rows:  geometry.Rows,
		Cols:  geometry.Cols,
		Cells: result.Assignments(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "export", "json", "marshal board", err)
	}
	return append(data, '\n'), nil
}
