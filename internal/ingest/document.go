package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
	"gridiron/internal/reconcile"
	"gridiron/internal/score"
	"gridiron/internal/services"
)

// Fields carries the raw text one extraction pass recognized for a cell.
type Fields struct {
	Position string `json:"pos"`
	First    string `json:"first"`
	Last     string `json:"last"`
	Team     string `json:"team"`
	Bye      string `json:"bye"`
}

// Color is the cell's detected sticker color mapped to a position tier.
// Confidence is 1.0 for a calibrated color profile and 0.5 for the
// statistical fallback.
type Color struct {
	Position   string  `json:"position"`
	Confidence float64 `json:"confidence"`
}

// Cell holds both extraction passes for one readable board cell.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	ROI   Fields `json:"roi"`
	Whole Fields `json:"whole"`
	Color *Color `json:"color,omitempty"`
}

// Document is one photographed board's extraction output.
type Document struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells []Cell `json:"cells"`
}

// Load reads and validates an observation document from disk.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "ingest", "load", fmt.Sprintf("open observations %s", path), err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ingest", "load", fmt.Sprintf("observations %s", path), err)
	}
	return doc, nil
}

// Parse decodes an observation document and validates it.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks geometry, coordinates, color tiers, and duplicates. A
// document may omit geometry entirely and have it applied later via
// ApplyGeometry; range checks wait until dimensions are known.
func (d *Document) Validate() error {
	hasGeometry := d.Rows > 0 && d.Cols > 0
	if !hasGeometry && (d.Rows != 0 || d.Cols != 0) {
		return fmt.Errorf("board geometry %dx%d must be positive", d.Rows, d.Cols)
	}
	seen := make(map[[2]int]struct{}, len(d.Cells))
	for i, cell := range d.Cells {
		if cell.Row < 0 || cell.Col < 0 || (hasGeometry && (cell.Row >= d.Rows || cell.Col >= d.Cols)) {
			return fmt.Errorf("cell %d at r%dc%d outside %dx%d board", i, cell.Row, cell.Col, d.Rows, d.Cols)
		}
		key := [2]int{cell.Row, cell.Col}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate cell r%dc%d", cell.Row, cell.Col)
		}
		seen[key] = struct{}{}
		if cell.Color == nil {
			continue
		}
		if cell.Color.Confidence != 1.0 && cell.Color.Confidence != 0.5 {
			return fmt.Errorf("cell r%dc%d color confidence %v not a known tier", cell.Row, cell.Col, cell.Color.Confidence)
		}
		if _, ok := catalog.ParsePosition(cell.Color.Position); !ok {
			return fmt.Errorf("cell r%dc%d color position %q unknown", cell.Row, cell.Col, cell.Color.Position)
		}
	}
	return nil
}

// HasGeometry reports whether the document carried its own dimensions.
func (d *Document) HasGeometry() bool {
	return d.Rows > 0 && d.Cols > 0
}

// ApplyGeometry fixes the document's board dimensions, overriding whatever
// the document carried, and range-checks every cell against them.
func (d *Document) ApplyGeometry(rows, cols int) error {
	d.Rows = rows
	d.Cols = cols
	if !d.HasGeometry() {
		return fmt.Errorf("board geometry %dx%d must be positive", rows, cols)
	}
	return d.Validate()
}

// Geometry returns the document's board dimensions.
func (d *Document) Geometry() draft.Board {
	return draft.Board{Rows: d.Rows, Cols: d.Cols}
}

// Inputs converts the document's cells into reconciliation inputs, trimming
// text fields and attaching the color estimate to both extraction passes.
// Cells are returned in row-major order regardless of document order.
func (d *Document) Inputs() []reconcile.CellInput {
	inputs := make([]reconcile.CellInput, 0, len(d.Cells))
	for _, cell := range d.Cells {
		color := cell.colorEstimate()
		inputs = append(inputs, reconcile.CellInput{
			Row:      cell.Row,
			Col:      cell.Col,
			Targeted: cell.ROI.observation(cell.Row, cell.Col, color),
			Whole:    cell.Whole.observation(cell.Row, cell.Col, color),
		})
	}
	sort.Slice(inputs, func(i, j int) bool {
		if inputs[i].Row != inputs[j].Row {
			return inputs[i].Row < inputs[j].Row
		}
		return inputs[i].Col < inputs[j].Col
	})
	return inputs
}

func (c Cell) colorEstimate() *score.ColorEstimate {
	if c.Color == nil {
		return nil
	}
	position, ok := catalog.ParsePosition(c.Color.Position)
	if !ok {
		return nil
	}
	return &score.ColorEstimate{Position: position, Confidence: c.Color.Confidence}
}

func (f Fields) observation(row, col int, color *score.ColorEstimate) score.Observation {
	obs := score.Observation{
		Row:          row,
		Col:          col,
		PositionText: strings.TrimSpace(f.Position),
		FirstText:    strings.TrimSpace(f.First),
		LastText:     strings.TrimSpace(f.Last),
		TeamText:     strings.TrimSpace(f.Team),
		ByeText:      strings.TrimSpace(f.Bye),
	}
	if color != nil {
		copied := *color
		obs.Color = &copied
	}
	return obs
}
