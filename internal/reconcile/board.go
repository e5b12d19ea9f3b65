package reconcile

import (
	"fmt"
	"sort"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
	"gridiron/internal/services"
)

// Board tracks assignments per cell together with the set of reserved
// catalog identities. Every mutation goes through Place and Remove so the
// two maps can never disagree: a catalog identity is reserved exactly when
// some cell's assignment carries it.
type Board struct {
	geometry draft.Board
	cells    map[Coord]*Assignment
	used     map[catalog.Key]Coord
}

// NewBoard creates an empty board over the given geometry.
func NewBoard(geometry draft.Board) *Board {
	return &Board{
		geometry: geometry,
		cells:    make(map[Coord]*Assignment, geometry.Cells()),
		used:     make(map[catalog.Key]Coord),
	}
}

// Geometry returns the board dimensions.
func (b *Board) Geometry() draft.Board {
	return b.geometry
}

// Len returns the number of assigned cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Assignment returns the assignment at the coordinate, if any.
func (b *Board) Assignment(coord Coord) (*Assignment, bool) {
	a, ok := b.cells[coord]
	return a, ok
}

// Assignments returns all assignments in row-major board order.
func (b *Board) Assignments() []*Assignment {
	out := make([]*Assignment, 0, len(b.cells))
	for _, a := range b.cells {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Coord().Less(out[j].Coord())
	})
	return out
}

// Holder returns the cell currently holding the catalog identity.
func (b *Board) Holder(key catalog.Key) (Coord, bool) {
	coord, ok := b.used[key]
	return coord, ok
}

// InUse reports whether the catalog identity is reserved by any cell.
func (b *Board) InUse(key catalog.Key) bool {
	_, ok := b.used[key]
	return ok
}

// Place installs an assignment, replacing whatever the cell held before.
// Placing a catalog identity already reserved by a different cell is a
// conflict; callers displace the holder first.
func (b *Board) Place(a *Assignment) error {
	if a == nil {
		return services.Wrap(services.ErrValidation, "reconcile", "place", "assignment must not be nil", nil)
	}
	coord := a.Coord()
	if !b.geometry.Contains(coord.Row, coord.Col) {
		return services.Wrap(services.ErrValidation, "reconcile", "place",
			fmt.Sprintf("cell %s outside %dx%d board", coord, b.geometry.Rows, b.geometry.Cols), nil)
	}
	if !a.Key.IsZero() {
		if holder, ok := b.used[a.Key]; ok && holder != coord {
			return services.Wrap(services.ErrConflict, "reconcile", "place",
				fmt.Sprintf("identity for %s already held by %s", a.DisplayName(), holder), nil)
		}
	}
	b.Remove(coord)
	b.cells[coord] = a
	if !a.Key.IsZero() {
		b.used[a.Key] = coord
	}
	return nil
}

// Remove clears the cell and releases its identity. Returns the removed
// assignment, or nil when the cell was empty.
func (b *Board) Remove(coord Coord) *Assignment {
	a, ok := b.cells[coord]
	if !ok {
		return nil
	}
	delete(b.cells, coord)
	if !a.Key.IsZero() {
		if holder, held := b.used[a.Key]; held && holder == coord {
			delete(b.used, a.Key)
		}
	}
	return a
}
