package draft

// Board describes draft grid geometry. Columns correspond to teams, rows to
// rounds, so a 10-column board seats a 10-team league.
type Board struct {
	Rows int
	Cols int
}

// Cells returns the total number of grid cells.
func (b Board) Cells() int {
	if b.Rows <= 0 || b.Cols <= 0 {
		return 0
	}
	return b.Rows * b.Cols
}

// Contains reports whether the 0-based coordinate lies on the board.
func (b Board) Contains(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// PickNumber converts a 0-based grid coordinate to a 1-based linear pick
// under snake ordering: even rows run left to right, odd rows right to
// left.
func (b Board) PickNumber(row, col int) int {
	rowStart := row*b.Cols + 1
	if row%2 == 0 {
		return rowStart + col
	}
	return rowStart + (b.Cols - 1 - col)
}

// Coordinate is the inverse of PickNumber.
func (b Board) Coordinate(pick int) (row, col int) {
	row = (pick - 1) / b.Cols
	colInRow := (pick - 1) % b.Cols
	if row%2 == 0 {
		return row, colInRow
	}
	return row, b.Cols - 1 - colInRow
}

// RoundOf splits a linear pick into its 1-based round and pick-in-round.
func (b Board) RoundOf(pick int) (round, pickInRound int) {
	return (pick-1)/b.Cols + 1, (pick-1)%b.Cols + 1
}
