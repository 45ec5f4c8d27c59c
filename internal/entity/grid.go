package entity

// directions scanned for runs: row, column, diagonal, anti-diagonal.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Grid is a square field of symbols with the run length needed to win on it.
type Grid struct {
	Cells     [][]Symbol `json:"cells"`
	RunLength int        `json:"run_length"`
}

func NewGrid(size, runLength int) *Grid {
	cells := make([][]Symbol, size)
	for i := range cells {
		cells[i] = make([]Symbol, size)
	}

	return &Grid{Cells: cells, RunLength: runLength}
}

func (that *Grid) Size() int {
	return len(that.Cells)
}

func (that *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < len(that.Cells) && c.Col >= 0 && c.Col < len(that.Cells)
}

func (that *Grid) At(c Coord) Symbol {
	return that.Cells[c.Row][c.Col]
}

func (that *Grid) Set(c Coord, s Symbol) {
	that.Cells[c.Row][c.Col] = s
}

func (that *Grid) IsFree(c Coord) bool {
	return that.InBounds(c) && that.At(c) == EmptyCell
}

func (that *Grid) HasFreeCells() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return true
			}
		}
	}

	return false
}

// CheckWin reports whether sign holds RunLength consecutive cells in any row, column or diagonal.
func (that *Grid) CheckWin(sign Symbol) bool {
	if sign == EmptyCell || sign == TieMark {
		return false
	}

	size := len(that.Cells)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if that.Cells[row][col] != sign {
				continue
			}

			for _, d := range directions {
				if that.runFrom(row, col, d, sign) >= that.RunLength {
					return true
				}
			}
		}
	}

	return false
}

func (that *Grid) runFrom(row, col int, d [2]int, sign Symbol) int {
	size := len(that.Cells)
	count := 0

	for row >= 0 && row < size && col >= 0 && col < size && that.Cells[row][col] == sign {
		count++
		if count == that.RunLength {
			break
		}
		row += d[0]
		col += d[1]
	}

	return count
}
