package universe

import (
	"math/rand"

	"github.com/pkg/errors"
)

type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

//ErrInvalidIndex is returned when a coordinate lies outside the grid
var ErrInvalidIndex = errors.New("invalid cell index")

//Grid is the square field where cells are living
//cells are addressed by (col, row), both in [0, Size)
//the next generation is calculated into the spare buffer and then the buffers are swapped
type Grid struct {
	size    int
	cells   [][]Cell
	tmpBuff [][]Cell
}

//NewGrid creates the Grid with all cells dead
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = 1
	}
	return &Grid{
		size:    size,
		cells:   createArea(size),
		tmpBuff: createArea(size),
	}
}

//Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

//Toggle inverses the cell state at col, row
func (g *Grid) Toggle(col int, row int) error {
	if err := g.check(col, row); err != nil {
		return err
	}
	g.cells[row][col] = !g.cells[row][col]
	return nil
}

//Cell returns the cell state at col, row
func (g *Grid) Cell(col int, row int) (Cell, error) {
	if err := g.check(col, row); err != nil {
		return Dead, err
	}
	return g.cells[row][col], nil
}

//Cells returns a copy of the field indexed as [row][col]
func (g *Grid) Cells() [][]Cell {
	c := createArea(g.size)
	for row := range g.cells {
		copy(c[row], g.cells[row])
	}
	return c
}

//Walk walks the entire grid and calls the cb function for each cell
func (g *Grid) Walk(cb func(col int, row int, c Cell)) {
	for row := range g.cells {
		for col := range g.cells[row] {
			cb(col, row, g.cells[row][col])
		}
	}
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	live := 0
	g.Walk(func(_ int, _ int, c Cell) {
		if c {
			live++
		}
	})
	return live
}

//Step calculates the next generation and replaces the current one with it
//returns the count of live cells and whether any cell has changed
func (g *Grid) Step() (liveCells int, changed bool) {
	for row := range g.cells {
		for col := range g.cells[row] {
			next := g.cellNextState(col, row)
			if next {
				liveCells++
			}
			changed = changed || next != g.cells[row][col]
			g.tmpBuff[row][col] = next
		}
	}
	g.cells, g.tmpBuff = g.tmpBuff, g.cells
	return
}

//Reset kills all cells
func (g *Grid) Reset() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = Dead
		}
	}
}

//Settle makes the cells alive at the given [col, row] coordinates
//coordinates outside the grid are skipped
func (g *Grid) Settle(coords [][]int) {
	for _, v := range coords {
		if len(v) < 2 || g.check(v[0], v[1]) != nil {
			continue
		}
		g.cells[v[1]][v[0]] = Alive
	}
}

//SettleRandom resets the grid and settles it with random data
func (g *Grid) SettleRandom(seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	g.Reset()
	for i := 0; i < g.size*g.size/4; i++ {
		g.cells[rnd.Intn(g.size)][rnd.Intn(g.size)] = Alive
	}
}

//neighbours counts live cells among the up to 8 adjacent positions
//positions outside the grid are absent, there is no wrapping
func (g *Grid) neighbours(col int, row int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			c, r := col+dc, row+dr
			if c < 0 || r < 0 || c >= g.size || r >= g.size {
				continue
			}
			if g.cells[r][c] {
				n++
			}
		}
	}
	return n
}

//cellNextState applies the B3/S23 rule to the cell
func (g *Grid) cellNextState(col int, row int) Cell {
	switch n := g.neighbours(col, row); {
	case n == 3:
		return Alive
	case n == 2:
		return g.cells[row][col]
	default:
		return Dead
	}
}

func (g *Grid) check(col int, row int) error {
	if col < 0 || row < 0 || col >= g.size || row >= g.size {
		return errors.Wrapf(ErrInvalidIndex, "(%d, %d) is outside %dx%d", col, row, g.size, g.size)
	}
	return nil
}

//createArea allocates a square area backed by one slice
func createArea(size int) [][]Cell {
	area := make([][]Cell, size)
	b := make([]Cell, size*size)
	for i := range area {
		start := size * i
		area[i] = b[start : start+size : start+size]
	}
	return area
}
