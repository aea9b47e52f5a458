package board

import "strings"

// Cell glyphs used by Draw.
const (
	glyphEmpty  = '.'
	glyphRoom   = 'H'
	glyphStable = '^'
	glyphField  = '~'
)

// Draw renders the board as ASCII art: rooms H, stables ^, fields ~, empty
// cells dots, pastures outlined by their fences, with coordinates in the
// margins. Purely a read of derived state; renderers never mutate.
func Draw(p *Player) string {
	shape := p.Shape()
	cells := make([][]rune, shape.Rows)
	for r := range cells {
		cells[r] = make([]rune, shape.Cols)
		for c := range cells[r] {
			cells[r][c] = glyphEmpty
		}
	}
	for _, c := range p.Registry().CellsOf(KindRoom) {
		cells[c.Row][c.Col] = glyphRoom
	}
	for _, c := range p.Registry().CellsOf(KindField) {
		cells[c.Row][c.Col] = glyphField
	}
	for _, c := range p.Registry().CellsOf(KindStable) {
		cells[c.Row][c.Col] = glyphStable
	}
	return drawGrid(cells, 1, 3, p.FenceSet())
}

// drawGrid lays the cell glyphs out on a character grid where every cell is
// cellH x cellW characters framed by one-character gutters, draws fence
// segments along the gutters, and joins fence corners.
func drawGrid(cells [][]rune, cellH, cellW int, fences map[Edge]bool) string {
	rows := len(cells)
	cols := len(cells[0])
	gridH := (cellH+1)*rows + 1
	gridW := (cellW+1)*cols + 1

	grid := make([][]rune, gridH)
	for i := range grid {
		grid[i] = make([]rune, gridW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	hCorners := make(map[Coord]int)
	vCorners := make(map[Coord]int)
	for e := range fences {
		horizontal := e.To.Col-e.From.Col == 1
		start := Coord{e.From.Row * (cellH + 1), e.From.Col * (cellW + 1)}
		if horizontal {
			end := Coord{start.Row, start.Col + cellW + 1}
			hCorners[start]++
			hCorners[end]++
			for j := start.Col + 1; j < end.Col; j++ {
				grid[start.Row][j] = '-'
			}
		} else {
			end := Coord{start.Row + cellH + 1, start.Col}
			vCorners[start]++
			vCorners[end]++
			for i := start.Row + 1; i < end.Row; i++ {
				grid[i][start.Col] = '|'
			}
		}
	}
	for corner, n := range hCorners {
		if n > 1 {
			grid[corner.Row][corner.Col] = '-'
		}
	}
	for corner, n := range vCorners {
		if n > 1 {
			grid[corner.Row][corner.Col] = '|'
		}
	}
	for corner := range hCorners {
		if vCorners[corner] > 0 {
			grid[corner.Row][corner.Col] = '+'
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			top := 1 + r*(cellH+1)
			left := 1 + c*(cellW+1)
			for i := 0; i < cellH; i++ {
				for j := 0; j < cellW; j++ {
					grid[top+i][left+j] = cells[r][c]
				}
			}
		}
	}

	// Coordinate margins.
	var b strings.Builder
	b.WriteString("  ")
	for c := 0; c < cols; c++ {
		pad := cellW + 1
		for i := 0; i < pad; i++ {
			if i == pad/2 {
				b.WriteRune(rune('0' + c%10))
			} else {
				b.WriteRune(' ')
			}
		}
	}
	b.WriteRune('\n')
	for i, row := range grid {
		if i%(cellH+1) == 1+cellH/2 {
			b.WriteRune(rune('0' + (i/(cellH+1))%10))
			b.WriteRune(' ')
		} else {
			b.WriteString("  ")
		}
		b.WriteString(string(row))
		b.WriteRune('\n')
	}
	return b.String()
}
