package render

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// Palette holds the colors for the contribution-grid snake.
type Palette struct {
	Name       string
	Background string
	Levels     [5]string // empty cell + four contribution intensities
	Snake      string
}

// PaletteLight mirrors GitHub's light contribution graph.
var PaletteLight = Palette{
	Name:       "light",
	Background: "none",
	Levels:     [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	Snake:      "#7c3aed",
}

// PaletteDark mirrors GitHub's dark contribution graph.
var PaletteDark = Palette{
	Name:       "dark",
	Background: "#0d1117",
	Levels:     [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
	Snake:      "#a371f7",
}

const (
	snakeCellSize = 11
	snakeCellGap  = 2
	snakePitch    = snakeCellSize + snakeCellGap
	snakeMargin   = 4
	snakeRows     = 7
	snakeSegments = 4
	// Seconds the snake spends on each cell.
	snakeStepSeconds = 0.05
)

type snakeCell struct {
	x, y  int
	level int
	visit int // position in the serpentine traversal
}

// Snake renders the contribution grid with a snake that traverses it in a
// serpentine path, dimming each cell as it passes. The animation runs once
// and freezes.
func Snake(cal domain.Calendar, palette Palette) string {
	cells := layoutSnakeCells(cal)
	cols := (len(cal.Days) + snakeRows - 1) / snakeRows
	if cols == 0 {
		cols = 1
	}
	width := snakeMargin*2 + cols*snakePitch - snakeCellGap
	height := snakeMargin*2 + snakeRows*snakePitch - snakeCellGap
	total := float64(len(cells)) * snakeStepSeconds

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	if palette.Background != "none" {
		fmt.Fprintf(&b, `    <rect width="%d" height="%d" fill="%s"/>`+"\n", width, height, palette.Background)
	}

	b.WriteString(`    <g shape-rendering="crispEdges">` + "\n")
	for _, cell := range cells {
		fmt.Fprintf(&b, `        <rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s">`,
			cell.x, cell.y, snakeCellSize, snakeCellSize, palette.Levels[cell.level])
		if cell.level > 0 {
			begin := float64(cell.visit) * snakeStepSeconds
			fmt.Fprintf(&b, `<animate attributeName="opacity" begin="%.2fs" dur="0.2s" values="1;0.25" fill="freeze"/>`, begin)
		}
		b.WriteString("</rect>\n")
	}
	b.WriteString("    </g>\n")

	// Snake body: the head follows the serpentine path, each tail segment
	// trails it by one step.
	ordered := make([]snakeCell, len(cells))
	for _, cell := range cells {
		ordered[cell.visit] = cell
	}
	xs := make([]string, len(ordered))
	ys := make([]string, len(ordered))
	for i, cell := range ordered {
		xs[i] = fmt.Sprintf("%d", cell.x)
		ys[i] = fmt.Sprintf("%d", cell.y)
	}
	xValues := strings.Join(xs, ";")
	yValues := strings.Join(ys, ";")

	for seg := 0; seg < snakeSegments && seg < len(ordered); seg++ {
		opacity := 1.0 - float64(seg)*0.2
		begin := float64(seg) * snakeStepSeconds
		fmt.Fprintf(&b, `    <rect x="%s" y="%s" width="%d" height="%d" rx="3" fill="%s" opacity="%.1f">`+"\n",
			xs[0], ys[0], snakeCellSize, snakeCellSize, palette.Snake, opacity)
		fmt.Fprintf(&b, `        <animate attributeName="x" begin="%.2fs" dur="%.2fs" calcMode="discrete" values="%s" fill="freeze"/>`+"\n", begin, total, xValues)
		fmt.Fprintf(&b, `        <animate attributeName="y" begin="%.2fs" dur="%.2fs" calcMode="discrete" values="%s" fill="freeze"/>`+"\n", begin, total, yValues)
		b.WriteString("    </rect>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// layoutSnakeCells places each calendar day on the grid (columns are weeks,
// rows are weekdays) and assigns its serpentine visit order: even columns
// run top to bottom, odd columns bottom to top.
func layoutSnakeCells(cal domain.Calendar) []snakeCell {
	max := 0
	for _, day := range cal.Days {
		if day.Count > max {
			max = day.Count
		}
	}

	cells := make([]snakeCell, 0, len(cal.Days))
	visit := 0
	cols := (len(cal.Days) + snakeRows - 1) / snakeRows
	for col := 0; col < cols; col++ {
		for step := 0; step < snakeRows; step++ {
			row := step
			if col%2 == 1 {
				row = snakeRows - 1 - step
			}
			idx := col*snakeRows + row
			if idx >= len(cal.Days) {
				continue
			}
			cells = append(cells, snakeCell{
				x:     snakeMargin + col*snakePitch,
				y:     snakeMargin + row*snakePitch,
				level: intensityLevel(cal.Days[idx].Count, max),
				visit: visit,
			})
			visit++
		}
	}
	return cells
}

// intensityLevel buckets a daily count into the five fill levels.
func intensityLevel(count, max int) int {
	if count == 0 || max == 0 {
		return 0
	}
	level := (count*4 + max - 1) / max // ceil(count/max * 4)
	if level > 4 {
		level = 4
	}
	if level < 1 {
		level = 1
	}
	return level
}
