package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/profilegen/internal/domain"
)

func testCalendar(days int) domain.Calendar {
	cal := domain.Calendar{}
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		count := 0
		if i%3 == 0 {
			count = i%5 + 1
		}
		cal.Days = append(cal.Days, domain.ContributionDay{
			Date:  start.AddDate(0, 0, i),
			Count: count,
		})
		cal.Total += count
	}
	return cal
}

func TestSnake(t *testing.T) {
	cal := testCalendar(14)

	light := Snake(cal, PaletteLight)
	dark := Snake(cal, PaletteDark)

	// One rect per day plus the snake segments; the dark variant adds a
	// background rect.
	assert.Equal(t, 14+snakeSegments, strings.Count(light, "<rect"))
	assert.Equal(t, 14+snakeSegments+1, strings.Count(dark, "<rect"))
	assert.Contains(t, dark, PaletteDark.Background)
	assert.NotEqual(t, light, dark)

	// The snake path animation covers every cell.
	assert.Contains(t, light, `<animate attributeName="x"`)
	assert.Contains(t, light, `<animate attributeName="y"`)

	// Deterministic output.
	assert.Equal(t, light, Snake(cal, PaletteLight))
}

func TestSnake_EmptyCalendar(t *testing.T) {
	svg := Snake(domain.Calendar{}, PaletteLight)

	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "</svg>")
	assert.NotContains(t, svg, "<animate")
}

func TestIntensityLevel(t *testing.T) {
	testCases := []struct {
		name     string
		count    int
		max      int
		expected int
	}{
		{name: "zero count is empty", count: 0, max: 10, expected: 0},
		{name: "zero max is empty", count: 0, max: 0, expected: 0},
		{name: "max count hits the top level", count: 10, max: 10, expected: 4},
		{name: "small count hits the bottom level", count: 1, max: 10, expected: 1},
		{name: "midrange count", count: 5, max: 10, expected: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, intensityLevel(tc.count, tc.max))
		})
	}
}

func TestLayoutSnakeCells_Serpentine(t *testing.T) {
	// Two full columns: the first runs top to bottom, the second bottom
	// to top, so the snake never jumps across the grid.
	cells := layoutSnakeCells(testCalendar(14))

	ordered := make([]snakeCell, len(cells))
	for _, cell := range cells {
		ordered[cell.visit] = cell
	}

	for i := 1; i < len(ordered); i++ {
		dx := ordered[i].x - ordered[i-1].x
		dy := ordered[i].y - ordered[i-1].y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		assert.Equal(t, snakePitch, dx+dy, "step %d is not adjacent", i)
	}
}
