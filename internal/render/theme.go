// Package render produces the SVG artifacts: the streak card, the
// top-languages card and the animated contribution-grid snake.
// All output is deterministic for a given input.
package render

import "fmt"

// Theme holds the colors for the stats cards.
type Theme struct {
	Name            string
	Background      string
	Border          string
	Stroke          string
	Ring            string
	Fire            string
	CurrStreakNum   string
	SideNums        string
	CurrStreakLabel string
	SideLabels      string
	Dates           string
	BarTrack        string
}

var themes = map[string]Theme{
	"dracula": {
		Name:            "dracula",
		Background:      "#282A36",
		Border:          "#E4E2E2",
		Stroke:          "#E4E2E2",
		Ring:            "#FF6E96",
		Fire:            "#FF6E96",
		CurrStreakNum:   "#79DAFA",
		SideNums:        "#FF6E96",
		CurrStreakLabel: "#79DAFA",
		SideLabels:      "#FF6E96",
		Dates:           "#F8F8F2",
		BarTrack:        "#44475A",
	},
	"light": {
		Name:            "light",
		Background:      "#FFFEFE",
		Border:          "#E4E2E2",
		Stroke:          "#E4E2E2",
		Ring:            "#FB8C00",
		Fire:            "#FB8C00",
		CurrStreakNum:   "#151515",
		SideNums:        "#151515",
		CurrStreakLabel: "#FB8C00",
		SideLabels:      "#151515",
		Dates:           "#464646",
		BarTrack:        "#E4E2E2",
	},
	"dark": {
		Name:            "dark",
		Background:      "#151515",
		Border:          "#E4E2E2",
		Stroke:          "#E4E2E2",
		Ring:            "#FB8C00",
		Fire:            "#FB8C00",
		CurrStreakNum:   "#FEFEFE",
		SideNums:        "#FEFEFE",
		CurrStreakLabel: "#FB8C00",
		SideLabels:      "#FB8C00",
		Dates:           "#9E9E9E",
		BarTrack:        "#333333",
	},
}

// ThemeNamed looks a theme up by name.
func ThemeNamed(name string) (Theme, error) {
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}
