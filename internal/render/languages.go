package render

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/naka-gawa/profilegen/internal/domain"
)

const (
	langCardWidth  = 350
	langRowHeight  = 28
	langHeaderSize = 55
	langBarX       = 130
	langBarWidth   = 150
)

// langColors are GitHub's linguist colors for common languages. Anything
// else gets a deterministic fallback from fallbackColors.
var langColors = map[string]string{
	"Go":         "#00ADD8",
	"Python":     "#3572A5",
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Java":       "#b07219",
	"C":          "#555555",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Ruby":       "#701516",
	"Rust":       "#dea584",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"PHP":        "#4F5D95",
	"Kotlin":     "#A97BFF",
	"Swift":      "#F05138",
	"Dockerfile": "#384d54",
	"Lua":        "#000080",
	"Haskell":    "#5e5086",
	"Elixir":     "#6e4a7e",
}

var fallbackColors = []string{
	"#8257e5", "#2f80ed", "#e36209", "#6f42c1", "#22863a", "#d73a49",
}

// languageColor returns a stable color for a language name.
func languageColor(name string) string {
	if color, ok := langColors[name]; ok {
		return color
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}

// LanguageCard renders the top-languages card as horizontal bars with
// percentage labels.
func LanguageCard(langs []domain.LanguageStat, theme Theme) string {
	height := langHeaderSize + len(langs)*langRowHeight + 15
	if len(langs) == 0 {
		height = langHeaderSize + 35
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", langCardWidth, height, langCardWidth, height)
	b.WriteString("    <style>\n        text { font-family: 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; }\n        @keyframes fadein { 0% { opacity: 0; } 100% { opacity: 1; } }\n    </style>\n")
	fmt.Fprintf(&b, `    <rect width="%d" height="%d" rx="4.5" fill="%s" stroke="%s" stroke-width="1"/>`+"\n", langCardWidth, height, theme.Background, theme.Border)
	fmt.Fprintf(&b, `    <text x="25" y="35" font-size="18" font-weight="700" fill="%s" style="animation:fadein 0.5s ease-in-out forwards">Most Used Languages</text>`+"\n", theme.SideLabels)

	if len(langs) == 0 {
		fmt.Fprintf(&b, `    <text x="25" y="70" font-size="14" fill="%s">No language data</text>`+"\n", theme.Dates)
		b.WriteString("</svg>\n")
		return b.String()
	}

	for i, lang := range langs {
		y := langHeaderSize + i*langRowHeight
		barLen := lang.Percentage / 100 * langBarWidth
		if barLen < 2 {
			barLen = 2
		}
		fmt.Fprintf(&b, `    <g transform="translate(0, %d)" style="animation:fadein 0.5s ease-in-out forwards">`+"\n", y)
		fmt.Fprintf(&b, `        <text x="25" y="14" font-size="13" font-weight="600" fill="%s">%s</text>`+"\n", theme.Dates, escapeText(lang.Name))
		fmt.Fprintf(&b, `        <rect x="%d" y="4" width="%d" height="10" rx="5" fill="%s"/>`+"\n", langBarX, langBarWidth, theme.BarTrack)
		fmt.Fprintf(&b, `        <rect x="%d" y="4" width="%.1f" height="10" rx="5" fill="%s"/>`+"\n", langBarX, barLen, languageColor(lang.Name))
		fmt.Fprintf(&b, `        <text x="%d" y="14" font-size="12" fill="%s">%.1f%%</text>`+"\n", langBarX+langBarWidth+10, theme.Dates, lang.Percentage)
		b.WriteString("    </g>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
