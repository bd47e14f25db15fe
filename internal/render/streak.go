package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// streakCardTemplate is the 495x195 three-panel card: total contributions,
// current streak with flame and ring, longest streak.
var streakCardTemplate = template.Must(template.New("streak").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" style="isolation:isolate" viewBox="0 0 495 195" width="495px" height="195px" direction="ltr">
    <style>
        @keyframes currstreak {
            0% { font-size: 3px; opacity: 0.2; }
            80% { font-size: 34px; opacity: 1; }
            100% { font-size: 28px; opacity: 1; }
        }
        @keyframes fadein {
            0% { opacity: 0; }
            100% { opacity: 1; }
        }
    </style>
    <defs>
        <clipPath id="outer">
            <rect width="495" height="195"/>
        </clipPath>
    </defs>
    <g clip-path="url(#outer)">
        <g style="isolation:isolate">
            <rect width="495" height="195" style="fill:{{.Theme.Background}}" stroke-width="1.5" stroke="{{.Theme.Border}}" stroke-linejoin="miter" stroke-linecap="square" stroke-miterlimit="3"/>
        </g>
        <line x1="330" y1="28" x2="330" y2="170" vector-effect="non-scaling-stroke" stroke-width="1" stroke="{{.Theme.Stroke}}" stroke-linejoin="miter" stroke-linecap="square" stroke-miterlimit="3"/>
        <line x1="165" y1="28" x2="165" y2="170" vector-effect="non-scaling-stroke" stroke-width="1" stroke="{{.Theme.Stroke}}" stroke-linejoin="miter" stroke-linecap="square" stroke-miterlimit="3"/>
        <g transform="translate(0, 0)">
            <g transform="translate(25, 48)">
                <text x="57.5" y="0" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:14px;font-style:normal;fill:{{.Theme.SideLabels}};stroke:none;animation:fadein 0.5s ease-in-out forwards">Total Contributions</text>
            </g>
            <g transform="translate(25, 84)">
                <text x="57.5" y="0" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:28px;font-style:normal;fill:{{.Theme.SideNums}};stroke:none;animation:fadein 0.5s ease-in-out forwards">{{.Total}}</text>
            </g>
        </g>
        <g transform="translate(165, 0)">
            <g transform="translate(82.5, 48)">
                <text x="0" y="0" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:14px;font-style:normal;fill:{{.Theme.CurrStreakLabel}};stroke:none;text-anchor:middle;animation:fadein 0.5s ease-in-out forwards">Current Streak</text>
            </g>
            <g transform="translate(82.5, 108)">
                <text x="0" y="-20" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:28px;font-style:normal;fill:{{.Theme.CurrStreakNum}};stroke:none;text-anchor:middle;animation:currstreak 0.6s ease-in-out forwards">{{.Current}}</text>
                <text x="0" y="12" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:400;font-size:14px;font-style:normal;fill:{{.Theme.Dates}};stroke:none;text-anchor:middle;animation:fadein 0.5s ease-in-out forwards">{{.DateRange}}</text>
            </g>
            <g transform="translate(40, 71)">
                <circle r="40" cx="42.5" cy="42.5" fill="none" stroke="{{.Theme.Ring}}" stroke-width="5" style="animation:fadein 0.5s ease-in-out forwards"/>
                <g transform="translate(19, 22)">
                    <svg xmlns="http://www.w3.org/2000/svg" width="48" height="48" viewBox="0 0 512 512">
                        <path fill="{{.Theme.Fire}}" d="M350.6 69.5C345.7 45 324.4 28.6 315.6 35c-4.5 3.3-2.7 20.2 1.8 41.9C311.7 56.3 289 30 264.7 30c-11.7 0-15.7 19.8-9.9 45.4-9.5-15.5-22.4-28.9-36.3-28.9-7.6 0-12.3 15.8-7.6 36.4-8.2-12-18.2-20.3-28.7-20.3-17 0-25.1 38.4-18.5 67.2C120.9 159 103 204.6 103 256c0 109.4 64.6 198 144.5 198 79.9 0 144.5-88.6 144.5-198 0-53.1-18.6-100.4-62.2-131.7 0-.1 12.1-35.8 20.8-54.8z"/>
                    </svg>
                </g>
            </g>
        </g>
        <g transform="translate(330, 0)">
            <g transform="translate(82.5, 48)">
                <text x="0" y="0" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:14px;font-style:normal;fill:{{.Theme.SideLabels}};stroke:none;text-anchor:middle;animation:fadein 0.5s ease-in-out forwards">Longest Streak</text>
            </g>
            <g transform="translate(82.5, 84)">
                <text x="0" y="0" style="font-family:'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;font-weight:700;font-size:28px;font-style:normal;fill:{{.Theme.SideNums}};stroke:none;text-anchor:middle;animation:fadein 0.5s ease-in-out forwards">{{.Longest}}</text>
            </g>
        </g>
    </g>
</svg>`))

type streakCardData struct {
	Theme     Theme
	Total     string
	Current   int
	Longest   int
	DateRange string
}

// StreakCard renders the streak statistics card.
func StreakCard(streaks domain.Streaks, theme Theme) (string, error) {
	data := streakCardData{
		Theme:     theme,
		Total:     formatCount(streaks.Total),
		Current:   streaks.Current,
		Longest:   streaks.Longest,
		DateRange: currentStreakRange(streaks),
	}

	var buf bytes.Buffer
	if err := streakCardTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render streak card: %w", err)
	}
	return buf.String(), nil
}

func currentStreakRange(streaks domain.Streaks) string {
	if streaks.Current == 0 || streaks.CurrentStart.IsZero() {
		return "No active streak"
	}
	return fmt.Sprintf("%s - Present", formatDate(streaks.CurrentStart))
}

func formatDate(t time.Time) string {
	return t.Format("Jan 02")
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
