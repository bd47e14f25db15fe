package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// File names of the published artifacts.
const (
	StreakFileName    = "streak-stats.svg"
	LanguagesFileName = "top-languages.svg"
	SnakeFileName     = "github-contribution-grid-snake.svg"
	SnakeDarkFileName = "github-contribution-grid-snake-dark.svg"
)

// WriteStats renders the streak and top-languages cards into dir.
func WriteStats(dir string, stats *domain.ProfileStats, theme Theme) error {
	streak, err := StreakCard(stats.Streaks, theme)
	if err != nil {
		return err
	}
	files := map[string]string{
		StreakFileName:    streak,
		LanguagesFileName: LanguageCard(stats.Languages, theme),
	}
	return writeFiles(dir, files)
}

// WriteSnake renders both snake variants into dir.
func WriteSnake(dir string, cal domain.Calendar) error {
	files := map[string]string{
		SnakeFileName:     Snake(cal, PaletteLight),
		SnakeDarkFileName: Snake(cal, PaletteDark),
	}
	return writeFiles(dir, files)
}

func writeFiles(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
