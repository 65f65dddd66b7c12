package stats

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// WeightLevel buckets a training weight for display.
type WeightLevel int

// Weight levels, from well trained to never trained.
const (
	LevelLow WeightLevel = iota
	LevelMedium
	LevelHigh
	LevelVeryHigh
	LevelUntrained
)

// Colours per weight level.
var weightColors = map[WeightLevel]lipgloss.Color{
	LevelLow:       lipgloss.Color("#44bb44"),
	LevelMedium:    lipgloss.Color("#ffbb00"),
	LevelHigh:      lipgloss.Color("#ff8800"),
	LevelVeryHigh:  lipgloss.Color("#ff4444"),
	LevelUntrained: lipgloss.Color("#888888"),
}

// LevelFor buckets weight at 25, 50, 100 and 1000.
func LevelFor(weight float64) WeightLevel {
	switch {
	case weight >= 1000:
		return LevelUntrained
	case weight >= 100:
		return LevelVeryHigh
	case weight >= 50:
		return LevelHigh
	case weight >= 25:
		return LevelMedium
	default:
		return LevelLow
	}
}

// WeightColor returns the display colour for weight.
func WeightColor(weight float64) lipgloss.Color {
	return weightColors[LevelFor(weight)]
}

// FormatWeight renders a weight compactly: "new" when untrained,
// integers without decimals, otherwise one decimal.
func FormatWeight(weight float64) string {
	if weight >= 1000 {
		return "new"
	}
	if weight == math.Trunc(weight) {
		return fmt.Sprintf("%.0f", weight)
	}
	return fmt.Sprintf("%.1f", weight)
}

// StyleWeight colours text by weight.
func StyleWeight(text string, weight float64) string {
	return lipgloss.NewStyle().Foreground(WeightColor(weight)).Render(text)
}
