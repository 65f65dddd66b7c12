package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styledToken is a pre-rendered word or separator with its cell width.
type styledToken struct {
	s       string
	width   int
	isSpace bool
}

var spaceToken = styledToken{s: " ", width: 1, isSpace: true}

// wordTokens renders words with their styles, separated by single spaces.
// styles may be shorter than words; missing entries use fallback.
func wordTokens(words []string, styles []lipgloss.Style, fallback lipgloss.Style) []styledToken {
	out := make([]styledToken, 0, len(words)*2)
	for i, w := range words {
		if i > 0 {
			out = append(out, spaceToken)
		}
		style := fallback
		if i < len(styles) {
			style = styles[i]
		}
		out = append(out, styledToken{
			s:     style.Render(w),
			width: runewidth.StringWidth(w),
		})
	}
	return out
}

func renderTokens(tokens []styledToken) string {
	var b strings.Builder
	for _, item := range tokens {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapTokens breaks lines at the last separator that fits width. A token
// wider than width gets a line of its own.
func wrapTokens(tokens []styledToken, width int) string {
	if width <= 0 {
		return renderTokens(tokens)
	}
	var out strings.Builder
	line := make([]styledToken, 0, len(tokens))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(tokens); {
		item := tokens[i]
		if item.isSpace && len(line) == 0 {
			i++
			continue
		}
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderTokens(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledToken{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderTokens(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderTokens(line))
	return out.String()
}

func lineWidthOf(line []styledToken) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledToken) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
