// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of correct answers in [0, 1].
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// RunSummary aggregates the answers of one practice run.
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time
	Answered  int
	Correct   int
}

// Accuracy returns the run accuracy in [0, 1].
func (r RunSummary) Accuracy() float64 {
	return Accuracy(r.Correct, r.Answered)
}

// SummarizeRuns groups sessions by run in first-seen order.
func SummarizeRuns(sessions []model.Session) []RunSummary {
	index := map[string]int{}
	var runs []RunSummary
	for _, s := range sessions {
		i, ok := index[s.RunID]
		if !ok {
			runs = append(runs, RunSummary{RunID: s.RunID, StartedAt: s.At})
			i = len(runs) - 1
			index[s.RunID] = i
		}
		r := &runs[i]
		r.Answered++
		if s.Correct {
			r.Correct++
		}
		if s.At.After(r.EndedAt) {
			r.EndedAt = s.At
		}
	}
	return runs
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// AccuracyCurve returns the rolling accuracy percentage over sessions.
func AccuracyCurve(sessions []model.Session, window int) []float64 {
	values := make([]float64, len(sessions))
	for i, s := range sessions {
		if s.Correct {
			values[i] = 100
		}
	}
	return MovingAverage(values, window)
}

// RenderSummary prints answer totals and the accuracy trend.
func RenderSummary(w io.Writer, sessions []model.Session, window int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	correct := 0
	for _, s := range sessions {
		if s.Correct {
			correct++
		}
	}
	runs := SummarizeRuns(sessions)
	best := 0.0
	for _, r := range runs {
		best = math.Max(best, r.Accuracy())
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Answers: %d", len(sessions)),
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Accuracy: %.1f%%", Accuracy(correct, len(sessions))*100),
		fmt.Sprintf("Best run: %.1f%%", best*100),
		fmt.Sprintf("Trend: [%s]", Sparkline(AccuracyCurve(sessions, window))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderStatTable prints ledger rows with their weights. Weights are
// coloured when useColor is set.
func RenderStatTable(w io.Writer, title string, rows []ledger.Row, useColor bool) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No statistics found.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	headers := []string{"Class", "Component", "Attempts", "Success", "Weight", "Last trained"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, StatCells(r))
	}
	lines := formatTable(headers, tableRows, map[int]bool{2: true, 3: true, 4: true})
	for i, line := range lines {
		if useColor && i > 0 {
			line = StyleWeight(line, rows[i-1].Weight)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// StatCells formats a row for tabular display.
func StatCells(r ledger.Row) []string {
	last := "never"
	if !r.LastTrainedAt.IsZero() {
		last = r.LastTrainedAt.Local().Format("2006-01-02 15:04")
	}
	return []string{
		r.Key.Class.String(),
		lexicon.Label(r.Key),
		fmt.Sprintf("%d", r.Attempts),
		fmt.Sprintf("%.1f%%", r.SuccessRate),
		FormatWeight(r.Weight),
		last,
	}
}
