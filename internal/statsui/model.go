// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/model"
	"github.com/verte-zerg/tonedrill/internal/stats"
)

const (
	tabOverview = iota
	tabComponents
)

const trendWindow = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// classFilters is the cycle order of the class filter; "" shows every class.
var classFilters = []string{"", "prefix", "ending", "tone", "unit", "combination"}

var sortKeys = []ledger.SortKey{
	ledger.SortWeight,
	ledger.SortSuccessRate,
	ledger.SortAttempts,
	ledger.SortLastTrained,
	ledger.SortValue,
	ledger.SortClass,
}

// SessionStore reads and clears the session history.
type SessionStore interface {
	stats.SessionLister
	ClearSessions(ctx context.Context) error
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	ledger   *ledger.Ledger
	sessions SessionStore
	cfg      model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	table     table.Model

	width  int
	height int

	searchMode  bool
	search      textinput.Model
	confirmMode bool
}

// NewModel constructs a stats UI model.
func NewModel(l *ledger.Ledger, sessions SessionStore, cfg model.StatsConfig) *Model {
	if cfg.SortBy == "" {
		cfg.SortBy = ledger.SortWeight.String()
		cfg.Desc = true
	}
	m := &Model{
		ledger:   l,
		sessions: sessions,
		cfg:      cfg,
		tabs:     []string{"Overview", "Components"},
		overview: viewport.New(0, 0),
	}
	m.search = textinput.New()
	m.search.Prompt = "Search: "
	m.search.Placeholder = "ma_3, zh, T4…"
	m.search.Cursor.SetMode(cursor.CursorBlink)
	m.search.SetValue(cfg.Search)
	m.table = table.New(
		table.WithColumns(componentColumns()),
		table.WithHeight(1),
	)
	m.table.SetStyles(tableStyles())
	m.table.Focus()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirmMode {
			return m.updateConfirm(msg)
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "c":
			m.cfg.Class = nextString(classFilters, m.cfg.Class)
			m.refreshReport()
			return m, nil
		case "s":
			m.cfg.SortBy = nextSortKey(m.cfg.SortBy).String()
			m.refreshReport()
			return m, nil
		case "o":
			m.cfg.Desc = !m.cfg.Desc
			m.refreshReport()
			return m, nil
		case "/":
			m.searchMode = true
			return m, m.search.Focus()
		case "R":
			m.confirmMode = true
			return m, nil
		case "g", "home":
			if m.activeTab == tabComponents {
				m.table.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabComponents {
				m.table.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabComponents {
			m.table, cmd = m.table.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmMode {
		return fitLines(m.renderConfirm(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" || m.searchMode {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(bodyHeight-1, 1))
	m.search.Width = max(10, m.width-lipgloss.Width(m.search.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = ((m.activeTab+delta)%count + count) % count
	if m.activeTab == tabComponents {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.ledger, m.sessions, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		m.table.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.report = report
	m.table.SetRows(componentRows(report.Rows))
	m.table.GotoTop()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + headerStyle.Render(truncateLine(m.filterSummary(), m.width))
}

func (m *Model) filterSummary() string {
	class := m.cfg.Class
	if class == "" {
		class = "all"
	}
	order := "asc"
	if m.cfg.Desc {
		order = "desc"
	}
	search := m.cfg.Search
	if search == "" {
		search = "-"
	}
	return fmt.Sprintf("Class: %s  Search: %s  Sort: %s %s  Rows: %d",
		class, search, m.cfg.SortBy, order, len(m.report.Rows))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabComponents {
		if len(m.report.Rows) == 0 {
			return "No statistics found."
		}
		return m.table.View()
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Class: c  Sort: s  Order: o  Search: /  Reset: R  Quit: q")
	if m.searchMode {
		return m.search.View() + "\n" + headerStyle.Render("enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.search.SetValue(m.cfg.Search)
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.search.Blur()
		m.cfg.Search = strings.TrimSpace(m.search.Value())
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmMode = false
		if err := m.resetAll(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.refreshReport()
	case "n", "N", "esc", "q":
		m.confirmMode = false
	}
	return m, nil
}

func (m *Model) resetAll() error {
	ctx := context.Background()
	if err := m.ledger.ResetAll(ctx); err != nil {
		return err
	}
	if err := m.sessions.ClearSessions(ctx); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func (m *Model) renderConfirm() string {
	body := []string{
		cardValueStyle.Render("Reset all statistics?"),
		headerStyle.Render("Every component returns to untrained and the history is cleared."),
		headerStyle.Render("y to confirm / n to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderOverview(r stats.Report, width int) string {
	if len(r.Sessions) == 0 && len(r.Rows) == 0 {
		return "No sessions found."
	}
	correct := 0
	for _, s := range r.Sessions {
		if s.Correct {
			correct++
		}
	}
	runs := stats.SummarizeRuns(r.Sessions)
	cards := []string{
		metricCard("Answers", fmt.Sprintf("%d", len(r.Sessions))),
		metricCard("Runs", fmt.Sprintf("%d", len(runs))),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy(correct, len(r.Sessions))*100)),
		metricCard("Components", fmt.Sprintf("%d", len(r.Rows))),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	lines := []string{summary, ""}
	if len(r.Sessions) > 0 {
		curve := stats.AccuracyCurve(r.Sessions, trendWindow)
		if len(curve) > width-10 && width > 10 {
			curve = curve[len(curve)-(width-10):]
		}
		lines = append(lines, headerStyle.Render("Trend")+" "+stats.Sparkline(curve), "")
	}
	if len(r.Weakest) > 0 {
		lines = append(lines, headerStyle.Render("Weakest"))
		for _, row := range r.Weakest {
			lines = append(lines, stats.StyleWeight(weakLine(row), row.Weight))
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func weakLine(r ledger.Row) string {
	cells := stats.StatCells(r)
	return fmt.Sprintf("  %-12s %-16s %6s %7s", cells[0], cells[1], cells[3], cells[4])
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func componentColumns() []table.Column {
	return []table.Column{
		{Title: "Class", Width: 12},
		{Title: "Component", Width: 24},
		{Title: "Attempts", Width: 8},
		{Title: "Success", Width: 8},
		{Title: "Weight", Width: 7},
		{Title: "Last trained", Width: 16},
	}
}

func componentRows(rows []ledger.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(stats.StatCells(r))
	}
	return out
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextString(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func nextSortKey(current string) ledger.SortKey {
	key, err := ledger.ParseSortKey(current)
	if err != nil {
		return sortKeys[0]
	}
	for i, k := range sortKeys {
		if k == key {
			return sortKeys[(i+1)%len(sortKeys)]
		}
	}
	return sortKeys[0]
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
