// Package tui provides the Bubble Tea listening drill interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/tonedrill/internal/generator"
	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
	"github.com/verte-zerg/tonedrill/internal/speech"
	statsPkg "github.com/verte-zerg/tonedrill/internal/stats"
)

// SessionStore records the answered items of a run.
type SessionStore interface {
	InsertSession(ctx context.Context, sess model.Session) (int64, error)
	ListSessions(ctx context.Context, limit int) ([]model.Session, error)
}

type keyMap struct {
	Replay  key.Binding
	Reveal  key.Binding
	Correct key.Binding
	Wrong   key.Binding
	Weights key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Replay, k.Reveal, k.Correct, k.Wrong, k.Weights, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Replay:  key.NewBinding(key.WithKeys(" ", "r"), key.WithHelp("space", "replay")),
	Reveal:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reveal")),
	Correct: key.NewBinding(key.WithKeys("y", "right"), key.WithHelp("y/→", "heard it")),
	Wrong:   key.NewBinding(key.WithKeys("n", "left"), key.WithHelp("n/←", "missed")),
	Weights: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weights")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

type lastAnswer struct {
	item    model.DrillItem
	correct bool
}

// spokenMsg reports the outcome of a speech command.
type spokenMsg struct {
	err error
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	config   model.Config
	ledger   *ledger.Ledger
	sessions SessionStore
	gen      *generator.Generator
	speaker  speech.Speaker
	keys     keyMap
	help     help.Model
	runID    string
	now      func() time.Time

	width  int
	height int

	item     model.DrillItem
	weights  *ledger.Snapshot
	revealed bool
	genErr   error
	last     *lastAnswer

	runAnswered int
	runCorrect  int
	allAnswered int
	allCorrect  int
}

var (
	formStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pinyinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44BB44"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill TUI model and draws the first item.
func NewModel(cfg model.Config, l *ledger.Ledger, sessions SessionStore, gen *generator.Generator, speaker speech.Speaker) *Model {
	if speaker == nil {
		speaker = speech.Nop{}
	}
	m := &Model{
		config:   cfg,
		ledger:   l,
		sessions: sessions,
		gen:      gen,
		speaker:  speaker,
		keys:     defaultKeys,
		help:     help.New(),
		runID:    uuid.NewString(),
		now:      time.Now,
	}
	m.loadFooterStats()
	m.nextItem()
	return m
}

// RunID identifies the answers recorded by this model.
func (m *Model) RunID() string {
	return m.runID
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.speakCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spokenMsg:
		if msg.err != nil {
			logErrf("failed to play audio: %v\n", msg.err)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Replay):
			return m, m.speakCmd()
		case key.Matches(msg, m.keys.Reveal):
			if m.item != nil {
				m.revealed = true
			}
			return m, nil
		case key.Matches(msg, m.keys.Correct):
			return m, m.answer(true)
		case key.Matches(msg, m.keys.Wrong):
			return m, m.answer(false)
		case key.Matches(msg, m.keys.Weights):
			m.config.ShowWeights = !m.config.ShowWeights
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	contentWidth := max(int(float64(m.width)*0.70), 1)
	content = lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(m.wrapBody(contentWidth))
	footer := m.renderFooter()
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLines := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.keys))
	return body + "\n" + footerLines
}

func (m *Model) renderBody() string {
	return m.wrapBody(0)
}

func (m *Model) wrapBody(width int) string {
	if m.genErr != nil {
		return wrongStyle.Render(m.genErr.Error())
	}
	lines := []string{}
	if m.last != nil {
		lines = append(lines, m.renderLast(), "")
	}
	if !m.revealed {
		lines = append(lines, pendingStyle.Render(fmt.Sprintf("Listen… (%d syllables)", len(m.item))))
		return strings.Join(lines, "\n")
	}
	lex := m.gen.Lexicon()
	forms := make([]string, len(m.item))
	marks := make([]string, len(m.item))
	for i, u := range m.item {
		forms[i] = lex.Form(u)
		marks[i] = lexicon.Pinyin(u)
	}
	lines = append(lines,
		wrapTokens(wordTokens(forms, nil, formStyle), width),
		wrapTokens(wordTokens(marks, nil, pinyinStyle), width),
	)
	if m.config.ShowWeights {
		lines = append(lines, wrapTokens(m.componentTokens(), width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLast() string {
	mark, style := "✗", wrongStyle
	if m.last.correct {
		mark, style = "✓", correctStyle
	}
	lex := m.gen.Lexicon()
	return style.Render(fmt.Sprintf("%s %s %s", mark, lex.Text(m.last.item), lexicon.PinyinItem(m.last.item)))
}

// componentTokens labels every component of the item, coloured by the
// weight it had when the item was drawn.
func (m *Model) componentTokens() []styledToken {
	var words []string
	var styles []lipgloss.Style
	add := func(k model.ComponentKey) {
		w := m.weights.Weight(k)
		words = append(words, fmt.Sprintf("%s:%s", lexicon.Label(k), statsPkg.FormatWeight(w)))
		styles = append(styles, lipgloss.NewStyle().Foreground(statsPkg.WeightColor(w)))
	}
	for _, u := range m.item {
		add(model.PrefixKey(u.Prefix))
		add(model.EndingKey(u.Ending))
		add(model.ToneKey(u.Tone))
	}
	if len(m.item) > 1 {
		add(model.CombinationKey(m.item))
	}
	return wordTokens(words, styles, pendingStyle)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Run %d/%d · %.1f%%", m.runCorrect, m.runAnswered, statsPkg.Accuracy(m.runCorrect, m.runAnswered)*100),
		fmt.Sprintf("All-time %d · %.1f%%", m.allAnswered, statsPkg.Accuracy(m.allCorrect, m.allAnswered)*100),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	if m.sessions == nil {
		return
	}
	sessions, err := m.sessions.ListSessions(context.Background(), 0)
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	for _, s := range sessions {
		m.allAnswered++
		if s.Correct {
			m.allCorrect++
		}
	}
}

// nextItem draws a new item weighted by a fresh ledger snapshot.
func (m *Model) nextItem() {
	m.revealed = false
	snap, err := m.ledger.Snapshot(context.Background())
	if err != nil {
		logErrf("failed to read statistics, using untrained weights: %v\n", err)
	}
	m.weights = snap
	item, err := m.gen.Generate(m.config.Filter, snap)
	if err != nil {
		m.item = nil
		m.genErr = err
		return
	}
	m.genErr = nil
	m.item = item
}

func (m *Model) answer(correct bool) tea.Cmd {
	if m.item == nil {
		return nil
	}
	ctx := context.Background()
	if err := m.ledger.RecordAnswer(ctx, m.item, correct); err != nil {
		logErrf("failed to record answer: %v\n", err)
	}
	if m.sessions != nil {
		sess := model.Session{RunID: m.runID, Units: m.item, Correct: correct, At: m.now()}
		if _, err := m.sessions.InsertSession(ctx, sess); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
	}
	m.runAnswered++
	m.allAnswered++
	if correct {
		m.runCorrect++
		m.allCorrect++
	}
	m.last = &lastAnswer{item: m.item, correct: correct}
	m.nextItem()
	return m.speakCmd()
}

func (m *Model) speakCmd() tea.Cmd {
	if m.item == nil {
		return nil
	}
	item := m.item
	speaker := m.speaker
	return func() tea.Msg {
		return spokenMsg{err: speaker.Speak(context.Background(), item)}
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
