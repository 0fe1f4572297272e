// Package tui implements the interactive card browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arcanaland/holocron/internal/card"
	"github.com/arcanaland/holocron/internal/search"
)

var placeholders = map[search.Mode]string{
	search.ModeRelevance:  "search by name, trait, aspect or text",
	search.ModeStructured: "e.g. type = unit and cost <= 3",
}

// searchResultMsg carries the results of the search issued as seq.
type searchResultMsg struct {
	seq   int
	cards []*card.Card
	count int
}

// Model is the bubbletea model of the card browser.
type Model struct {
	catalog  []*card.Card
	engine   *search.Engine
	logger   *zap.Logger
	observer search.ResultCountObserver

	input   textinput.Model
	results []*card.Card
	count   int
	cursor  int
	offset  int

	// seq is the sequence number of the most recently issued search
	seq int

	width    int
	height   int
	styles   Styles
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithObserver reports the result count of every search whose results are
// shown. Results superseded by a newer search are never reported. The engine
// itself should be built without an observer.
func WithObserver(o search.ResultCountObserver) Option {
	return func(m *Model) { m.observer = o }
}

// New creates a browser over catalog using engine.
func New(catalog []*card.Card, engine *search.Engine, logger *zap.Logger, opts ...Option) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholders[engine.Mode()]
	ti.CharLimit = 200
	ti.Focus()

	styles := DefaultStyles()
	if os.Getenv("NO_COLOR") != "" {
		styles = NoColorStyles()
	}

	m := &Model{
		catalog: catalog,
		engine:  engine,
		logger:  logger,
		input:   ti,
		styles:  styles,
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the browser on the terminal and blocks until it exits.
func Run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search())
}

// search issues a search for the current input. Its result is tagged with
// a new sequence number so later searches supersede it.
func (m *Model) search() tea.Cmd {
	m.seq++
	seq := m.seq
	query := m.input.Value()
	strategy := m.engine.Active()
	catalog := m.catalog

	return func() tea.Msg {
		cards, count := strategy.Search(catalog, query)
		return searchResultMsg{seq: seq, cards: cards, count: count}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			mode := m.engine.Toggle()
			m.logger.Debug("search mode toggled", zap.Stringer("mode", mode))
			m.input.Placeholder = placeholders[mode]
			m.input.SetValue("")
			return m, m.search()

		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil

		case "pgup":
			m.moveCursor(-m.listHeight())
			return m, nil

		case "pgdown":
			m.moveCursor(m.listHeight())
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.search())
		}
		return m, cmd

	case searchResultMsg:
		if msg.seq != m.seq {
			m.logger.Debug("discarding stale results", zap.Int("seq", msg.seq), zap.Int("latest", m.seq))
			return m, nil
		}
		m.results = msg.cards
		m.count = msg.count
		if m.observer != nil {
			m.observer.ResultCount(msg.count)
		}
		m.cursor = 0
		m.offset = 0
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.moveCursor(0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Selected returns the highlighted card, or nil when there are no results.
func (m *Model) Selected() *card.Card {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return m.results[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	// Keep the cursor inside the visible window
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// listHeight is the number of result rows that fit above the detail pane
func (m *Model) listHeight() int {
	h := m.height - 16
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Holocron"))
	b.WriteString("  ")
	b.WriteString(m.styles.Mode.Render("[" + m.engine.Mode().String() + "]"))
	b.WriteString(m.styles.Dim.Render("  tab: switch mode · esc: quit"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Count.Render(fmt.Sprintf("%d results found", m.count)))
	b.WriteString("\n\n")

	end := m.offset + m.listHeight()
	if end > len(m.results) {
		end = len(m.results)
	}
	for i := m.offset; i < end; i++ {
		c := m.results[i]
		line := fmt.Sprintf("%-8s %s", c.ID, c.DisplayTitle())
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if c := m.Selected(); c != nil {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(c))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDetail renders the detail pane of a card
func (m *Model) renderDetail(c *card.Card) string {
	var lines []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, m.styles.Label.Render(label+": ")+value)
	}

	lines = append(lines, m.styles.Header.Render(c.DisplayTitle()))
	add("Type", c.Type)

	stats := []string{"Cost " + strconv.Itoa(c.Cost)}
	if c.Power != nil {
		stats = append(stats, "Power "+strconv.Itoa(*c.Power))
	}
	if c.HP != nil {
		stats = append(stats, "HP "+strconv.Itoa(*c.HP))
	}
	add("Stats", strings.Join(stats, " · "))

	add("Aspects", strings.Join(c.Aspects, ", "))
	add("Traits", strings.Join(c.Traits, ", "))
	add("Arenas", strings.Join(c.Arenas, ", "))
	add("Set", strings.TrimSpace(c.Set+" "+c.Number))
	add("Rarity", c.Rarity)
	add("Text", c.Text)
	add("Epic Action", c.EpicAction)

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return m.styles.Detail.Width(width).Render(strings.Join(lines, "\n"))
}
