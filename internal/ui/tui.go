package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fruitful-search/fruitful/internal/browser"
	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/search"
)

const (
	// historySize bounds the per-session query result cache. The cache
	// lives in the front end only; the engine itself stays stateless.
	historySize = 64

	searchTimeout = 5 * time.Second
)

// Messages for the bubbletea event loop.
type resultsMsg struct {
	query   string
	results []search.Result
	cached  bool
	err     error
}

type openedMsg struct {
	url string
	err error
}

// Model is the bubbletea model for interactive search.
type Model struct {
	engine *search.Engine
	limit  int
	styles Styles

	input    textinput.Model
	results  []search.Result
	selected int
	query    string
	status   string
	errText  string

	history *lru.Cache[string, []search.Result]

	width  int
	height int
}

// NewModel creates the interactive search model over an open engine.
func NewModel(engine *search.Engine, limit int, noColor bool) Model {
	input := textinput.New()
	input.Placeholder = "search products..."
	input.Prompt = "> "
	input.CharLimit = 256
	input.Focus()

	// Size is fixed and small; lru.New only errors on size <= 0.
	history, _ := lru.New[string, []search.Result](historySize)

	return Model{
		engine:  engine,
		limit:   limit,
		styles:  GetStyles(noColor),
		input:   input,
		history: history,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.errText = ""
			m.status = "searching..."
			return m, m.searchCmd(query)

		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil

		case "o":
			// Only intercept as a hotkey when the input is empty,
			// otherwise the user is typing a query containing 'o'.
			if m.input.Value() == "" && len(m.results) > 0 {
				return m, m.openCmd(m.results[m.selected].PID)
			}
		}

	case resultsMsg:
		if msg.err != nil {
			m.errText = ferrors.UserMessage(msg.err)
			m.status = ""
			return m, nil
		}
		m.query = msg.query
		m.results = msg.results
		m.selected = 0
		if msg.cached {
			m.status = fmt.Sprintf("%d results (cached)", len(msg.results))
		} else {
			m.status = fmt.Sprintf("%d results", len(msg.results))
		}
		m.input.SetValue("")
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.errText = ferrors.UserMessage(msg.err)
		} else {
			m.status = "opened " + msg.url
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// searchCmd runs one query off the event loop, serving repeats from the
// session history.
func (m Model) searchCmd(query string) tea.Cmd {
	if cached, ok := m.history.Get(query); ok {
		return func() tea.Msg {
			return resultsMsg{query: query, results: cached, cached: true}
		}
	}
	engine, limit, history := m.engine, m.limit, m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		results, err := engine.Search(ctx, query, limit)
		if err != nil {
			return resultsMsg{query: query, err: err}
		}
		history.Add(query, results)
		return resultsMsg{query: query, results: results}
	}
}

// openCmd resolves the pid's URL and launches the browser. With
// launching suppressed the URL is only reported.
func (m Model) openCmd(pid int64) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		url, ok, err := engine.LookupURL(ctx, pid)
		if err != nil {
			return openedMsg{err: err}
		}
		if !ok {
			return openedMsg{err: fmt.Errorf("no url for product %d", pid)}
		}
		if browser.Suppressed() {
			return openedMsg{url: url}
		}
		if err := browser.Open(url); err != nil {
			return openedMsg{err: err}
		}
		return openedMsg{url: url}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("fruitful"))
	if m.query != "" {
		b.WriteString(m.styles.Label.Render("  query: " + m.query))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(m.styles.Error.Render("error: " + m.errText))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Label.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.renderResults())
	b.WriteString(m.renderDetail())

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter search · ↑/↓ select · o open url · esc quit"))
	return b.String()
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range m.results {
		line := fmt.Sprintf("%2d. [%d] %s", i+1, r.PID, r.Name)
		score := m.styles.Score.Render(fmt.Sprintf("  %.2f", r.Score))
		if i == m.selected {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Result.Render(line))
		}
		b.WriteString(score)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if len(m.results) == 0 {
		return ""
	}
	r := m.results[m.selected]

	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return m.styles.Label.Render(label+": ") + m.styles.Value.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("name", r.Name))
	b.WriteString(row("manufacturer", r.Manufacturer))
	b.WriteString(row("model", r.Model))
	b.WriteString(row("mpn", r.MPN))
	if r.Price > 0 {
		b.WriteString(row("price", fmt.Sprintf("$%.2f", r.Price)))
	}
	b.WriteString(row("stock", r.Stock.String()))
	b.WriteString(row("added", r.DateAdded))
	b.WriteString(row("status", r.DiscontinueStatus))
	b.WriteString(row("url", r.URL))

	return "\n" + m.styles.Panel.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

// Run starts the interactive search TUI and blocks until the user quits.
func Run(engine *search.Engine, limit int, noColor bool) error {
	p := tea.NewProgram(NewModel(engine, limit, noColor), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
