package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/qs/internal/state"
	"github.com/Paintersrp/qs/internal/switcher"
)

// Action tells the command layer what to do after the program exits.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionCreate
)

type debounceMsg struct {
	seq int
}

type resultsMsg struct {
	seq     int
	results []*switcher.Candidate
	err     error
}

// Model is the interactive quick switcher. It owns the query input, the
// ranked result list, and the preview pane. The selected outcome is read off
// the final model after the program exits.
type Model struct {
	st       *state.State
	pipeline *switcher.Pipeline
	keep     func(string) bool
	keys     *pickerKeyMap
	logger   zerolog.Logger

	input     textinput.Model
	results   []*switcher.Candidate
	cursor    int
	searchSeq int
	debounce  time.Duration

	// restoreID holds the persisted last selection until the first result
	// set arrives; typing discards it.
	restoreID string

	width       int
	height      int
	showPreview bool
	previews    *previewCache
	status      string

	// Set before quitting; inspected by the caller.
	Action   Action
	Selected *switcher.Candidate
	Query    string
}

func NewModel(st *state.State, logger zerolog.Logger) (*Model, error) {
	specs, err := st.Profile.SortSpecs()
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "search notes"
	input.Focus()

	lastQuery, lastSelection := st.Recency.Session()
	if lastQuery != "" {
		input.SetValue(lastQuery)
		input.CursorEnd()
	}

	debounce := time.Duration(st.Profile.DebounceMillis) * time.Millisecond
	if debounce <= 0 {
		debounce = 60 * time.Millisecond
	}

	return &Model{
		st:          st,
		pipeline:    switcher.NewPipeline(st.Profile.EngineProfile(), specs),
		keep:        st.Profile.PathFilter(),
		keys:        newPickerKeyMap(),
		logger:      logger,
		input:       input,
		debounce:    debounce,
		restoreID:   lastSelection,
		showPreview: true,
		previews:    newPreviewCache(st.Vault.Root()),
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search(m.searchSeq), m.st.Watcher.Wait())
}

func (m *Model) search(seq int) tea.Cmd {
	query := m.input.Value()
	return func() tea.Msg {
		items, err := m.st.Corpus.AcquireSnapshot()
		if err != nil {
			return resultsMsg{seq: seq, err: err}
		}
		results := m.pipeline.Search(items, query, m.st.RankContext(), m.keep)
		return resultsMsg{seq: seq, results: results}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Rendered previews are wrapped to the old width.
		m.previews = newPreviewCache(m.st.Vault.Root())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.search(msg.seq)

	case resultsMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("search failed")
			m.status = fmt.Sprintf("search failed: %v", msg.err)
			return m, nil
		}
		m.results = msg.results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		if m.restoreID != "" {
			for i, c := range m.results {
				if c.Item.ID == m.restoreID {
					m.cursor = i
					break
				}
			}
			m.restoreID = ""
		}
		return m, nil

	case state.NoteChangedMsg:
		m.previews.invalidate(msg.Path)
		m.searchSeq++
		return m, tea.Batch(m.search(m.searchSeq), m.st.Watcher.Wait())

	case state.WatcherErrMsg:
		m.logger.Warn().Err(msg.Err).Msg("vault watcher error")
		return m, m.st.Watcher.Wait()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.saveSession()
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.togglePreview):
		m.showPreview = !m.showPreview
		return m, nil

	case key.Matches(msg, m.keys.yank):
		if selected := m.selected(); selected != nil {
			link := wikiLink(selected.Item)
			if err := clipboard.WriteAll(link); err != nil {
				m.status = fmt.Sprintf("yank failed: %v", err)
			} else {
				m.status = "copied " + link
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.create):
		if strings.TrimSpace(m.input.Value()) == "" {
			m.status = "type a title first"
			return m, nil
		}
		m.Action = ActionCreate
		m.Query = m.input.Value()
		m.saveSession()
		return m, tea.Quit

	case key.Matches(msg, m.keys.open):
		selected := m.selected()
		if selected == nil {
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			m.Action = ActionCreate
			m.Query = m.input.Value()
			m.saveSession()
			return m, tea.Quit
		}
		if selected.Item.Phantom {
			m.Action = ActionCreate
			m.Query = selected.Item.DisplayName
		} else {
			m.Action = ActionOpen
		}
		m.Selected = selected
		m.saveSession()
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.status = ""
		m.cursor = 0
		m.restoreID = ""
		m.searchSeq++
		seq := m.searchSeq
		debounced := tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounced)
	}

	return m, cmd
}

func (m *Model) selected() *switcher.Candidate {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return m.results[m.cursor]
}

func (m *Model) saveSession() {
	selection := ""
	if s := m.selected(); s != nil {
		selection = s.Item.ID
	}
	if err := m.st.Recency.SetSession(m.input.Value(), selection); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist session")
	}
}

func wikiLink(item *switcher.Item) string {
	target := strings.TrimSuffix(item.ID, ".md")
	if item.Phantom {
		target = item.DisplayName
	}
	return "[[" + target + "]]"
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Quick Switcher"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")

	listWidth := m.width
	if m.showPreview && m.width > 60 {
		listWidth = m.width / 2
	}

	list := m.renderList(listWidth)
	if m.showPreview && m.width > 60 {
		preview := previewStyle.Render(
			m.previews.render(m.selected(), m.width-listWidth-4),
		)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, preview))
	} else {
		b.WriteString(list)
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		"↵ open · ctrl+n new · ctrl+y yank · tab preview · esc quit",
	))

	return appStyle.Render(b.String())
}

func (m *Model) renderList(width int) string {
	if len(m.results) == 0 {
		if strings.TrimSpace(m.input.Value()) == "" {
			return itemStyle.Render("vault is empty")
		}
		return itemStyle.Render("no matches, ↵ creates " + strings.TrimSpace(m.input.Value()))
	}

	visible := m.visibleRows()
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.results) {
		end = len(m.results)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		c := m.results[i]

		base := itemStyle
		if c.Item.Phantom {
			base = phantomStyle
		}
		line := highlightText(c.SortText(), displaySpans(c), base, matchStyle)
		if c.MatchedAlias != "" {
			line += pathStyle.Render(" → " + c.Item.DisplayName)
		}
		if !c.Item.Phantom && c.Item.ID != "" {
			line += pathStyle.Render("  " + c.Item.ID)
		}

		prefix := "  "
		if i == m.cursor {
			prefix = selectedItemStyle.Render("▸ ")
		}
		b.WriteString(prefix)
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m *Model) visibleRows() int {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}
