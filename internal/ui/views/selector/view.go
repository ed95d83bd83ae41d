package selector

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eurodist/internal/ui/theme"
)

// ─── list item ───────────────────────────────────────────────────────────────

type cityItem string

func (i cityItem) Title() string       { return string(i) }
func (i cityItem) Description() string { return "" }
func (i cityItem) FilterValue() string { return string(i) }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the city selector. It owns no port: the app model loads the
// options and hands them over with SetOptions.
type Model struct {
	list    list.Model
	focused bool
	loaded  bool
	width   int
	height  int
}

func New(title string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{list: l}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-2, m.height-2)
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	style := theme.Pane
	if m.focused {
		style = theme.PaneActive
	}
	body := m.list.View()
	if !m.loaded {
		body = theme.Title.Render(m.list.Title) + "\n\n" + theme.Muted.Render("no cities loaded")
	}
	return style.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).Render(
		lipgloss.NewStyle().MaxWidth(max(m.width-2, 0)).Render(body))
}

// SetOptions replaces the options, keeping the current choice when it is
// still present.
func (m *Model) SetOptions(title string, names []string) tea.Cmd {
	current := m.Value()
	m.list.Title = title
	items := make([]list.Item, len(names))
	selected := 0
	for i, n := range names {
		items[i] = cityItem(n)
		if n == current {
			selected = i
		}
	}
	m.loaded = true
	m.list.ResetFilter()
	cmd := m.list.SetItems(items)
	m.list.Select(selected)
	return cmd
}

// Value returns the current choice, or "" when the selector is empty.
func (m Model) Value() string {
	if item, ok := m.list.SelectedItem().(cityItem); ok {
		return string(item)
	}
	return ""
}

func (m Model) Options() []string {
	items := m.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if c, ok := it.(cityItem); ok {
			out = append(out, string(c))
		}
	}
	return out
}

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
