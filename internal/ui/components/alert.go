package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"eurodist/internal/ui/theme"
)

// AlertDismissedMsg is emitted once the user acknowledges the alert.
type AlertDismissedMsg struct{}

// Alert is a blocking notification. While visible it consumes every key.
type Alert struct {
	title   string
	message string
	visible bool
	width   int
}

func NewAlert() Alert { return Alert{} }

func (a Alert) Visible() bool { return a.visible }

func (a Alert) Message() string { return a.message }

func (a *Alert) Show(title, message string) {
	a.title = title
	a.message = message
	a.visible = true
}

func (a *Alert) SetWidth(w int) { a.width = w }

func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "esc":
			a.visible = false
			return a, func() tea.Msg { return AlertDismissedMsg{} }
		}
	}
	return a, nil
}

func (a Alert) View() string {
	if !a.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.AlertTitle.Render(a.title) + "\n\n")
	sb.WriteString(a.message + "\n\n")
	sb.WriteString(theme.ButtonActive.Render("OK"))

	w := a.width
	if w < 20 {
		w = 48
	}
	return theme.Alert.Width(w - 2).Render(sb.String())
}
