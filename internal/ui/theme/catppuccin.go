package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	Button = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 2)

	ButtonActive = Button.
			BorderForeground(Peach).
			Foreground(Peach).
			Bold(true)

	Alert = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Red).
		Background(Mantle).
		Foreground(Text).
		Padding(1, 3)

	AlertTitle = lipgloss.NewStyle().Foreground(Red).Bold(true)

	TableHeader = lipgloss.NewStyle().
			Foreground(Sapphire).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface1).
			BorderBottom(true).
			Padding(0, 1)

	TableCell     = lipgloss.NewStyle().Padding(0, 1)
	TableSelected = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Bold(true)
)
