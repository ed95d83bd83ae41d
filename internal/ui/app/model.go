package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	datasetdto "eurodist/internal/modules/dataset/dto"
	"eurodist/internal/modules/distance/dto"
	apperrors "eurodist/internal/platform/errors"
	"eurodist/internal/ui/components"
	"eurodist/internal/ui/theme"
	reportview "eurodist/internal/ui/views/report"
	selectorview "eurodist/internal/ui/views/selector"
)

const (
	buttonLabel      = "Show distances"
	alertTitle       = "Database Error"
	unavailableAlert = "Failed to open the database"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type distancePort interface {
	DefaultReport(ctx context.Context) (dto.ReportOutput, error)
	FilteredReport(ctx context.Context, city string) (dto.ReportOutput, error)
	Cities(ctx context.Context) (dto.CitiesOutput, error)
}

type exportPort interface {
	Export(ctx context.Context, city *string, path string) (datasetdto.ExportOutput, error)
}

// ─── focus ───────────────────────────────────────────────────────────────────

type focusID int

const (
	focusSelector focusID = iota
	focusButton
	focusTable
	focusCount
)

// ─── async messages ──────────────────────────────────────────────────────────

type reportLoadedMsg struct {
	out dto.ReportOutput
	err error
}

type citiesLoadedMsg struct {
	out dto.CitiesOutput
	err error
}

type exportedMsg struct {
	out datasetdto.ExportOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Enter   key.Binding
	Reload  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick city / show distances")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Enter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Enter},
		{k.Reload, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: a city selector with a button on the
// left and the distance report on the right. Loads go through the ports; a
// failed connection raises a blocking alert and leaves the panes unchanged.
type Model struct {
	distance distancePort
	export   exportPort

	selector selectorview.Model
	report   reportview.Model

	current   dto.ReportOutput
	hasReport bool

	focus    focusID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	alert    components.Alert
	status   string
	width    int
	height   int
}

func NewModel(distance distancePort, export exportPort) Model {
	m := Model{
		distance: distance,
		export:   export,
		selector: selectorview.New("City Name"),
		report:   reportview.New(),
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
		alert:    components.NewAlert(),
		status:   "ready",
	}
	m.applyFocus()
	return m
}

// Init loads the default report, then the selector options.
func (m Model) Init() tea.Cmd {
	return tea.Sequence(m.defaultReportCmd(), m.loadCitiesCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.alert.SetWidth(min(m.width-4, 56))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil
	}

	// The alert blocks all input until acknowledged.
	if m.alert.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.alert, cmd = m.alert.Update(msg)
			return m, cmd
		}
	}

	// The palette takes every key while open. Other messages also reach it,
	// for the cursor blink, and then fall through so loads still land.
	if m.palette.Visible() {
		var paletteCmd tea.Cmd
		m.palette, paletteCmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, paletteCmd
		}
		next, cmd := m.handle(msg)
		return next, tea.Batch(paletteCmd, cmd)
	}
	return m.handle(msg)
}

func (m Model) handle(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.err != nil {
			m.fail("report", msg.err)
			return m, nil
		}
		m.current = msg.out
		m.hasReport = true
		m.report.SetReport(msg.out)
		m.status = reportview.Caption(msg.out)
		return m, nil

	case citiesLoadedMsg:
		if msg.err != nil {
			m.fail("cities", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("%d cities loaded", len(msg.out.Names))
		return m, m.selector.SetOptions(msg.out.Column, msg.out.Names)

	case exportedMsg:
		if msg.err != nil {
			m.fail("export", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("exported %d rows to %s", msg.out.Rows, msg.out.Path)
		return m, nil

	case components.AlertDismissedMsg:
		m.status = "database unavailable; press r to retry"
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the selector while its search filter is open.
		if m.focus == focusSelector && m.selector.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.focus = (m.focus + 1) % focusCount
			m.applyFocus()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.focus = (m.focus + focusCount - 1) % focusCount
			m.applyFocus()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Reload):
			m.status = "reloading…"
			return m, tea.Sequence(m.defaultReportCmd(), m.loadCitiesCmd())
		case key.Matches(msg, m.keys.Enter):
			switch m.focus {
			case focusSelector:
				if city := m.selector.Value(); city != "" {
					m.status = "selected " + city
				}
				m.focus = focusButton
				m.applyFocus()
				return m, nil
			case focusButton:
				return m, m.filteredReportCmd(m.selector.Value())
			}
		}
	}

	// Forward everything else to the focused pane.
	var cmd tea.Cmd
	switch m.focus {
	case focusSelector:
		m.selector, cmd = m.selector.Update(msg)
	case focusTable:
		m.report, cmd = m.report.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.alert.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.alert.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		left := lipgloss.JoinVertical(lipgloss.Left, m.selector.View(), m.renderButton())
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, m.report.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	bar := theme.Hot.Render("eurodist") + "  " + theme.Muted.Render("European city distances")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderButton() string {
	style := theme.Button
	if m.focus == focusButton {
		style = theme.ButtonActive
	}
	return style.Render(buttonLabel)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:focus  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "report:default":
		return m, m.defaultReportCmd()

	case "report:filter":
		return m, m.filteredReportCmd(arg)

	case "cities:reload":
		return m, m.loadCitiesCmd()

	case "export":
		if !m.hasReport {
			m.status = "no report to export"
			return m, nil
		}
		var city *string
		if m.current.State == "filtered" {
			filter := m.current.Filter
			city = &filter
		}
		return m, m.exportCmd(city, arg)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// fail surfaces an unavailable database as the blocking alert and anything
// else on the status bar. Neither path touches the panes.
func (m *Model) fail(op string, err error) {
	if errors.Is(err, apperrors.ErrDatabaseUnavailable) {
		m.alert.Show(alertTitle, unavailableAlert)
		m.status = op + ": " + unavailableAlert
		return
	}
	m.status = op + ": " + err.Error()
}

func (m *Model) applyFocus() {
	m.selector.Blur()
	m.report.Blur()
	switch m.focus {
	case focusSelector:
		m.selector.Focus()
	case focusTable:
		m.report.Focus()
	}
}

func (m *Model) propagateSize() {
	// header and status bar take one line each
	contentH := max(m.height-2, 4)
	leftW := m.width * 3 / 10
	buttonH := lipgloss.Height(m.renderButton())
	m.selector, _ = m.selector.Update(tea.WindowSizeMsg{Width: leftW, Height: contentH - buttonH})
	m.report, _ = m.report.Update(tea.WindowSizeMsg{Width: m.width - leftW, Height: contentH})
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) defaultReportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.distance.DefaultReport(context.Background())
		return reportLoadedMsg{out: out, err: err}
	}
}

func (m Model) filteredReportCmd(city string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.distance.FilteredReport(context.Background(), city)
		return reportLoadedMsg{out: out, err: err}
	}
}

func (m Model) loadCitiesCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.distance.Cities(context.Background())
		return citiesLoadedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(city *string, path string) tea.Cmd {
	return func() tea.Msg {
		if m.export == nil {
			return exportedMsg{err: fmt.Errorf("export is not configured")}
		}
		out, err := m.export.Export(context.Background(), city, path)
		return exportedMsg{out: out, err: err}
	}
}
