// Package tui provides the interactive search result picker.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user closed the picker without choosing.
	ActionSkipped
	// ActionStopped indicates the user quit marquee from the picker.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *tmdb.SearchResult
}

// TrackedFunc reports the category of a result that is already tracked.
type TrackedFunc func(tmdbID int, mediaType string) (category string, ok bool)

type resultItem struct {
	tmdb.SearchResult
	tracked string
}

func (i resultItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.DisplayTitle()), i.Year())
}

func (i resultItem) FilterValue() string { return i.DisplayTitle() }
func (i resultItem) Description() string { return i.Overview }

type cardStyles struct {
	card, current          lipgloss.Style
	kind, title, badge     lipgloss.Style
	rating, meta, overview lipgloss.Style
}

func newCardStyles() cardStyles {
	border := lipgloss.Border{
		Top: "-", Bottom: "-", Left: "|", Right: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	}
	card := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	return cardStyles{
		card: card,
		current: card.Copy().
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237")),
		kind:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110")),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254")),
		badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		rating:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Faint(true),
		overview: lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
	}
}

type resultDelegate struct {
	styles cardStyles
}

func newDelegate() resultDelegate {
	return resultDelegate{styles: newCardStyles()}
}

func (d resultDelegate) Height() int                         { return 5 }
func (d resultDelegate) Spacing() int                        { return 1 }
func (d resultDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	result, ok := item.(resultItem)
	if !ok {
		return
	}
	width := m.Width() - 4

	header := d.styles.kind.Render(fmt.Sprintf("[%s]", strings.ToUpper(result.MediaType)))
	if result.tracked != "" {
		header += " " + d.styles.badge.Render("tracked: "+result.tracked)
	}

	rating := "not rated yet"
	if result.VoteCount > 0 {
		rating = fmt.Sprintf("%.1f/10", result.VoteAverage)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		d.styles.meta.Render(formatMetadata(result.SearchResult, width)),
		d.styles.title.Render(result.Title()),
		d.styles.rating.Render(rating),
		d.styles.overview.Render(truncate(result.Overview, width)),
	)

	style := d.styles.card
	if idx == m.Index() {
		style = d.styles.current
	}
	_, _ = fmt.Fprint(w, style.Render(content))
}

type model struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newModel(query string, items []resultItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{list: l, query: query}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				picked := item.SearchResult
				m.result = SelectionResult{Action: ActionSelected, Selection: &picked}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "q", "ctrl+c":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(
			clamp(defaultListWidth, msg.Width-4, 40),
			clamp(defaultListHeight, msg.Height-6, 5),
		)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Left,
		cancelButtonStyle.Render(" Cancel "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		quitButtonStyle.Render(" Quit "),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Results for: %s", m.query)),
		m.list.View(),
		buttons,
		helpStyle.Render("Up/Down navigate | Enter select | Esc cancel | q quit"),
	)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginBottom(1)
	helpStyle   = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("244"))

	buttonStyle       = lipgloss.NewStyle().MarginTop(1).Padding(0, 2).Bold(true)
	cancelButtonStyle = buttonStyle.Copy().Background(lipgloss.Color("178")).Foreground(lipgloss.Color("0"))
	quitButtonStyle   = buttonStyle.Copy().Background(lipgloss.Color("161")).Foreground(lipgloss.Color("230"))
)

// Select lets the user pick one of the search results. Nothing is shown
// when there are no results. tracked may be nil.
func Select(query string, results []tmdb.SearchResult, tracked TrackedFunc) (SelectionResult, error) {
	if len(results) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]resultItem, len(results))
	for i, result := range results {
		items[i] = resultItem{SearchResult: result}
		if tracked != nil {
			if category, ok := tracked(result.ID, result.MediaType); ok {
				items[i].tracked = category
			}
		}
	}

	final, err := runProgram(newModel(query, items))
	if err != nil {
		return SelectionResult{}, err
	}
	if m, ok := final.(*model); ok {
		return m.result, nil
	}
	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata builds the line with release date, language, vote count and popularity.
func formatMetadata(result tmdb.SearchResult, availableWidth int) string {
	var parts []string
	if date := result.Date(); date != "" {
		parts = append(parts, date)
	}
	if result.OriginalLang != "" {
		parts = append(parts, strings.ToUpper(result.OriginalLang))
	}
	if result.VoteCount > 0 {
		parts = append(parts, formatVoteCount(result.VoteCount))
	}
	if result.Popularity > 0 {
		parts = append(parts, fmt.Sprintf("📊%.1f", result.Popularity))
	}
	if len(parts) == 0 {
		return "No metadata available"
	}
	return truncate(strings.Join(parts, " | "), availableWidth)
}

// formatVoteCount formats vote count in a compact way
func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
