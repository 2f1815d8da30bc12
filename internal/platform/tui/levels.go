package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronolink/internal/campaign"
	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/core"
	"github.com/vovakirdan/chronolink/internal/progress"
)

// Level select layout constants
const (
	minWidthForDetails = 80 // Minimum width to show the level detail panel
	detailsWidth       = 28 // Width of the detail panel
)

// levelSelect is the state of the level picker screen.
type levelSelect struct {
	table    table.Model
	levels   []catalog.Level
	progress progress.List
	width    int
	height   int
	notice   string
	noticeID int
}

func newLevelSelect(width, height int) levelSelect {
	ls := levelSelect{width: width, height: height}
	ls.table = ls.createTable()
	return ls
}

// createTable creates a new table with appropriate columns.
func (ls *levelSelect) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 24},
		{Title: "Stars", Width: 6},
		{Title: "Best", Width: 6},
		{Title: "", Width: 8},
	}

	height := ls.height - 8 // Leave room for header, help, and margins
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refresh reloads rows from the campaign.
func (ls *levelSelect) refresh(camp *campaign.Campaign) {
	ls.levels = camp.Catalog().Levels
	ls.progress = camp.Progress()

	rows := make([]table.Row, len(ls.levels))
	for i, lvl := range ls.levels {
		p := ls.progress[i]
		stars := strings.Repeat("*", p.Stars) + strings.Repeat(".", 3-p.Stars)
		best := "-"
		if p.BestTime != nil {
			best = fmt.Sprintf("%ds", *p.BestTime)
		}
		status := ""
		if !p.Unlocked && i > 0 {
			status = "locked"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			lvl.Name,
			stars,
			best,
			status,
		}
	}
	ls.table.SetRows(rows)
}

func (ls *levelSelect) resize(width, height int) {
	ls.width = width
	ls.height = height
	cursor := ls.table.Cursor()
	rows := ls.table.Rows()
	ls.table = ls.createTable()
	ls.table.SetRows(rows)
	ls.table.SetCursor(cursor)
}

// updateLevels handles input on the level select screen.
func (m App) updateLevels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		return m.quit()

	case core.ActionBack:
		return m.toMenu()

	case core.ActionGrab:
		index := m.levels.table.Cursor()
		if m.camp.Select(index) {
			return m.startLevel()
		}
		id := m.nextNotice()
		m.levels.notice = "That level is still locked."
		m.levels.noticeID = id
		return m, noticeCmd(id, 2*time.Second)

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Pass navigation to the table
	m.levels.table, cmd = m.levels.table.Update(msg)
	return m, cmd
}

// viewLevels renders the level select screen.
func (m App) viewLevels() string {
	var b strings.Builder
	ls := m.levels

	b.WriteString(m.theme.MenuTitle.Render(centerText("SELECT LEVEL", ls.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(ls.table.View())

	if ls.width >= minWidthForDetails {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderLevelDetails()))
	} else {
		b.WriteString(tableRendered)
	}
	b.WriteString("\n")

	if ls.notice != "" {
		b.WriteString(m.theme.HUDInvalid.Render(ls.notice))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render("up/down: choose  enter: play  esc: back  q: quit"))

	return b.String()
}

// renderLevelDetails renders the panel describing the highlighted level.
func (m App) renderLevelDetails() string {
	ls := m.levels
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailsWidth).
		Padding(0, 1)

	i := ls.table.Cursor()
	if i < 0 || i >= len(ls.levels) {
		return panel.Render("No levels")
	}
	lvl := ls.levels[i]
	p := ls.progress[i]

	var b strings.Builder
	b.WriteString(m.theme.HUDTitle.Render(lvl.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Pieces:  %d\n", len(lvl.Pieces))
	fmt.Fprintf(&b, "3 stars: <= %ds\n", lvl.Thresholds.ThreeStar)
	fmt.Fprintf(&b, "2 stars: <= %ds\n", lvl.Thresholds.TwoStar)
	b.WriteString("\n")
	b.WriteString(m.theme.stars(p.Stars))
	if p.BestTime != nil {
		fmt.Fprintf(&b, "  best %ds", *p.BestTime)
	}

	return panel.Render(b.String())
}
