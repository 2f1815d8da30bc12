package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronolink/internal/core"
)

// updateVictory handles input on the final victory screen.
func (m App) updateVictory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionRemix:
		m.camp.Remix(m.rng)
		return m.startLevel()
	case core.ActionGrab, core.ActionBack:
		return m.toMenu()
	}
	return m, nil
}

// viewVictory renders the final victory screen.
func (m App) viewVictory() string {
	list := m.camp.Progress()

	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render("TIMELINE RESTORED"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.OverlayText.Render("Every sequence is back in order."))
	b.WriteString("\n\n")
	b.WriteString(m.theme.HUDValue.Render(fmt.Sprintf("Levels completed: %d/%d", list.Completed(), len(list))))
	b.WriteString("\n")
	b.WriteString(m.theme.HUDValue.Render(fmt.Sprintf("Stars collected:  %d/%d", list.TotalStars(), 3*len(list))))
	b.WriteString("\n\n")
	b.WriteString(m.theme.MenuDescription.Render("x: remix  enter/esc: menu  q: quit"))

	box := m.theme.OverlayBorder.Render(b.String())
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}
