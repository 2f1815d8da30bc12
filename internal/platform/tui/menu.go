package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chronolink/internal/campaign"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	ChoiceStart MenuChoice = iota
	ChoiceContinue
	ChoiceLevels
	ChoiceRemix
	ChoiceQuit
)

// MenuItem represents a selectable main menu entry.
type MenuItem struct {
	Choice      MenuChoice
	Title       string
	Description string
}

type menuState struct {
	items  []MenuItem
	cursor int
}

// newMenu builds the main menu. Continue is offered only when there is
// progress to resume, and becomes the default entry.
func newMenu(camp *campaign.Campaign) menuState {
	items := []MenuItem{
		{ChoiceStart, "New Journey", "Start from the first level"},
	}
	cursor := 0
	if camp.CanContinue() {
		items = append(items, MenuItem{ChoiceContinue, "Continue", "Resume where you left off"})
		cursor = 1
	}
	items = append(items,
		MenuItem{ChoiceLevels, "Select Level", "Replay any unlocked level"},
		MenuItem{ChoiceRemix, "Remix", "Play every level in a random order"},
		MenuItem{ChoiceQuit, "Quit", ""},
	)
	return menuState{items: items, cursor: cursor}
}

// updateMenu processes keyboard input for menu navigation.
func (m App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.quit()

	case MenuActionUp:
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}

	case MenuActionDown:
		if m.menu.cursor < len(m.menu.items)-1 {
			m.menu.cursor++
		}

	case MenuActionSelect:
		return m.selectMenuItem(m.menu.items[m.menu.cursor].Choice)
	}

	return m, nil
}

func (m App) selectMenuItem(choice MenuChoice) (tea.Model, tea.Cmd) {
	switch choice {
	case ChoiceStart:
		m.camp.Start()
		return m.startLevel()
	case ChoiceContinue:
		m.camp.Continue()
		return m.startLevel()
	case ChoiceLevels:
		m.levels.refresh(m.camp)
		m.screen = screenLevels
		return m, nil
	case ChoiceRemix:
		m.camp.Remix(m.rng)
		return m.startLevel()
	case ChoiceQuit:
		return m.quit()
	}
	return m, nil
}

// viewMenu renders the main menu.
func (m App) viewMenu() string {
	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("C H R O N O L I N K"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Put every step of the timeline in order"), width))
	b.WriteString("\n\n")

	for i, item := range m.menu.items {
		line := "  " + item.Title
		style := m.theme.MenuItemNormal
		if i == m.menu.cursor {
			line = "> " + item.Title
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(line), width))
		b.WriteString("\n")
	}

	if d := m.menu.items[m.menu.cursor].Description; d != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(d), width))
		b.WriteString("\n")
	}

	list := m.camp.Progress()
	b.WriteString("\n")
	stats := fmt.Sprintf("%d/%d levels  |  %d stars", list.Completed(), len(list), list.TotalStars())
	b.WriteString(centerText(m.theme.HUDSeparator.Render(stats), width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, width))
	b.WriteString("\n")

	return b.String()
}
