package tui

import (
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronolink/internal/campaign"
	"github.com/vovakirdan/chronolink/internal/core"
)

// screen identifies which view the App is showing.
type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenPlaying
	screenVictory
)

// App is the top-level Bubble Tea model: menu -> level select -> play -> victory.
// The same model serves local terminals and SSH sessions.
type App struct {
	camp   *campaign.Campaign
	rng    *rand.Rand
	config core.RuntimeConfig
	logger *log.Logger
	keys   *KeyMapper
	theme  Theme
	help   help.Model

	screen    screen
	menu      menuState
	levels    levelSelect
	play      *playState
	attempts  int
	noticeSeq int
	quitting  bool
}

// NewApp creates the root model for a campaign.
func NewApp(camp *campaign.Campaign, cfg core.RuntimeConfig, logger *log.Logger) App {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return App{
		camp:   camp,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		config: cfg,
		logger: logger,
		keys:   NewKeyMapper(),
		theme:  DefaultTheme(),
		help:   h,
		screen: screenMenu,
		menu:   newMenu(camp),
		levels: newLevelSelect(cfg.ScreenW, cfg.ScreenH),
	}
}

// WithTheme returns a copy of the app using theme.
func (m App) WithTheme(theme Theme) App {
	m.theme = theme
	return m
}

// Init initializes the model.
func (m App) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.levels.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case noticeExpiredMsg:
		if m.play != nil && m.play.noticeID == msg.id {
			m.play.notice = ""
		}
		if m.levels.noticeID == msg.id {
			m.levels.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenLevels:
			return m.updateLevels(msg)
		case screenPlaying:
			return m.updatePlay(msg)
		case screenVictory:
			return m.updateVictory(msg)
		}
	}

	return m, nil
}

// handleTick advances the clock of the current attempt. Ticks for any other
// attempt, or arriving after the clock stopped, end the tick chain.
func (m App) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if m.play == nil || msg.attempt != m.play.attempt {
		return m, nil
	}
	if !m.play.ctrl.Tick() {
		return m, nil
	}
	return m, tickCmd(msg.attempt)
}

// View renders the current screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.viewLevels()
	case screenPlaying:
		return m.viewPlay()
	case screenVictory:
		return m.viewVictory()
	default:
		return m.viewMenu()
	}
}

// toMenu abandons any running attempt and shows the main menu.
func (m App) toMenu() (tea.Model, tea.Cmd) {
	if m.play != nil {
		m.play.ctrl.Leave()
		m.play = nil
	}
	m.menu = newMenu(m.camp)
	m.screen = screenMenu
	return m, nil
}

// quit abandons any running attempt and exits.
func (m App) quit() (tea.Model, tea.Cmd) {
	if m.play != nil {
		m.play.ctrl.Leave()
	}
	m.quitting = true
	return m, tea.Quit
}

// nextNotice allocates an id for a transient notice.
func (m *App) nextNotice() int {
	m.noticeSeq++
	return m.noticeSeq
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// Run starts the Bubble Tea program with the given model.
func Run(app App) error {
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if final, ok := finalModel.(App); ok && final.play != nil {
		final.play.ctrl.Leave()
	}
	return err
}
