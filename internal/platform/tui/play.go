package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronolink/internal/campaign"
	"github.com/vovakirdan/chronolink/internal/core"
	"github.com/vovakirdan/chronolink/internal/session"
)

// Notice durations
const (
	invalidNoticeDuration = time.Second
	readyNoticeDuration   = 2 * time.Second
)

// rotationArrows shows which way a piece faces, indexed by quarter turns.
var rotationArrows = [4]string{"↑", "→", "↓", "←"}

// playState is the state of one attempt at a level.
type playState struct {
	ctrl    *session.Controller
	attempt int

	cursor   int
	grabbed  bool
	showInfo bool

	notice      string
	noticeStyle lipgloss.Style
	noticeID    int

	// readyEdge is set by the session when the arrangement becomes solved.
	readyEdge bool
	outcome   *campaign.Outcome
}

// startLevel leaves any running attempt and starts the campaign's current level.
func (m App) startLevel() (tea.Model, tea.Cmd) {
	if m.play != nil {
		m.play.ctrl.Leave()
	}

	m.attempts++
	p := &playState{attempt: m.attempts}
	p.ctrl = m.camp.Play(m.rng, session.Hooks{
		OnReady: func() { p.readyEdge = true },
	})

	m.play = p
	m.screen = screenPlaying
	m.logger.Debug("level started", "level_id", p.ctrl.Level().ID, "attempt", p.attempt)

	return m, tickCmd(p.attempt)
}

// updatePlay handles input while a level is on screen.
func (m App) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.play
	action := m.keys.MapKey(msg)

	if p.outcome != nil {
		return m.updateLevelComplete(action)
	}

	switch action {
	case core.ActionQuit:
		return m.quit()

	case core.ActionBack:
		if p.grabbed {
			p.grabbed = false
			return m, nil
		}
		return m.toMenu()

	case core.ActionUp:
		if p.cursor > 0 {
			if p.grabbed {
				p.ctrl.Move(p.cursor, p.cursor-1)
			}
			p.cursor--
		}

	case core.ActionDown:
		if p.cursor < len(p.ctrl.Pieces())-1 {
			if p.grabbed {
				p.ctrl.Move(p.cursor, p.cursor+1)
			}
			p.cursor++
		}

	case core.ActionRotate:
		pieces := p.ctrl.Pieces()
		p.ctrl.Rotate(pieces[p.cursor].InstanceID)

	case core.ActionGrab:
		p.grabbed = !p.grabbed

	case core.ActionInfo:
		p.showInfo = !p.showInfo

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionCheck:
		return m.check()
	}

	if p.readyEdge {
		p.readyEdge = false
		return m.notify(p, "Timeline aligned! Press c to lock it in.", m.theme.HUDReady, readyNoticeDuration)
	}
	return m, nil
}

// check validates the arrangement and shows either feedback or the result.
func (m App) check() (tea.Model, tea.Cmd) {
	p := m.play
	res := p.ctrl.Check()

	if !res.Solved {
		if !res.Accepted {
			return m, nil
		}
		return m.notify(p, "Not quite. Try again!", m.theme.HUDInvalid, invalidNoticeDuration)
	}

	out, ok := m.camp.LastOutcome()
	if !ok {
		out = campaign.Outcome{
			LevelID: p.ctrl.Level().ID,
			Stars:   res.Stars,
			Elapsed: res.Elapsed,
			Victory: m.camp.IsLastLevel(),
		}
	}
	p.outcome = &out
	p.grabbed = false
	p.notice = ""
	return m, nil
}

// updateLevelComplete handles input on the level complete overlay.
func (m App) updateLevelComplete(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		return m.quit()
	case core.ActionBack:
		return m.toMenu()
	case core.ActionGrab, core.ActionConfirm, core.ActionRotate:
		if m.play.outcome.Victory {
			m.play = nil
			m.screen = screenVictory
			return m, nil
		}
		return m.startLevel()
	}
	return m, nil
}

// notify shows a transient notice on the play screen.
func (m App) notify(p *playState, text string, style lipgloss.Style, d time.Duration) (tea.Model, tea.Cmd) {
	id := m.nextNotice()
	p.notice = text
	p.noticeStyle = style
	p.noticeID = id
	return m, noticeCmd(id, d)
}

// viewPlay renders the play screen.
func (m App) viewPlay() string {
	p := m.play
	if p.outcome != nil {
		return m.viewLevelComplete()
	}

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n\n")

	pieces := p.ctrl.Pieces()
	links := p.ctrl.Connections()
	for i, piece := range pieces {
		marker := "  "
		style := m.theme.Piece
		switch {
		case i == p.cursor && p.grabbed:
			marker = "≡ "
			style = m.theme.PieceGrabbed
		case i == p.cursor:
			marker = "> "
			style = m.theme.PieceCursor
		}

		arrowStyle := m.theme.PieceRotated
		if piece.Upright() {
			arrowStyle = m.theme.PieceUpright
		}
		arrow := arrowStyle.Render(rotationArrows[piece.Rotation.Quarter()])

		glyph := piece.Glyph
		if glyph == "" {
			glyph = "•"
		}
		b.WriteString(fmt.Sprintf("  %s%s %s  %s", style.Render(marker), arrow, glyph, style.Render(piece.Label)))
		b.WriteString("\n")

		if i < len(links) {
			if links[i] {
				b.WriteString(m.theme.LinkConnected.Render("      ┃"))
			} else {
				b.WriteString(m.theme.LinkBroken.Render("      ┆"))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if p.showInfo && p.cursor < len(pieces) {
		if d := pieces[p.cursor].Description; d != "" {
			b.WriteString("  " + m.theme.Description.Render(d))
			b.WriteString("\n")
		}
	}
	if p.notice != "" {
		b.WriteString("  " + p.noticeStyle.Render(p.notice))
		b.WriteString("\n")
	} else if p.ctrl.Ready() {
		b.WriteString("  " + m.theme.HUDReady.Render("Press c to check"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.Keys()))
	return b.String()
}

// renderHUD renders the title line of the play screen.
func (m App) renderHUD() string {
	p := m.play
	lvl := p.ctrl.Level()
	pos, total := m.camp.Position()
	sep := m.theme.HUDSeparator.Render("  |  ")

	mode := ""
	if m.camp.Remixed() {
		mode = sep + m.theme.HUDTitle.Render("REMIX")
	}

	return m.theme.HUDTitle.Render(fmt.Sprintf("Level %d/%d", pos, total)) +
		sep + m.theme.HUDValue.Render(lvl.Name) +
		sep + m.theme.HUDValue.Render(fmt.Sprintf("%ds", p.ctrl.Elapsed())) +
		sep + m.theme.stars(lvl.Thresholds.Stars(p.ctrl.Elapsed())) +
		mode
}

// viewLevelComplete renders the overlay shown after a solve.
func (m App) viewLevelComplete() string {
	out := m.play.outcome

	title := "Level Complete"
	next := "enter: next level"
	if out.Victory {
		title = "Final Level Complete"
		next = "enter: finish"
	}

	var b strings.Builder
	b.WriteString(m.theme.OverlayTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.stars(out.Stars))
	b.WriteString("\n\n")
	b.WriteString(m.theme.OverlayText.Render(fmt.Sprintf("Time: %ds", out.Elapsed)))
	if out.NewBest {
		b.WriteString("\n")
		b.WriteString(m.theme.HUDReady.Render("New best!"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.theme.MenuDescription.Render(next + "  esc: menu"))

	box := m.theme.OverlayBorder.Render(b.String())
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}
