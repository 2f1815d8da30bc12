// Package tui provides the Bubble Tea integration for chronolink.
// It handles the terminal UI loop, input mapping, and screen flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg advances the level clock by one second. Ticks carry the attempt
// they were scheduled for so ticks from an abandoned attempt are dropped.
type tickMsg struct {
	attempt int
}

// noticeExpiredMsg clears a transient notice if it is still the current one.
type noticeExpiredMsg struct {
	id int
}

// tickCmd schedules the next clock tick for an attempt.
func tickCmd(attempt int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{attempt: attempt}
	})
}

// noticeCmd expires notice id after d.
func noticeCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}
