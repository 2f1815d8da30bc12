package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all visual styles of the chronolink screens.
type Theme struct {
	// Piece list
	Piece         lipgloss.Style
	PieceCursor   lipgloss.Style
	PieceGrabbed  lipgloss.Style
	PieceUpright  lipgloss.Style
	PieceRotated  lipgloss.Style
	LinkConnected lipgloss.Style
	LinkBroken    lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDReady     lipgloss.Style
	HUDInvalid   lipgloss.Style
	Description  lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
	StarOn        lipgloss.Style
	StarOff       lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Piece:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PieceCursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),   // Bright cyan
		PieceGrabbed:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),  // Bright yellow
		PieceUpright:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),              // Lime green
		PieceRotated:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),             // Hot pink
		LinkConnected: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),              // Lime green
		LinkBroken:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),             // Dim gray

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDReady:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		HUDInvalid:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Description:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("135")).
			Padding(1, 4),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		StarOn:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		StarOff:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.PieceUpright = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.PieceRotated = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	theme.LinkConnected = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.LinkBroken = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	theme.StarOn = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

// stars renders earned stars out of three.
func (t Theme) stars(n int) string {
	out := ""
	for i := 0; i < 3; i++ {
		if i < n {
			out += t.StarOn.Render("★")
		} else {
			out += t.StarOff.Render("☆")
		}
	}
	return out
}
