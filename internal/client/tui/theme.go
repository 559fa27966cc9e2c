package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the terminal client. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color
	BadgeText   lipgloss.Color

	// Ticket status accents.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color
	StatusReopened   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("231"),

	HeaderForeground: lipgloss.Color("39"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("203"),
	SuccessText: lipgloss.Color("114"),
	BadgeText:   lipgloss.Color("214"),

	StatusOpen:       lipgloss.Color("39"),
	StatusInProgress: lipgloss.Color("214"),
	StatusResolved:   lipgloss.Color("114"),
	StatusClosed:     lipgloss.Color("243"),
	StatusReopened:   lipgloss.Color("203"),
}

// StatusColor returns the accent for a ticket status string. Unknown
// statuses render faint.
func (t Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "Open":
		return t.StatusOpen
	case "In Progress":
		return t.StatusInProgress
	case "Resolved":
		return t.StatusResolved
	case "Closed":
		return t.StatusClosed
	case "Reopened":
		return t.StatusReopened
	default:
		return t.FaintText
	}
}
