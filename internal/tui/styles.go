package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	checkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	retryingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	summaryStyle  = lipgloss.NewStyle().MarginTop(1)
)
