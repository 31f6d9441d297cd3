package console

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the console colors.
type StyleConfig struct {
	PrimaryBlue   lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	BorderColor   lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		PrimaryBlue:   lipgloss.Color("#8AB4F8"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		BorderColor:   lipgloss.Color("#5F6368"),
	}
}

// TitleStyle is used for the pipeline name line of a message.
func (s *StyleConfig) TitleStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Foreground(s.PrimaryBlue).
		Bold(true)
}

// BodyStyle is used for the rest of a message.
func (s *StyleConfig) BodyStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Foreground(s.TextPrimary)
}

// LogStyle is used for log channel lines.
func (s *StyleConfig) LogStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Foreground(s.TextSecondary)
}

// MessageStyle frames a whole message.
func (s *StyleConfig) MessageStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(s.BorderColor).
		PaddingLeft(1)
}
