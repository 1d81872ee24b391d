package output

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles for text output.
var styles = struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
}{
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red bold
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange bold
}
