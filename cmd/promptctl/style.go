package main

import (
	"github.com/charmbracelet/lipgloss"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

var (
	aiStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	heuristicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// statusLine summarizes which path produced a result.
func statusLine(r *domain.Result) string {
	if r.Path == domain.PathAI {
		return aiStyle.Render("[ai]") + " " + dimStyle.Render(r.Status)
	}
	return heuristicStyle.Render("[heuristic]") + " " + dimStyle.Render(r.Status)
}
