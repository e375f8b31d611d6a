// Package viz renders field summaries and profiles for the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"galmag/internal/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// RenderSummary formats a field summary as a bordered panel.
func RenderSummary(title string, s analysis.FieldSummary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	row := func(label string, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("mean |B|", fmt.Sprintf("%.6g", s.MeanMagnitude))
	row("max |B|", fmt.Sprintf("%.6g", s.MaxMagnitude))
	row("energy density", fmt.Sprintf("%.6g", s.EnergyDensity))

	if s.Invalid > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d invalid samples", s.Invalid)))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderProfile plots a radial strength profile as an ASCII line graph.
func RenderProfile(mean []float64, height int) string {
	if len(mean) < 2 {
		return warnStyle.Render("not enough samples for a profile")
	}
	graph := asciigraph.Plot(mean,
		asciigraph.Height(height),
		asciigraph.Caption("mean |B| vs cylindrical radius"),
	)
	return graphStyle.Render(graph)
}

// RenderSpectrum shows azimuthal mode power as labelled bars.
func RenderSpectrum(power []float64) string {
	if len(power) == 0 {
		return warnStyle.Render("empty spectrum")
	}
	max := 0.0
	for _, p := range power {
		if p > max {
			max = p
		}
	}
	if max == 0 {
		max = 1
	}

	const barWidth = 40
	var b strings.Builder
	b.WriteString(headerStyle.Render("Azimuthal Spectrum"))
	b.WriteString("\n")
	for m, p := range power {
		filled := int(p / max * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		b.WriteString(labelStyle.Render(fmt.Sprintf("m=%d", m)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s %.4g", bar, p)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
