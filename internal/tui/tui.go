// Package tui provides an interactive terminal browser for computed fields.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	sliceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// magnitude ramp from weakest to strongest field
const ramp = " .:-=+*#%@"

// Model browses the z-slices of a sampled field magnitude cube.
type Model struct {
	title      string
	resolution [3]int
	mags       []float64
	maxMag     float64
	slice      int
}

// NewModel prepares a browser over magnitudes laid out with index
// (i*ny + j)*nz + k.
func NewModel(title string, resolution [3]int, mags []float64) Model {
	maxMag := 0.0
	for _, m := range mags {
		if !math.IsNaN(m) && !math.IsInf(m, 0) && m > maxMag {
			maxMag = m
		}
	}
	return Model{
		title:      title,
		resolution: resolution,
		mags:       mags,
		maxMag:     maxMag,
		slice:      resolution[2] / 2,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.slice < m.resolution[2]-1 {
				m.slice++
			}
		case "down", "j":
			if m.slice > 0 {
				m.slice--
			}
		case "g":
			m.slice = 0
		case "G":
			m.slice = m.resolution[2] - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(sliceStyle.Render(m.renderSlice()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(
		fmt.Sprintf("slice %d/%d  max |B| %.4g", m.slice+1, m.resolution[2], m.maxMag)))
	b.WriteString(helpStyle.Render("\nj/k move slice  g/G first/last  q quit"))
	return b.String()
}

func (m Model) renderSlice() string {
	nx, ny := m.resolution[0], m.resolution[1]
	var b strings.Builder
	for j := ny - 1; j >= 0; j-- {
		for i := 0; i < nx; i++ {
			b.WriteRune(m.cell(i, j))
			b.WriteRune(' ')
		}
		if j > 0 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func (m Model) cell(i, j int) rune {
	idx := (i*m.resolution[1]+j)*m.resolution[2] + m.slice
	if idx >= len(m.mags) {
		return '?'
	}
	v := m.mags[idx]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 'x'
	}
	if m.maxMag == 0 {
		return rune(ramp[0])
	}
	level := int(v / m.maxMag * float64(len(ramp)-1))
	if level < 0 {
		level = 0
	}
	if level >= len(ramp) {
		level = len(ramp) - 1
	}
	return rune(ramp[level])
}

// Run starts the interactive browser and blocks until the user quits.
func Run(title string, resolution [3]int, mags []float64) error {
	p := tea.NewProgram(NewModel(title, resolution, mags))
	_, err := p.Run()
	return err
}
