// Package viz renders a live terminal view of a multi-star system: the
// analytic propagator advances wall-clock-decoupled model time and the
// stars are drawn on the plane of the sky (u horizontal, v vertical)
// with their trails, alongside line-of-sight stats per star.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stardyn/internal/hierarchy"
	"github.com/san-kum/stardyn/internal/kepler"
)

const (
	canvasWidth  = 64
	canvasHeight = 24
	trailLength  = 400
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Padding(0, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type TickMsg time.Time

// Model is the bubbletea model for the live orbit view.
type Model struct {
	sys   *hierarchy.System
	prop  *kepler.Propagator
	label string

	t       float64
	dt      float64 // model days per frame
	running bool
	scale   float64 // solRad per canvas half-width

	canvas *Canvas
	trails [][]struct{ x, y int }

	pos []kepler.Vec3
	vel []kepler.Vec3
	err error
}

func NewModel(sys *hierarchy.System, label string) Model {
	// A margin over the summed semi-major axes keeps apoastron passages
	// of the widest orbit inside the frame.
	scale := 1.3 * sys.Extent()
	return Model{
		sys:     sys,
		prop:    kepler.NewPropagator(sys),
		label:   label,
		t:       sys.Epoch(),
		dt:      sys.MinPeriod() / 240,
		running: true,
		scale:   scale,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		trails:  make([][]struct{ x, y int }, sys.NumStars()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = m.sys.Epoch()
			for i := range m.trails {
				m.trails[i] = nil
			}
		case "+", "=":
			m.dt *= 1.5
		case "-", "_":
			m.dt /= 1.5
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.t += m.dt
			m.pos, m.vel, m.err = m.prop.StateAt(m.t)
			if m.err == nil {
				m.record()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) record() {
	for ci, p := range m.pos {
		x, y := m.project(p)
		m.trails[ci] = append(m.trails[ci], struct{ x, y int }{x, y})
		if len(m.trails[ci]) > trailLength {
			m.trails[ci] = m.trails[ci][1:]
		}
	}
}

// project maps sky coordinates to canvas sub-pixels; v grows upward.
func (m *Model) project(p kepler.Vec3) (int, int) {
	x := (p.U/m.scale + 1) / 2 * float64(canvasWidth*2)
	y := (1 - p.V/m.scale) / 2 * float64(canvasHeight*4)
	return int(x), int(y)
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render("propagation failed: "+m.err.Error()) + "\n"
	}

	m.canvas.Clear()
	for _, trail := range m.trails {
		for _, pt := range trail {
			m.canvas.Set(pt.x, pt.y)
		}
	}

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.3f d", m.t)) + "\n")
	stats.WriteString(labelStyle.Render("frame dt") + valueStyle.Render(fmt.Sprintf("%.5f d", m.dt)) + "\n\n")
	for ci, st := range m.sys.Stars() {
		if m.pos == nil {
			break
		}
		stats.WriteString(headerStyle.Render(st.Name) + "\n")
		stats.WriteString(labelStyle.Render("w") + valueStyle.Render(fmt.Sprintf("%8.3f solRad", m.pos[ci].W)) + "\n")
		stats.WriteString(labelStyle.Render("rv") + valueStyle.Render(fmt.Sprintf("%8.3f solRad/d", m.vel[ci].W)) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()))

	return headerStyle.Render("stardyn live · "+m.label) + "\n" +
		body +
		helpStyle.Render("space pause · r reset · +/- speed · q quit") + "\n"
}

// Run starts the live view and blocks until the user quits.
func Run(sys *hierarchy.System, label string) error {
	_, err := tea.NewProgram(NewModel(sys, label)).Run()
	return err
}
