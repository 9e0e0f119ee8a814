package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	tickRate        = time.Second / 60
)

type TickMsg time.Time

// Model runs the simulation inside a Bubble Tea program. Bodies live in a
// virtual viewport that is scaled onto the braille canvas every frame.
type Model struct {
	simulator *sim.Simulator
	world     *dynamo.World
	initial   *dynamo.World
	viewW     float32
	viewH     float32
	dt        float32

	pending  sim.Keys
	running  bool
	quitting bool
	frames   int
	stats    sim.Stats

	canvas        *Canvas
	energyHistory []float64
	speedHistory  []float64
	title         string
}

// NewModel wraps w, spawned into a viewW x viewH viewport. The world is
// copied so reset can restore it.
func NewModel(s *sim.Simulator, w *dynamo.World, viewW, viewH, dt float32, title string) Model {
	return Model{
		simulator:     s,
		world:         w,
		initial:       w.Clone(),
		viewW:         viewW,
		viewH:         viewH,
		dt:            dt,
		running:       true,
		stats:         sim.Measure(w, dt),
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energyHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
		title:         title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation. Arrow keys and
// escape are queued and applied as held keys on the next tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.pending = m.pending.Press(sim.KeyEscape)
		case "up", "k":
			m.pending = m.pending.Press(sim.KeyUp)
		case "down", "j":
			m.pending = m.pending.Press(sim.KeyDown)
		case " ", "space":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running || m.pending.Escape {
			if !m.step() {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, tick()
	}
	return m, nil
}

// step advances one frame with the queued keys. It reports false once
// the simulation has been asked to stop.
func (m *Model) step() bool {
	keys := m.pending
	m.pending = sim.Keys{}

	stats, ok := m.simulator.Advance(m.world, sim.Frame{
		Dt:     m.dt,
		Width:  m.viewW,
		Height: m.viewH,
		Input:  keys,
	})
	if !ok {
		return false
	}

	m.frames++
	m.stats = stats
	m.energyHistory = appendCapped(m.energyHistory, float64(stats.KineticEnergy))
	m.speedHistory = appendCapped(m.speedHistory, float64(stats.AverageSpeed))
	return true
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset restores the spawned population and the starting gravity.
func (m *Model) reset() {
	m.world.Bodies = append(m.world.Bodies[:0], m.initial.Bodies...)
	m.world.G = m.initial.G
	m.frames = 0
	m.pending = sim.Keys{}
	m.stats = sim.Measure(m.world, m.dt)
	m.energyHistory = m.energyHistory[:0]
	m.speedHistory = m.speedHistory[:0]
}

// draw projects every body from the virtual viewport onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawFrame()

	cw, ch := m.canvas.Dots()
	sx := float32(cw) / m.viewW
	sy := float32(ch) / m.viewH
	scale := min(sx, sy)

	for i := range m.world.Bodies {
		b := &m.world.Bodies[i]
		x := int(b.Position.X * sx)
		y := int(b.Position.Y * sy)
		m.canvas.FillCircle(x, y, int(b.Radius()*scale))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.frames))
	row("Gravity", fmt.Sprintf("%.0f", m.stats.Gravity))
	row("Circles", fmt.Sprintf("%d", m.stats.Bodies))
	row("Avg Speed", fmt.Sprintf("%.2f", m.stats.AverageSpeed))
	row("Total Energy", fmt.Sprintf("%.2f", m.stats.KineticEnergy))
	row("Bounces", fmt.Sprintf("%d", m.stats.Bounces))
	s.WriteString("\n" + SparklineChart(m.speedHistory, 30) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\n↑↓:Gravity SP:Pause R:Reset\nEsc/Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) World() *dynamo.World { return m.world }
func (m Model) Frames() int          { return m.frames }

// Run starts the terminal frontend and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
