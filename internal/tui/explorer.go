// Package tui is the interactive deformation explorer. It renders the
// vertical displacement field as a colored terminal heatmap and
// recomputes it as sources are dragged, deepened or re-pressurized.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/volckit/mogisim/internal/analysis"
	"github.com/volckit/mogisim/internal/engine"
	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/scenario"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// uplift runs warm, subsidence runs cold, zero stays dark
var (
	upRamp   = []string{"58", "100", "142", "184", "220", "214", "208", "202", "196"}
	downRamp = []string{"23", "24", "25", "26", "27", "33", "39", "45", "51"}
	zeroCell = dimmer.Render("·")
	nanCell  = magenta.Render("!")
)

type state int

const (
	stateMenu state = iota
	stateExplore
)

type model struct {
	state   state
	cursor  int
	presets []string

	sc     *scenario.Scenario
	eng    *engine.Engine
	grid   geo.Grid
	set    geo.SourceSet
	field  geo.Field
	active int
	err    error

	width  int
	height int
}

// NewExplorer builds the explorer model starting at the preset menu.
func NewExplorer() *model {
	return &model{
		state:   stateMenu,
		presets: scenario.ListPresets(),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateExplore:
		return m.exploreKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if err := m.load(m.presets[m.cursor]); err != nil {
			m.err = err
			return m, nil
		}
		m.state = stateExplore
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) exploreKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "escape":
		m.state = stateMenu
		return m, tea.ClearScreen
	case "left", "h":
		m.moveActive(-m.step(), 0)
	case "right", "l":
		m.moveActive(m.step(), 0)
	case "up", "k":
		m.moveActive(0, m.step())
	case "down", "j":
		m.moveActive(0, -m.step())
	case "+", "=":
		m.adjustStrength(1)
	case "-", "_":
		m.adjustStrength(-1)
	case "d":
		m.adjustDepth(-200)
	case "D":
		m.adjustDepth(200)
	case "n", "tab":
		if m.set.Len() > 0 {
			m.active = (m.active + 1) % m.set.Len()
		}
	case "a":
		m.set.Add(geo.Source{X: 0, Y: 0, Z: scenario.DefaultDepth}, 5)
		m.active = m.set.Len() - 1
		m.recompute()
	case "x":
		m.removeActive()
	case "r":
		if err := m.load(m.presets[m.cursor]); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m *model) load(name string) error {
	sc := scenario.GetPreset(name)
	if sc == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}
	grid, set, err := sc.Build()
	if err != nil {
		return err
	}
	m.sc = sc
	m.grid = grid
	m.set = set
	m.active = 0
	m.eng = engine.New(engine.Config{Nu: sc.BuildNu()}, nil)
	m.recompute()
	return nil
}

// step is one grid cell of horizontal movement.
func (m model) step() float64 {
	nx, _, ok := m.grid.Dims()
	if !ok || nx < 2 {
		return 100
	}
	return (m.grid.X[nx-1] - m.grid.X[0]) / float64(nx-1)
}

func (m *model) moveActive(dx, dy float64) {
	if m.active >= m.set.Len() {
		return
	}
	m.set.Sources[m.active].X += dx
	m.set.Sources[m.active].Y += dy
	m.recompute()
}

func (m *model) adjustStrength(d float64) {
	if m.active >= m.set.Len() {
		return
	}
	m.set.Strengths[m.active] += d
	m.recompute()
}

func (m *model) adjustDepth(d float64) {
	if m.active >= m.set.Len() {
		return
	}
	m.set.Sources[m.active].Z += d
	m.recompute()
}

func (m *model) removeActive() {
	if m.set.Len() <= 1 {
		return
	}
	i := m.active
	m.set.Sources = append(m.set.Sources[:i], m.set.Sources[i+1:]...)
	m.set.Strengths = append(m.set.Strengths[:i], m.set.Strengths[i+1:]...)
	if m.active >= m.set.Len() {
		m.active = m.set.Len() - 1
	}
	m.recompute()
}

func (m *model) recompute() {
	res, err := m.eng.Run(context.Background(), m.grid, m.set)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.field = res.Field
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateExplore:
		return m.viewExplore()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("m o g i s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter explore   q quit") + "\n")
	if m.err != nil {
		b.WriteString("\n      " + yellow.Render(m.err.Error()) + "\n")
	}

	return b.String()
}

var presetInfo = map[string]string{
	"chamber":   "inflating magma chamber",
	"deflation": "withdrawing reservoir",
	"twin":      "two interacting chambers",
	"deep":      "deep high-volume source",
	"shallow":   "shallow weak source",
}

func (m model) viewExplore() string {
	var b strings.Builder

	cw := m.width - 10
	if cw > 64 {
		cw = 64
	}
	if cw < 24 {
		cw = 24
	}
	ch := m.height - 16
	if ch > 26 {
		ch = 26
	}
	if ch < 10 {
		ch = 10
	}

	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n\n",
		green.Render("●"),
		cyan.Render(m.sc.Name),
		dim.Render(fmt.Sprintf("nu=%.2f  sources=%d", m.sc.BuildNu(), m.set.Len()))))

	b.WriteString(m.renderHeatmap(cw, ch))

	peak := m.field.MaxAbsUz()
	b.WriteString(fmt.Sprintf("\n   %s %s   %s %s\n",
		dim.Render("peak |uz|"), white.Render(fmt.Sprintf("%.4f m", peak)),
		dim.Render("scale"), dimmer.Render("· 0")+" "+downRampLegend()+dim.Render(" subsidence  ")+upRampLegend()+dim.Render(" uplift")))

	if m.active < m.set.Len() {
		src := m.set.Sources[m.active]
		b.WriteString(fmt.Sprintf("   %s %s  x=%s y=%s z=%s  strength=%s\n",
			dim.Render("source"),
			cyan.Render(fmt.Sprintf("%d/%d", m.active+1, m.set.Len())),
			white.Render(fmt.Sprintf("%.0f", src.X)),
			white.Render(fmt.Sprintf("%.0f", src.Y)),
			white.Render(fmt.Sprintf("%.0f", src.Z)),
			magenta.Render(fmt.Sprintf("%.1f", m.set.Strengths[m.active]))))
	}

	if prof := m.profile(); len(prof.Dist) > 1 {
		graph := asciigraph.Plot(prof.Uz,
			asciigraph.Height(6),
			asciigraph.Width(cw),
			asciigraph.Caption("uz vs distance from active source"),
		)
		b.WriteString("\n" + indent(dim.Render(graph), "   ") + "\n")
	}

	if m.err != nil {
		b.WriteString("\n   " + yellow.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   ←↓↑→ move  +- strength  d/D depth  n next  a add  x remove  r reset  q back") + "\n")
	return b.String()
}

// renderHeatmap downsamples the field onto a character canvas, two grid
// steps per row to keep terminal cell aspect roughly square.
func (m model) renderHeatmap(cw, ch int) string {
	nx, ny, ok := m.grid.Dims()
	if !ok {
		return dim.Render("   grid is not a plane\n")
	}

	peak := m.field.MaxAbsUz()
	var b strings.Builder
	for row := 0; row < ch; row++ {
		b.WriteString("   ")
		// top row maps to max y
		gy := (ch - 1 - row) * (ny - 1) / max(ch-1, 1)
		for col := 0; col < cw; col++ {
			gx := col * (nx - 1) / max(cw-1, 1)
			i := gy*nx + gx
			b.WriteString(m.cell(m.field.Uz[i], peak))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) cell(uz, peak float64) string {
	if math.IsNaN(uz) || math.IsInf(uz, 0) {
		return nanCell
	}
	if peak == 0 {
		return zeroCell
	}
	norm := uz / peak
	idx := int(math.Abs(norm) * float64(len(upRamp)))
	if idx == 0 {
		return zeroCell
	}
	if idx > len(upRamp)-1 {
		idx = len(upRamp) - 1
	}
	ramp := upRamp
	if norm < 0 {
		ramp = downRamp
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ramp[idx])).Render("█")
}

func (m model) profile() analysis.Profile {
	if m.active >= m.set.Len() {
		return analysis.Profile{}
	}
	src := m.set.Sources[m.active]
	return analysis.RadialProfile(m.grid, m.field, src.X, src.Y, 32)
}

func upRampLegend() string {
	var b strings.Builder
	for _, c := range upRamp {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	return b.String()
}

func downRampLegend() string {
	var b strings.Builder
	for _, c := range downRamp {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Run starts the explorer in the alternate screen.
func Run() error {
	p := tea.NewProgram(NewExplorer(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
