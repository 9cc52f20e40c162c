package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shgcav/internal/cavity"
	"github.com/san-kum/shgcav/internal/config"
)

const sweepPoints = 48

type param struct {
	name  string
	unit  string
	step  float64
	value func(*config.Config) *float64
}

var params = []param{
	{"angle", "deg", 0.5, func(c *config.Config) *float64 { return &c.AngleDeg }},
	{"radius R", "mm", 5, func(c *config.Config) *float64 { return &c.RadiusMM }},
	{"crystal s", "mm", 0.5, func(c *config.Config) *float64 { return &c.CrystalDistanceMM }},
	{"focus v", "mm", 5, func(c *config.Config) *float64 { return &c.FocusDistanceMM }},
	{"length l", "mm", 1, func(c *config.Config) *float64 { return &c.CrystalLengthMM }},
	{"index η", "", 0.01, func(c *config.Config) *float64 { return &c.Index }},
	{"λ", "nm", 1, func(c *config.Config) *float64 { return &c.WavelengthNM }},
	{"walk-off ρ", "mrad", 0.5, func(c *config.Config) *float64 { return &c.WalkOffMrad }},
}

type state int

const (
	stateMenu state = iota
	stateExplore
)

type preset struct {
	crystal string
	name    string
}

// Model is the interactive cavity explorer.
type Model struct {
	state   state
	cursor  int
	presets []preset

	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	savePath    string
	status      string

	mode   cavity.Mode
	err    error
	lo, hi float64
	rngErr error
	waists []float64

	width  int
	height int
}

// New starts at the preset menu. cfg is the entry labelled "current".
func New(cfg *config.Config, savePath string) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Model{
		state:    stateMenu,
		presets:  []preset{{"", "current"}},
		cfg:      cfg.Clone(),
		savePath: savePath,
		width:    80,
		height:   24,
	}
	for _, crystal := range config.Crystals() {
		for _, name := range config.ListPresets(crystal) {
			m.presets = append(m.presets, preset{crystal, name})
		}
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.exploreKey(msg)
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
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
		if p := m.presets[m.cursor]; p.crystal != "" {
			m.cfg = config.GetPreset(p.crystal, p.name)
		}
		m.state = stateExplore
		m.paramCursor = 0
		m.status = ""
		m.recompute()
	}
	return m, nil
}

func (m Model) exploreKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				*params[m.paramCursor].value(m.cfg) = val
				m.recompute()
			} else {
				m.status = fmt.Sprintf("not a number: %q", m.editBuf)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		*params[m.paramCursor].value(m.cfg) -= params[m.paramCursor].step
		m.recompute()
	case "right", "l":
		*params[m.paramCursor].value(m.cfg) += params[m.paramCursor].step
		m.recompute()
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(*params[m.paramCursor].value(m.cfg), 'f', -1, 64)
	case "b":
		if m.cfg.Crystal == cavity.CutBrewster.String() {
			m.cfg.Crystal = cavity.CutPlane.String()
		} else {
			m.cfg.Crystal = cavity.CutBrewster.String()
		}
		m.recompute()
	case "c":
		if m.rngErr == nil {
			m.cfg.CrystalDistanceMM = math.Round((m.lo+m.hi)/2*1e5) / 1e2
			m.recompute()
		}
	case "w":
		m.save()
	}
	return m, nil
}

func (m *Model) save() {
	if m.savePath == "" {
		m.status = "no config path given"
		return
	}
	if err := config.Save(m.savePath, m.cfg); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.status = "saved " + m.savePath
}

// recompute solves the current configuration and refreshes the waist
// profile over its stability range.
func (m *Model) recompute() {
	m.mode, m.err = cavity.Mode{}, nil
	m.waists = nil

	p, err := m.cfg.ToParameters()
	if err != nil {
		m.err = err
		m.rngErr = err
		return
	}

	m.mode, m.err = cavity.Solve(p)
	m.lo, m.hi, m.rngErr = cavity.StabilityRange(p)

	values, err := cavity.DefaultSweepValues(p, sweepPoints)
	if err != nil {
		return
	}
	m.waists = make([]float64, len(values))
	for i, pt := range cavity.Sweep(p, cavity.FieldCrystalDistance, values) {
		m.waists[i] = math.NaN()
		if pt.OK() {
			m.waists[i] = pt.Mode.Crystal.WaistT * 1e6
		}
	}
}

func (m Model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewExplore()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("s h g c a v") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, p := range m.presets {
		desc := p.crystal + " cut"
		if p.crystal == "" {
			desc = m.cfg.Crystal + " cut, from flags or file"
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", p.name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", p.name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter explore   q quit") + "\n")
	return b.String()
}

func (m Model) viewParams() string {
	var b strings.Builder
	b.WriteString(header.Render("cavity") + "\n")
	b.WriteString(fmt.Sprintf("  %-12s%s\n", "crystal", magenta.Render(m.cfg.Crystal)))

	for i, p := range params {
		val := fmt.Sprintf("%9.3f", *p.value(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%9s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString(cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", p.name)) + magenta.Render(val) + " " + dim.Render(p.unit) + "\n")
		} else {
			b.WriteString("  " + dim.Render(fmt.Sprintf("%-12s", p.name)) + dim.Render(val) + " " + dimmer.Render(p.unit) + "\n")
		}
	}
	return panel.Render(b.String())
}

func (m Model) viewMode() string {
	var b strings.Builder
	b.WriteString(header.Render("eigenmode") + "\n")

	if m.err != nil {
		var ge *cavity.GeometryError
		switch {
		case errors.As(m.err, &ge):
			b.WriteString(red.Render("geometry infeasible") + "\n")
			b.WriteString(dim.Render(fmt.Sprintf("%s: %s", ge.Field, ge.Reason)) + "\n")
		case errors.Is(m.err, cavity.ErrCavityUnstable):
			b.WriteString(red.Render("cavity unstable") + "\n")
			b.WriteString(dim.Render(m.err.Error()) + "\n")
		default:
			b.WriteString(red.Render(m.err.Error()) + "\n")
		}
		return panel.Width(44).Render(b.String())
	}

	row := func(label string, t, s float64, unit string) {
		b.WriteString(fmt.Sprintf("%-14s %s %s  %s\n", dim.Render(label),
			white.Render(fmt.Sprintf("%8.2f", t)), white.Render(fmt.Sprintf("%8.2f", s)), dimmer.Render(unit)))
	}
	b.WriteString(fmt.Sprintf("%-14s %8s %8s\n", "", "tang", "sag"))
	row("waist", m.mode.Crystal.WaistT*1e6, m.mode.Crystal.WaistS*1e6, "µm")
	row("confocal", m.mode.Crystal.ConfocalT*1e3, m.mode.Crystal.ConfocalS*1e3, "mm")
	row("ξ", m.mode.Crystal.XiT, m.mode.Crystal.XiS, "")
	row("coll. waist", m.mode.Collimated.WaistT*1e6, m.mode.Collimated.WaistS*1e6, "µm")
	row("coll. confocal", m.mode.Collimated.ConfocalT*1e3, m.mode.Collimated.ConfocalS*1e3, "mm")
	row("m = (A+D)/2", m.mode.StabilityT, m.mode.StabilityS, "")
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		dim.Render("ellipticity"), green.Render(fmt.Sprintf("%.3f", m.mode.Crystal.Ellipticity)),
		dim.Render("B"), green.Render(fmt.Sprintf("%.3f", m.mode.B))))
	b.WriteString(fmt.Sprintf("%s %s\n", dim.Render("FSR"), green.Render(fmt.Sprintf("%.2f MHz", m.mode.FSR/1e6))))
	return panel.Width(44).Render(b.String())
}

func (m Model) viewStability() string {
	var b strings.Builder
	if m.rngErr != nil {
		b.WriteString(yellow.Render("   no stable crystal distance for these parameters") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("   s %s  %s\n",
		rangeBar(m.cfg.CrystalDistanceMM*1e-3, m.lo, m.hi, 36),
		dim.Render(fmt.Sprintf("stable %.2f to %.2f mm", m.lo*1e3, m.hi*1e3))))
	if len(m.waists) > 0 {
		b.WriteString(fmt.Sprintf("   w %s  %s\n", cyan.Render(sparkline(m.waists, 36)), dim.Render("tangential waist across the range")))
	}
	return b.String()
}

func (m Model) viewExplore() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewParams(), " ", m.viewMode()))
	b.WriteString("\n\n")
	b.WriteString(m.viewStability())
	if m.status != "" {
		b.WriteString("\n   " + yellow.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dim.Render("   ↑↓ select  ←→ adjust  enter edit  b cut  c centre s  w save  esc menu") + "\n")
	return b.String()
}

// Run starts the explorer on the terminal's alternate screen.
func Run(cfg *config.Config, savePath string) error {
	p := tea.NewProgram(New(cfg, savePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
