package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lorenz/internal/lorenz"
)

const (
	sidebarWidth  = 40
	graphWindow   = 300
	minCanvasCols = 20
	minCanvasRows = 8
)

type PlayState int

const (
	Playing PlayState = iota
	Paused
)

func (s PlayState) String() string {
	if s == Playing {
		return "PLAYING"
	}
	return "PAUSED"
}

type TickMsg time.Time

type PlayerOptions struct {
	Title  string
	Params lorenz.Params
	FPS    int
	// Stride is the number of samples advanced per frame.
	Stride int
	// Animate starts at the first sample and plays; otherwise the whole
	// trajectory is shown paused.
	Animate bool
	Theme   string
}

// Player replays a precomputed trajectory. It is a two-state machine,
// Playing and Paused, over a frame index into the samples.
type Player struct {
	tr      *lorenz.Trajectory
	opts    PlayerOptions
	frame   int
	state   PlayState
	camera  *Camera
	canvas  *Canvas
	theme   Theme
	styles  Styles
	width   int
	height  int
	lo, hi  lorenz.State
	initial lorenz.State
}

func NewPlayer(tr *lorenz.Trajectory, opts PlayerOptions) Player {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Stride <= 0 {
		opts.Stride = 1
	}

	p := Player{
		tr:     tr,
		opts:   opts,
		camera: NewCamera(),
		canvas: NewCanvas(60, 20),
		theme:  GetTheme(opts.Theme),
		width:  60 + sidebarWidth,
		height: 24,
	}
	p.styles = NewStyles(p.theme)
	p.lo, p.hi = tr.Bounds()
	p.camera.Fit(p.lo, p.hi)
	if tr.Len() > 0 {
		p.initial = tr.At(0)
	}

	if opts.Animate {
		p.state = Playing
	} else {
		p.state = Paused
		p.frame = p.last()
	}
	return p
}

func (p Player) Frame() int       { return p.frame }
func (p Player) State() PlayState { return p.state }

func (p Player) last() int { return max(p.tr.Len()-1, 0) }

func (p Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd { return p.tick() }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ", "p":
			p.toggle()
		case "r":
			p.frame = 0
			p.state = Playing
		case "home":
			p.frame = 0
		case "end":
			p.frame = p.last()
			p.state = Paused
		case "[":
			p.frame = max(p.frame-p.opts.Stride*10, 0)
		case "]":
			p.frame = min(p.frame+p.opts.Stride*10, p.last())
		case "left", "h":
			p.camera.RotateY(-0.1)
		case "right", "l":
			p.camera.RotateY(0.1)
		case "up", "k":
			p.camera.RotateX(-0.1)
		case "down", "j":
			p.camera.RotateX(0.1)
		case "+", "=":
			p.camera.ZoomIn()
		case "-", "_":
			p.camera.ZoomOut()
		case "t":
			p.theme = nextTheme(p.theme)
			p.styles = NewStyles(p.theme)
		}
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		cols := max(msg.Width-sidebarWidth-6, minCanvasCols)
		rows := max(msg.Height-4, minCanvasRows)
		p.canvas.Resize(cols, rows)
	case TickMsg:
		p.advance()
		return p, p.tick()
	}
	return p, nil
}

func (p *Player) toggle() {
	if p.state == Playing {
		p.state = Paused
		return
	}
	if p.frame >= p.last() {
		p.frame = 0
	}
	p.state = Playing
}

// advance moves the frame forward while playing and pauses on the last
// sample.
func (p *Player) advance() {
	if p.state != Playing {
		return
	}
	p.frame += p.opts.Stride
	if p.frame >= p.last() {
		p.frame = p.last()
		p.state = Paused
	}
}

func (p Player) View() string {
	if p.tr.Len() == 0 {
		return p.styles.Warning.Render("empty trajectory: nothing to play") + "\n"
	}

	p.canvas.Clear()
	RenderTrajectory(p.canvas, p.tr, p.frame+1, p.camera)
	canvasView := p.styles.Trail.Render(p.canvas.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, p.styles.Sidebar.Render(p.sidebar()))
}

func (p Player) sidebar() string {
	var s strings.Builder
	st := p.styles

	title := p.opts.Title
	if title == "" {
		title = "LORENZ"
	}
	s.WriteString(st.Header.Render(title) + "\n")

	status := st.Playing.Render(p.state.String())
	if p.state == Paused {
		status = st.Paused.Render(p.state.String())
	}
	s.WriteString(status + "\n\n")

	cur := p.tr.At(p.frame)
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("t", fmt.Sprintf("%.2f", p.tr.Times[p.frame]))
	row("x", fmt.Sprintf("%8.3f", cur[0]))
	row("y", fmt.Sprintf("%8.3f", cur[1]))
	row("z", fmt.Sprintf("%8.3f", cur[2]))
	row("frame", fmt.Sprintf("%d/%d", p.frame+1, p.tr.Len()))
	s.WriteString(ProgressBar(float64(p.frame)/float64(max(p.last(), 1)), sidebarWidth-6) + "\n\n")

	row("rho", fmt.Sprintf("%g", p.opts.Params.Rho))
	row("sigma", fmt.Sprintf("%g", p.opts.Params.Sigma))
	row("beta", fmt.Sprintf("%g", p.opts.Params.Beta))
	row("start", fmt.Sprintf("(%g, %g, %g)", p.initial[0], p.initial[1], p.initial[2]))

	if !cur.IsFinite() {
		s.WriteString("\n" + st.Warning.Render("trajectory diverged") + "\n")
	}

	if series := p.recentZ(); len(series) > 1 {
		chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(sidebarWidth-14), asciigraph.Caption("z(t)"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString(st.KeyHint.Render("space:play/pause  r:restart  q:quit\n←→↑↓:rotate  +/-:zoom  [ ]:seek  t:theme"))
	return s.String()
}

// recentZ returns the finite z values in the window ending at the current
// frame.
func (p Player) recentZ() []float64 {
	from := max(p.frame+1-graphWindow, 0)
	out := make([]float64, 0, p.frame+1-from)
	for _, v := range p.tr.Z()[from : p.frame+1] {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Run starts the player on the alternate screen and blocks until it quits.
func Run(p Player) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
