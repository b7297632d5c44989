package view

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/sheikhrachel/go-life/model"
)

const (
	viewHeader = "header"
	viewStatus = "status"
	viewField  = "field"
	viewHelp   = "help"

	leftColumnWidth = 28
	minWindowHeight = 12
	resizeStep      = 8
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is an interactive terminal host for a universe. Every access to
// the universe happens on the gocui main loop goroutine.
type ConsoleUI struct {
	u        *model.Universe
	g        *gocui.Gui
	k        []keyBinding
	rng      *rand.Rand
	density  float64
	interval time.Duration

	running bool
	stopCh  chan struct{}
	cursor  model.Coord
	message string

	liveFiller string
	deadFiller string
}

// NewConsoleUI creates the UI. Call Start to enter the main loop.
func NewConsoleUI(u *model.Universe, rng *rand.Rand, density float64, interval time.Duration) (*ConsoleUI, error) {
	t := &ConsoleUI{
		u:          u,
		rng:        rng,
		density:    density,
		interval:   interval,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}
	t.g = g
	t.g.Mouse = true

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Random", t.cmdRandomize, ""},
		{'g', "G", "Glider", t.cmdGlider, ""},
		{'+', "+", "Wider", t.cmdWider, ""},
		{'-', "-", "Narrower", t.cmdNarrower, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdMouseClick, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(); err != nil {
		t.g.Close()
		return nil, err
	}
	return t, nil
}

func (t *ConsoleUI) initKeyBindings() error {
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			return err
		}
	}
	return nil
}

// Start runs the main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	defer t.stop()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(viewHeader, -1, -1, maxX, 1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
		fmt.Fprint(v, " Game of Life on a torus")
	}

	if maxY < minWindowHeight {
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewField)
		_ = g.DeleteView(viewHelp)
		return nil
	}

	if v, err := g.SetView(viewStatus, 0, 2, leftColumnWidth, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	t.renderStatus()

	if v, err := g.SetView(viewField, leftColumnWidth+1, 2, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Universe"
	}
	t.renderField()

	if v, err := g.SetView(viewHelp, -1, maxY-4, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		var b bytes.Buffer
		b.WriteString(" KEYS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		fmt.Fprint(v, b.String())
	}
	return nil
}

func (t *ConsoleUI) renderField() {
	v, err := t.g.View(viewField)
	if err != nil {
		return
	}
	v.Clear()

	maxW, maxH := v.Size()
	cells := t.u.Cells()
	width := t.u.Width()

	var b bytes.Buffer
	for row := range min(t.u.Height(), maxH) {
		if row != 0 {
			b.WriteByte('\n')
		}
		for _, c := range cells[row*width : row*width+min(width, maxW)] {
			if c.IsAlive() {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	v, err := t.g.View(viewStatus)
	if err != nil {
		return
	}
	v.Clear()
	mode := aurora.Blue("waiting").String()
	if t.running {
		mode = aurora.Cyan("running").String()
	}
	fmt.Fprintln(v, renderProp("Dimension", "%v x %v", t.u.Width(), t.u.Height()))
	fmt.Fprintln(v, renderProp("Generation", "%v", t.u.Generation()))
	fmt.Fprintln(v, renderProp("Live cells", "%v", t.u.CountLiving()))
	fmt.Fprintln(v, renderProp("Interval", "%v", t.interval))
	fmt.Fprintln(v, renderProp("Mode", "%v", mode))
	if t.message != "" {
		fmt.Fprintln(v)
		fmt.Fprintln(v, " "+aurora.Red(t.message).String())
	}
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Green(name).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) report(err error) {
	t.message = ""
	if err != nil {
		t.message = strings.TrimSpace(err.Error())
	}
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.u.Tick()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	if t.running {
		return nil
	}
	t.running = true
	t.stopCh = make(chan struct{})
	go tickLoop(t.stopCh, t.interval, func() {
		t.g.Update(func(_ *gocui.Gui) error {
			if t.running {
				t.u.Tick()
			}
			return nil
		})
	})
	return nil
}

// tickLoop calls schedule every interval until stop is closed. schedule is
// never called once stop is closed, since Start closes it before the gui.
func tickLoop(stop <-chan struct{}, interval time.Duration, schedule func()) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			schedule()
		}
	}
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.stop()
	return nil
}

func (t *ConsoleUI) stop() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stopCh)
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.stop()
	t.u.Clear()
	t.report(nil)
	return nil
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.u.Randomize(t.rng, t.density)
	return nil
}

func (t *ConsoleUI) cmdGlider(_ *gocui.View) error {
	glider, _ := model.LookupPattern("glider")
	t.report(t.u.Place(glider, t.cursor))
	return nil
}

func (t *ConsoleUI) cmdWider(_ *gocui.View) error {
	t.report(t.u.SetWidth(t.u.Width() + resizeStep))
	return nil
}

func (t *ConsoleUI) cmdNarrower(_ *gocui.View) error {
	t.report(t.u.SetWidth(t.u.Width() - resizeStep))
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	t.cursor = model.Coord{Row: cy + oy, Column: cx + ox}
	t.report(t.u.ToggleCell(t.cursor.Row, t.cursor.Column))
	return nil
}
