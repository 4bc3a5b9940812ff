package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"conway/src/simulation"
	"conway/src/universe"
)

//cellWidth is the number of terminal columns one cell occupies
const cellWidth = 2

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	c          *simulation.Controller
	g          *gocui.Gui
	k          []keyBindings
	seed       int64
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateStopped:  aurora.Colorize("stopped", aurora.BlueFg).String(),
		simulation.RunningStateRunning:  aurora.Colorize("running", aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the interactive terminal UI
//gocui's main loop is the event loop which runs every controller call
func NewViewTerminal(seed int64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		seed:       seed,
		liveFiller: aurora.Green(strings.Repeat("█", cellWidth)).BgBrightGreen().String(),
		deadFiller: strings.Repeat("░", cellWidth),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Start/Stop", t.cmdToggleStart, ""},
		{'n', "N", "Next step", t.cmdUpdate, ""},
		{'c', "C", "Reset", t.cmdReset, ""},
		{'1', "1", "Slow", t.cmdSpeed(simulation.SlowSpeed), ""},
		{'2', "2", "Normal", t.cmdSpeed(simulation.NormalSpeed), ""},
		{'3', "3", "Fast", t.cmdSpeed(simulation.FastSpeed), ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//guiUpdater queues functions into gocui's main loop, *gocui.Gui implements it
type guiUpdater interface {
	Update(f func(*gocui.Gui) error)
}

//Scheduler returns the scheduler which runs deferred steps on gocui's main loop
func (t *ConsoleUI) Scheduler() simulation.Scheduler {
	return newGuiScheduler(t.g)
}

func newGuiScheduler(u guiUpdater) *simulation.TimerScheduler {
	return simulation.NewTimerScheduler(func(fn func()) {
		u.Update(func(*gocui.Gui) error {
			fn()
			return nil
		})
	})
}

func (t *ConsoleUI) Register(c *simulation.Controller) {
	t.c = c
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		t.g.Close()
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return nil
		}
		//the entire field is redrawing at once
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, renderArea(t.c.Area(), maxW, maxH, t.liveFiller, t.deadFiller,
			aurora.Red("The field size is larger than the viewing area").BgBlack().String()))
		return nil
	})
}

//renderArea draws the visible part of the area, one line per row
//the last visible line is replaced by cropMsg when the area does not fit
func renderArea(a simulation.Area, maxW int, maxH int, live string, dead string, cropMsg string) string {
	size := a.Size()
	crop := size*cellWidth > maxW || size > maxH

	var b bytes.Buffer
	for row, l := range a.Cells() {
		//discard the data outside the view area
		if row >= maxH {
			break
		}
		//line feed char
		if row != 0 {
			b.WriteByte(10)
		}
		if crop && row == maxH-1 {
			b.WriteString(cropMsg)
			break
		}
		for col, c := range l {
			if (col+1)*cellWidth > maxW {
				break
			}
			if c == universe.Alive {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

//cellAt translates the cursor position in the field view to the cell coordinates
func cellAt(cx int, cy int, size int) (col int, row int, ok bool) {
	col, row = cx/cellWidth, cy
	if cx < 0 || cy < 0 || col >= size || row >= size {
		return 0, 0, false
	}
	return col, row, true
}

func (t *ConsoleUI) renderStatus() {
	t.g.Update(func(g *gocui.Gui) error {
		s := t.c.Status()
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		size := t.c.Area().Size()
		o := t.c.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", size, size))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", o.Interval))
			if o.MaxSteps > 0 {
				_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", o.MaxSteps))
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdToggleStart(_ *gocui.View) error {
	t.c.ToggleStart()
	return nil
}

//cmdUpdate does the manual step, ignored while running
func (t *ConsoleUI) cmdUpdate(_ *gocui.View) error {
	if !t.c.Running() {
		t.c.Update()
	}
	return nil
}

func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	t.c.Reset()
	return nil
}

func (t *ConsoleUI) cmdSpeed(d time.Duration) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		return t.c.SetSpeed(d)
	}
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	if !t.c.Running() {
		t.seed++
		t.c.SettleRandom(t.seed)
	}
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	col, row, ok := cellAt(cx+ox, cy+oy, t.c.Area().Size())
	if !ok {
		return nil
	}
	//coordinates are validated, an error here is a bug and stops the UI
	return t.c.ToggleCell(col, row)
}
