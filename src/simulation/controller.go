package simulation

import (
	"time"

	"github.com/pkg/errors"

	"conway/src/universe"
)

//ErrInvalidInterval is returned by SetSpeed for non-positive intervals
var ErrInvalidInterval = errors.New("step interval must be positive")

//The controller running status at the concrete moment
type RunningState int

const (
	RunningStateStopped RunningState = iota
	RunningStateRunning
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateStopped:
		return "stopped"
	case RunningStateRunning:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//speed presets
const (
	SlowSpeed   = 500 * time.Millisecond
	NormalSpeed = 75 * time.Millisecond
	FastSpeed   = time.Millisecond
)

//Options represents the controller's configurable options
type Options struct {
	Interval       time.Duration
	MaxSteps       int  //finish after this many iterations, 0 is unlimited
	StopWhenStable bool //finish when a step changes nothing or no cells are left
}

var DefaultOptions = Options{
	Interval: NormalSpeed,
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	Interval      time.Duration
	IterationTime time.Duration
}

//Area is the read-only view of the grid given to viewers
type Area interface {
	Size() int
	Cell(col int, row int) (universe.Cell, error)
	Cells() [][]universe.Cell
	Walk(cb func(col int, row int, c universe.Cell))
}

//Viewer is the render collaborator, Refresh is called after every change of the grid or the status
type Viewer interface {
	Register(c *Controller)
	Refresh()
}

//Controller sequences start/stop/update/reset/speed commands and drives the grid
//it is not safe for concurrent use: all calls, including scheduled steps, must run on one event loop
type Controller struct {
	options   Options
	grid      *universe.Grid
	scheduler Scheduler
	status    Status
	pending   Handle
	views     []Viewer
}

//NewController creates the stopped controller for the grid
func NewController(g *universe.Grid, s Scheduler, o *Options) *Controller {
	if o == nil {
		o = &DefaultOptions
	}
	c := &Controller{
		options:   *o,
		grid:      g,
		scheduler: s,
	}
	if c.options.Interval <= 0 {
		c.options.Interval = NormalSpeed
	}
	c.status.Interval = c.options.Interval
	c.status.LiveCells = g.LiveCells()
	return c
}

//RegisterViewer registers the viewer - the controller will call the viewer when the state is changed
func (c *Controller) RegisterViewer(v Viewer) {
	c.views = append(c.views, v)
	v.Register(c)
}

//Status returns current status represented by Status struct
func (c *Controller) Status() Status {
	return c.status
}

//Options returns current configuration represented by Options struct
func (c *Controller) Options() Options {
	return c.options
}

//Area returns the grid for reading
func (c *Controller) Area() Area {
	return gridView{c.grid}
}

//gridView hides the mutating methods of the grid from viewers
type gridView struct {
	g *universe.Grid
}

func (v gridView) Size() int { return v.g.Size() }

func (v gridView) Cell(col int, row int) (universe.Cell, error) { return v.g.Cell(col, row) }

func (v gridView) Cells() [][]universe.Cell { return v.g.Cells() }

func (v gridView) Walk(cb func(col int, row int, c universe.Cell)) { v.g.Walk(cb) }

//Running reports whether the stepping loop is active
func (c *Controller) Running() bool {
	return c.status.RunningMode == RunningStateRunning
}

//Start schedules the first step after the current interval
func (c *Controller) Start() {
	if c.Running() {
		return
	}
	c.status.RunningMode = RunningStateRunning
	c.schedule()
	c.refreshView()
}

//Stop cancels the pending step, if any
func (c *Controller) Stop() {
	if !c.Running() {
		return
	}
	c.cancel()
	c.status.RunningMode = RunningStateStopped
	c.refreshView()
}

//ToggleStart flips between running and stopped
//a finished simulation is started again, so toggling twice from finished ends stopped
func (c *Controller) ToggleStart() {
	if c.Running() {
		c.Stop()
	} else {
		c.Start()
	}
}

//SetSpeed changes the interval, the pending step keeps the interval it was scheduled with
func (c *Controller) SetSpeed(interval time.Duration) error {
	if interval <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "got %v", interval)
	}
	c.options.Interval = interval
	c.status.Interval = interval
	c.refreshView()
	return nil
}

//Update does one manual step, nothing is scheduled
func (c *Controller) Update() {
	c.step()
	c.refreshView()
}

//Reset stops the simulation, kills all cells and resets the counters
func (c *Controller) Reset() {
	c.cancel()
	c.grid.Reset()
	c.status.RunningMode = RunningStateStopped
	c.status.IterationNum = 0
	c.status.LiveCells = 0
	c.status.IterationTime = 0
	c.refreshView()
}

//ToggleCell inverses the cell state at col, row
func (c *Controller) ToggleCell(col int, row int) error {
	if err := c.grid.Toggle(col, row); err != nil {
		return err
	}
	c.status.LiveCells = c.grid.LiveCells()
	c.refreshView()
	return nil
}

//Settle populates the grid with the registered template
func (c *Controller) Settle(name string) error {
	tmpl, err := universe.LookupTemplate(name)
	if err != nil {
		return err
	}
	c.grid.Settle(tmpl.Coordinates)
	c.status.LiveCells = c.grid.LiveCells()
	c.refreshView()
	return nil
}

//SettleRandom replaces the grid content with random data
func (c *Controller) SettleRandom(seed int64) {
	c.grid.SettleRandom(seed)
	c.status.LiveCells = c.grid.LiveCells()
	c.refreshView()
}

//tick is the deferred step, it reschedules itself while running
func (c *Controller) tick() {
	c.pending = nil
	if !c.Running() {
		return
	}
	live, changed := c.step()
	if (c.options.MaxSteps > 0 && c.status.IterationNum >= c.options.MaxSteps) ||
		(c.options.StopWhenStable && (!changed || live == 0)) {
		c.status.RunningMode = RunningStateFinished
	}
	c.refreshView()
	//a viewer may have stopped the simulation
	if c.Running() && c.pending == nil {
		c.schedule()
	}
}

func (c *Controller) step() (live int, changed bool) {
	start := time.Now()
	live, changed = c.grid.Step()
	c.status.IterationTime = time.Since(start)
	c.status.IterationNum++
	c.status.LiveCells = live
	return
}

func (c *Controller) schedule() {
	c.pending = c.scheduler.After(c.options.Interval, c.tick)
}

func (c *Controller) cancel() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

//refreshView calls Refresh event for all registered views
func (c *Controller) refreshView() {
	for _, v := range c.views {
		v.Refresh()
	}
}
