package view

import (
	"fmt"
	"io"
	"time"

	"conway/src/simulation"
)

//ConsoleOut prints the progress of the headless simulation
type ConsoleOut struct {
	c         *simulation.Controller
	w         io.Writer
	startTime time.Time
	onFinish  func()
	finished  bool
}

//NewConsoleOut creates the printer, onFinish is called once when the simulation finishes
func NewConsoleOut(w io.Writer, onFinish func()) *ConsoleOut {
	return &ConsoleOut{w: w, onFinish: onFinish}
}

func (c *ConsoleOut) Refresh() {
	st := c.c.Status()
	switch st.RunningMode {
	case simulation.RunningStateFinished:
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		_, _ = fmt.Fprintf(c.w, "  Last iteration: %v\n", st.IterationNum)
		_, _ = fmt.Fprintf(c.w, "  Live cells: %v\n", st.LiveCells)
		_, _ = fmt.Fprintf(c.w, "  Total time: %v\n", totalTime)
		if c.onFinish != nil {
			c.onFinish()
		}
	case simulation.RunningStateRunning:
		c.finished = false
		if st.IterationNum > 0 && st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(ctrl *simulation.Controller) {
	c.c = ctrl
	o := ctrl.Options()
	size := ctrl.Area().Size()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", size, size)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	if o.MaxSteps > 0 {
		_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	}
	if o.StopWhenStable {
		_, _ = fmt.Fprintln(c.w, "  Stops when stable")
	}
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}
