package simulation

import (
	"context"
	"testing"
	"time"

	"conway/src/universe"
)

func TestLoopRunsPostedCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop()
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	done := make(chan int, 1)
	l.Post(func() { done <- 42 })
	if v := <-done; v != 42 {
		t.Fatalf("got %d", v)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
	//posting to a finished loop does not block
	l.Post(func() {})
}

func TestTimerSchedulerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop()
	go func() { _ = l.Run(ctx) }()

	fired := make(chan string, 2)
	s := l.Scheduler()
	l.Post(func() {
		h := s.After(time.Millisecond, func() { fired <- "cancelled" })
		h.Cancel()
		h.Cancel()
		s.After(5*time.Millisecond, func() { fired <- "kept" })
	})
	if v := <-fired; v != "kept" {
		t.Fatalf("got %q", v)
	}
}

func TestControllerOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop()
	go func() { _ = l.Run(ctx) }()

	g := universe.NewGrid(5)
	g.Settle([][]int{{2, 1}, {2, 2}, {2, 3}})
	c := NewController(g, l.Scheduler(), &Options{Interval: FastSpeed, MaxSteps: 3})
	finished := make(chan Status, 1)
	c.RegisterViewer(&countingViewer{onUpdate: func(c *Controller) {
		if c.Status().RunningMode == RunningStateFinished {
			finished <- c.Status()
		}
	}})
	l.Post(c.Start)

	select {
	case st := <-finished:
		if st.IterationNum != 3 {
			t.Fatalf("iteration=%d", st.IterationNum)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not finish")
	}
}
