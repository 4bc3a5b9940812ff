package simulation

import (
	"context"
)

//Loop is the single goroutine event loop used when there is no UI toolkit to host the controller
//every controller call must go through Post once Run has started
type Loop struct {
	controlCh chan func()
	done      chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		controlCh: make(chan func(), 16),
		done:      make(chan struct{}),
	}
}

//Post queues fn for execution on the loop goroutine
//it blocks while the queue is full, posts after the loop has finished are dropped
func (l *Loop) Post(fn func()) {
	select {
	case l.controlCh <- fn:
	case <-l.done:
	}
}

//Scheduler returns the Scheduler bound to this loop
func (l *Loop) Scheduler() *TimerScheduler {
	return NewTimerScheduler(l.Post)
}

//Run waits for commands and executes them until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case cmd := <-l.controlCh:
			cmd()
		case <-ctx.Done():
			return nil
		}
	}
}
