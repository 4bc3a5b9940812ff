package simulation

import (
	"time"
)

//Handle is the pending deferred invocation returned by Scheduler.After
type Handle interface {
	//Cancel guarantees the invocation will not run if it has not run yet
	//cancelling a fired or already cancelled handle is a no-op
	Cancel()
}

//Scheduler defers the callback to the host event loop
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

//TimerScheduler waits on a timer and posts the callback into the event loop
//post must run the function on the loop goroutine, Cancel must be called from the same goroutine
type TimerScheduler struct {
	post func(fn func())
}

func NewTimerScheduler(post func(fn func())) *TimerScheduler {
	return &TimerScheduler{post: post}
}

type timerHandle struct {
	timer     *time.Timer
	cancelled bool
}

func (h *timerHandle) Cancel() {
	h.cancelled = true
	h.timer.Stop()
}

func (s *TimerScheduler) After(d time.Duration, fn func()) Handle {
	h := &timerHandle{}
	h.timer = time.AfterFunc(d, func() {
		s.post(func() {
			//the flag is only touched on the loop goroutine
			if !h.cancelled {
				h.cancelled = true
				fn()
			}
		})
	})
	return h
}
