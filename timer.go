package wifinina

import "time"

// Timer is a non-blocking count-down timer, modeled on the
// embedded-hal CountDown trait the original firmware driver was written
// against: Start arms the timer, and Wait is polled repeatedly (never
// blocking) until the duration has elapsed.
//
// Start resets and (re)arms the timer regardless of whether a previous
// duration is still running.
type Timer interface {
	Start(d time.Duration)

	// Wait reports whether the armed duration has elapsed. It returns
	// ErrWouldBlock while time remains, and nil once the duration has
	// passed. It must never block.
	Wait() error
}

// WallClockTimer is a Timer backed by the standard library's monotonic
// clock. It is the realization handed to Driver by callers that aren't
// running under a hardware SysTick abstraction.
type WallClockTimer struct {
	deadline time.Time
}

// NewWallClockTimer returns a Timer backed by time.Now.
func NewWallClockTimer() *WallClockTimer {
	return &WallClockTimer{}
}

func (t *WallClockTimer) Start(d time.Duration) {
	t.deadline = time.Now().Add(d)
}

func (t *WallClockTimer) Wait() error {
	if time.Now().Before(t.deadline) {
		return ErrWouldBlock
	}
	return nil
}

// forEach arms timer for d and calls body repeatedly until body reports
// done, returns an error, or the timer expires first. It is the Go
// realization of the original driver's timeout_iter: a busy-poll loop
// bounded by a count-down timer rather than a blocking sleep.
func forEach(timer Timer, d time.Duration, body func() (done bool, err error)) error {
	timer.Start(d)
	for {
		done, err := body()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if waitErr := timer.Wait(); waitErr == nil {
			return ErrTimeout
		}
	}
}
