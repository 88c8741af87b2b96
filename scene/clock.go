package scene

import (
	"context"
	"sync"
	"time"
)

// DefaultStageInterval is the wall-clock time between stage transitions.
const DefaultStageInterval = 12 * time.Second

// Clock paces stage transitions. Each value received from C is one firing;
// the receiver applies exactly one transition per firing.
type Clock interface {
	C() <-chan struct{}
	Stop()
}

// Ticker fires on a fixed wall-clock interval, independent of frame rate.
type Ticker struct {
	c      chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTicker starts a goroutine that fires every interval until ctx is done or
// Stop is called. Firings that are not consumed before the next one are
// coalesced so a stalled render loop never sees a burst of transitions.
func NewTicker(ctx context.Context, interval time.Duration) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		c:      make(chan struct{}, 1),
		cancel: cancel,
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				select {
				case t.c <- struct{}{}:
				default:
				}
			}
		}
	}()

	return t
}

func (t *Ticker) C() <-chan struct{} { return t.c }

// Stop halts the ticker and waits for its goroutine to exit.
func (t *Ticker) Stop() {
	t.cancel()
	t.wg.Wait()
}

// FrameTicker fires once every N frames. It is driven by the render loop and
// gives recordings the same stage pacing regardless of how long a frame takes
// to render.
type FrameTicker struct {
	every  int
	frames int
	c      chan struct{}
}

// NewFrameTicker fires after every `every` calls to Advance. A value below 1
// is treated as 1.
func NewFrameTicker(every int) *FrameTicker {
	if every < 1 {
		every = 1
	}
	return &FrameTicker{every: every, c: make(chan struct{}, 1)}
}

// FramesFor converts a wall-clock interval into a frame count at fps.
func FramesFor(interval time.Duration, fps int) int {
	return int(interval.Seconds() * float64(fps))
}

// Advance counts one rendered frame.
func (t *FrameTicker) Advance() {
	t.frames++
	if t.frames < t.every {
		return
	}
	t.frames = 0
	select {
	case t.c <- struct{}{}:
	default:
	}
}

func (t *FrameTicker) C() <-chan struct{} { return t.c }

func (t *FrameTicker) Stop() {}

// Drain applies every pending firing of c to s and returns how many were applied.
func Drain(c Clock, s *State) int {
	if c == nil {
		return 0
	}
	n := 0
	for {
		select {
		case <-c.C():
			s.AdvanceStage()
			n++
		default:
			return n
		}
	}
}
