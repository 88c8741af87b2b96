package stats

import (
	"fmt"
	"time"
)

// Stats measures frame time between Begin and End and the frame rate over
// one-second windows.
type Stats struct {
	now func() time.Time

	begin       time.Time
	windowStart time.Time
	frames      int

	frameTime time.Duration
	fps       float64

	// OnUpdate, when set, is called every time the frame rate is refreshed.
	OnUpdate func(s *Stats)
}

// New returns Stats driven by the wall clock.
func New() *Stats {
	return NewWithClock(time.Now)
}

// NewWithClock returns Stats driven by now.
func NewWithClock(now func() time.Time) *Stats {
	return &Stats{now: now}
}

func (s *Stats) Begin() {
	s.begin = s.now()
	if s.windowStart.IsZero() {
		s.windowStart = s.begin
	}
}

func (s *Stats) End() {
	if s.begin.IsZero() {
		return
	}
	end := s.now()
	s.frameTime = end.Sub(s.begin)
	s.frames++

	if elapsed := end.Sub(s.windowStart); elapsed >= time.Second {
		s.fps = float64(s.frames) / elapsed.Seconds()
		s.frames = 0
		s.windowStart = end
		if s.OnUpdate != nil {
			s.OnUpdate(s)
		}
	}
}

// FrameTime is the duration of the last Begin/End pair.
func (s *Stats) FrameTime() time.Duration { return s.frameTime }

// FPS is the frame rate over the last completed one-second window.
func (s *Stats) FPS() float64 { return s.fps }

func (s *Stats) String() string {
	return fmt.Sprintf("%.0f FPS (%.1f ms)", s.fps, float64(s.frameTime.Microseconds())/1000)
}
