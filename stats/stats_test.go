package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFrameTime(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	s := NewWithClock(clk.now)

	s.Begin()
	clk.advance(16 * time.Millisecond)
	s.End()

	assert.Equal(t, 16*time.Millisecond, s.FrameTime())
	assert.Zero(t, s.FPS(), "no window completed yet")
}

func TestFPSWindow(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	s := NewWithClock(clk.now)

	var got []float64
	s.OnUpdate = func(s *Stats) { got = append(got, s.FPS()) }

	for i := 0; i < 50; i++ {
		s.Begin()
		clk.advance(10 * time.Millisecond)
		s.End()
		clk.advance(10 * time.Millisecond)
	}
	// the fiftieth frame ends 990ms into the window
	assert.Empty(t, got)

	s.Begin()
	clk.advance(10 * time.Millisecond)
	s.End()

	// 51 frames over 1010ms
	require.Len(t, got, 1)
	assert.InDelta(t, 51/1.01, got[0], 1e-9)
	assert.Equal(t, "50 FPS (10.0 ms)", s.String())
}

func TestEndWithoutBegin(t *testing.T) {
	s := NewWithClock((&fakeClock{t: time.Unix(1, 0)}).now)
	s.End()
	assert.Zero(t, s.FrameTime())
}

func TestNew(t *testing.T) {
	s := New()
	s.Begin()
	s.End()
	assert.GreaterOrEqual(t, s.FrameTime(), time.Duration(0))
}
