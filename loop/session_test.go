package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/dotsnake/model"
)

func startSession(t *testing.T, interval time.Duration) (*Session, chan model.Game, func()) {
	frames := make(chan model.Game, 1024)
	s := NewSession("test", interval, func(g model.Game) { frames <- g })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	stop := func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	}
	return s, frames, stop
}

func next(t *testing.T, frames chan model.Game) model.Game {
	select {
	case g := <-frames:
		return g
	case <-time.After(2 * time.Second):
		t.Fatal("no frame published")
	}
	return model.Game{}
}

func quiet(t *testing.T, frames chan model.Game, d time.Duration) {
	select {
	case g := <-frames:
		t.Fatalf("unexpected frame in phase %s after %d ticks", g.Phase.Name(), g.Ticks)
	case <-time.After(d):
	}
}

func TestMetronome(t *testing.T) {
	m := NewMetronome(time.Millisecond)
	assert.Nil(t, m.C())
	assert.False(t, m.Running())

	m.Start()
	c := m.C()
	require.NotNil(t, c)
	m.Start()
	assert.Equal(t, c, m.C(), "second Start keeps the ticker")
	<-c

	m.Stop()
	assert.Nil(t, m.C())
	m.Stop()
}

func TestSessionLifecycle(t *testing.T) {
	s, frames, stop := startSession(t, 2*time.Millisecond)
	defer stop()

	g := next(t, frames)
	assert.Equal(t, model.NOT_STARTED, g.Phase)
	quiet(t, frames, 30*time.Millisecond)

	require.True(t, s.Press(model.KEY_START))
	g = next(t, frames)
	assert.Equal(t, model.RUNNING, g.Phase)
	assert.Equal(t, 0, g.Ticks)

	// straight up from (10,10): ten moves then the wall
	for g.Phase == model.RUNNING {
		g = next(t, frames)
	}
	assert.Equal(t, model.OVER, g.Phase)
	assert.Equal(t, model.WALL, g.Cause)
	assert.Equal(t, 10, g.Ticks)
	assert.Equal(t, []model.Coord{{X: 10, Y: 0}}, g.Snake)
	quiet(t, frames, 30*time.Millisecond)

	require.True(t, s.Reset())
	g = next(t, frames)
	assert.Equal(t, model.NewGame(), g)
	quiet(t, frames, 30*time.Millisecond)
}

func TestSessionSteer(t *testing.T) {
	s, frames, stop := startSession(t, 20*time.Millisecond)
	defer stop()

	next(t, frames)
	s.Press(model.KEY_START)
	s.Press(model.KEY_LEFT)
	s.Press(model.KEY_RIGHT)

	assert.Equal(t, model.RUNNING, next(t, frames).Phase)
	g := next(t, frames)
	assert.Equal(t, model.Left, g.Direction)
	g = next(t, frames)
	assert.Equal(t, model.Left, g.Direction, "right is refused while pending left")

	g = next(t, frames)
	require.Equal(t, 1, g.Ticks)
	assert.Equal(t, model.Coord{X: 9, Y: 10}, g.Head())
}

func TestSessionCancelStopsTicks(t *testing.T) {
	s, frames, stop := startSession(t, 2*time.Millisecond)
	next(t, frames)
	s.Press(model.KEY_START)
	next(t, frames)
	stop()
	for len(frames) > 0 {
		<-frames
	}
	quiet(t, frames, 30*time.Millisecond)
}

// A key queued while a tick is already pending must steer that tick.
func TestSessionKeyBeforePendingTick(t *testing.T) {
	for i := 0; i < 20; i++ {
		gate := make(chan struct{})
		frames := make(chan model.Game, 64)
		s := NewSession("test", 5*time.Millisecond, func(g model.Game) {
			frames <- g
			if g.Phase == model.RUNNING && g.Ticks == 0 && g.Direction == model.Up {
				<-gate
			}
		})
		ctx, cancel := context.WithCancel(context.Background())
		go s.Run(ctx)

		next(t, frames)
		require.True(t, s.Press(model.KEY_START))
		require.Equal(t, model.RUNNING, next(t, frames).Phase)

		// Run is held inside Publish with the ticker already started
		require.True(t, s.Press(model.KEY_LEFT))
		time.Sleep(15 * time.Millisecond)
		close(gate)

		g := next(t, frames)
		for g.Ticks == 0 {
			g = next(t, frames)
		}
		cancel()
		require.Equal(t, 1, g.Ticks)
		assert.Equal(t, model.Coord{X: 9, Y: 10}, g.Head(), "run %d", i)
	}
}
