// Package loop drives a model.Game in real time: it owns the game value,
// applies key presses and ticks from a single goroutine and publishes every
// changed state.
package loop

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/dotsnake/model"
)

const queueSize = 16

type command struct {
	key   model.Key
	reset bool
}

type Session struct {
	Id       string
	Publish  func(model.Game)
	Rand     model.Rand
	commands chan command
	metro    *Metronome
	game     model.Game
	logger   *log.Entry
}

func NewSession(id string, interval time.Duration, publish func(model.Game)) *Session {
	if interval <= 0 {
		interval = model.TickMillis * time.Millisecond
	}
	return &Session{
		Id:       id,
		Publish:  publish,
		Rand:     model.NewRand(),
		commands: make(chan command, queueSize),
		metro:    NewMetronome(interval),
		game:     model.NewGame(),
		logger:   log.WithField("session", id),
	}
}

// Press queues a key press. It never blocks; a full queue drops the key.
func (s *Session) Press(k model.Key) bool {
	return s.enqueue(command{key: k})
}

// Reset queues a reset request.
func (s *Session) Reset() bool {
	return s.enqueue(command{reset: true})
}

func (s *Session) enqueue(c command) bool {
	select {
	case s.commands <- c:
		return true
	default:
		s.logger.Warn("Session command queue FULL, dropping")
		return false
	}
}

// Run processes commands and ticks until ctx is done. The ticker only exists
// while the game is RUNNING.
func (s *Session) Run(ctx context.Context) {
	s.logger.Info("Session.Run start")
	defer s.metro.Stop()
	s.publish()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session.Run ended")
			return
		case c := <-s.commands:
			s.handle(c)
		case <-s.metro.C():
			// keys queued before this tick steer it
			s.drain()
			if s.game.Phase == model.RUNNING {
				s.step()
			}
		}
	}
}

func (s *Session) handle(c command) {
	if c.reset {
		s.apply(s.game.Reset())
	} else {
		s.apply(s.game.Press(c.key))
	}
}

func (s *Session) drain() {
	for {
		select {
		case c := <-s.commands:
			s.handle(c)
		default:
			return
		}
	}
}

func (s *Session) step() {
	next, ev := s.game.Step(s.Rand)
	switch ev {
	case model.ATE:
		s.logger.WithField("score", next.Score).Debug("food eaten")
	case model.HIT_WALL, model.HIT_SELF, model.FILLED:
		s.logger.WithFields(log.Fields{
			"cause": next.Cause.Name(),
			"score": next.Score,
			"ticks": next.Ticks,
		}).Info("game over")
	}
	s.apply(next)
}

func (s *Session) apply(next model.Game) {
	prev := s.game.Phase
	s.game = next
	if next.Phase != prev {
		s.logger.Infof("phase %s -> %s", prev.Name(), next.Phase.Name())
		if next.Phase == model.RUNNING {
			s.metro.Start()
		} else {
			s.metro.Stop()
		}
	}
	s.publish()
}

func (s *Session) publish() {
	if s.Publish != nil {
		s.Publish(s.game)
	}
}
