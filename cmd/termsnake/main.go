package main

import (
	"context"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/loop"
	"github.com/zucenko/dotsnake/model"
)

func main() {
	cfg, err := config.Load(os.Getenv("SNAKE_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// the screen owns stdout; keep logs out of it unless redirected
	if path := os.Getenv("SNAKE_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
		cfg.ApplyLogging()
	} else {
		log.SetLevel(log.PanicLevel)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer s.Fini()
	s.HideCursor()

	frames := make(chan model.Game, 1)
	session := loop.NewSession(uuid.New().String(), cfg.TickInterval, func(g model.Game) {
		// keep only the newest frame
		select {
		case <-frames:
		default:
		}
		frames <- g
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go session.Run(ctx)

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var current model.Game
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
				draw(s, current)
				s.Show()
			case *tcell.EventKey:
				a := translate(e, current.Phase)
				switch {
				case a.quit:
					return
				case a.reset:
					session.Reset()
				case a.key != "":
					session.Press(a.key)
				}
			}
		case g := <-frames:
			current = g
			s.Clear()
			draw(s, current)
			s.Show()
		}
	}
}
