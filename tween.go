package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

// pulseFood breathes the food dot in and out until the game leaves RUNNING.
func (g *Game) pulseFood() {
	grow := gween.New(0.7, 1, 0.4, ease.InOutQuad)
	shrink := gween.New(1, 0.7, 0.4, ease.InOutQuad)
	first := &Action{onChange: func(v float32) { g.foodScale = float64(v) }}
	second := first.next(shrink)
	second.onChange = first.onChange
	second.addOnFinish(func() {
		if g.pulsing {
			g.pulseFood()
		}
	})
	g.Tweens[grow] = first
}

func (g *Game) fadeIn() {
	fade := gween.New(0, 0.7, 0.6, ease.OutCubic)
	g.Tweens[fade] = &Action{onChange: func(v float32) { g.overlayAlpha = float64(v) }}
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
