package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/dotsnake/model"
)

const (
	originX = 2
	originY = 3
)

var cellStyles = map[model.CellKind]tcell.Style{
	model.EMPTY: tcell.StyleDefault.Background(tcell.NewRGBColor(17, 24, 39)),
	model.BODY:  tcell.StyleDefault.Background(tcell.NewRGBColor(22, 163, 74)),
	model.HEAD:  tcell.StyleDefault.Background(tcell.NewRGBColor(74, 222, 128)),
	model.FOOD:  tcell.StyleDefault.Background(tcell.NewRGBColor(239, 68, 68)),
}

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(74, 222, 128)).Bold(true)
	textStyle  = tcell.StyleDefault
	hintStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	overStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(248, 113, 113)).Bold(true)
)

type cellSetter interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

type action struct {
	key   model.Key
	reset bool
	quit  bool
}

var arrowKeys = map[tcell.Key]model.Key{
	tcell.KeyUp:    model.KEY_UP,
	tcell.KeyDown:  model.KEY_DOWN,
	tcell.KeyLeft:  model.KEY_LEFT,
	tcell.KeyRight: model.KEY_RIGHT,
}

func translate(ev *tcell.EventKey, phase model.Phase) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{quit: true}
	case tcell.KeyEnter:
		return action{reset: phase == model.OVER}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return action{key: model.KEY_START}
		case 'r', 'R':
			return action{reset: phase == model.OVER}
		case 'q':
			return action{quit: true}
		}
		return action{}
	}
	return action{key: arrowKeys[ev.Key()]}
}

// draw paints every board cell two columns wide so cells come out square.
func draw(s cellSetter, g model.Game) {
	if len(g.Snake) == 0 {
		return
	}
	text(s, originX, 0, "Dot Snake", titleStyle)
	text(s, originX, 1, fmt.Sprintf("Score: %d", g.Score), textStyle)

	board := g.Render()
	for y := range board {
		for x, kind := range board[y] {
			st := cellStyles[kind]
			s.SetContent(originX+2*x, originY+y, ' ', nil, st)
			s.SetContent(originX+2*x+1, originY+y, ' ', nil, st)
		}
	}

	for i, line := range g.Prompt() {
		st := hintStyle
		if i == 0 && g.Phase == model.OVER {
			st = overStyle
		} else if i == 0 && g.Phase == model.NOT_STARTED {
			st = textStyle
		}
		text(s, originX, originY+model.GridSize+1+i, line, st)
	}
}

func text(s cellSetter, x, y int, str string, st tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, st)
	}
}
