package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/loop"
	"github.com/zucenko/dotsnake/model"
)

const (
	size    = 20
	marginX = 20
	boardY  = 90
	border  = 4
)

var screenWidth = model.GridSize*size + 2*marginX
var screenHeight = boardY + model.GridSize*size + 110

var keyMap = []struct {
	key  ebiten.Key
	game model.Key
}{
	{ebiten.KeySpace, model.KEY_START},
	{ebiten.KeyUp, model.KEY_UP},
	{ebiten.KeyDown, model.KEY_DOWN},
	{ebiten.KeyLeft, model.KEY_LEFT},
	{ebiten.KeyRight, model.KEY_RIGHT},
}

// Tile is a square cell sprite tinted with its kind's color.
type Tile struct {
	image *ebiten.Image
	color GameColor
}

func (s *Tile) Draw(screen *ebiten.Image, col, row int, scale, alpha float64) {
	inset := (1 - scale*.9) * size / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale*.9, scale*.9)
	op.GeoM.Translate(float64(marginX+col*size)+inset, float64(boardY+row*size)+inset)
	op.ColorM.Scale(s.color.r, s.color.g, s.color.b, alpha)
	screen.DrawImage(s.image, op)
}

type Game struct {
	State        model.Game
	Rand         model.Rand
	Pacer        *loop.Pacer
	Tweens       map[*gween.Tween]*Action
	Faces        *Faces
	Frame        *Nine
	tiles        map[model.CellKind]*Tile
	last         time.Time
	foodScale    float64
	overlayAlpha float64
	pulsing      bool
	logger       *log.Entry
}

func NewGame(cfg *config.Config) (*Game, error) {
	faces, err := LoadFaces()
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(border, COLOR_FRAME)
	if err != nil {
		return nil, err
	}
	frame.SetPosition(marginX-border, boardY-border)
	frame.SetSize(model.GridSize*size+2*border, model.GridSize*size+2*border)

	dot, err := ebiten.NewImage(size, size, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	if err := dot.Fill(color.White); err != nil {
		return nil, err
	}
	tiles := make(map[model.CellKind]*Tile)
	for kind, c := range CELL_COLORS {
		tiles[kind] = &Tile{image: dot, color: c}
	}

	return &Game{
		State:     model.NewGame(),
		Rand:      model.NewRand(),
		Pacer:     loop.NewPacer(cfg.TickInterval),
		Tweens:    make(map[*gween.Tween]*Action),
		Faces:     faces,
		Frame:     frame,
		tiles:     tiles,
		foodScale: 1,
		logger:    log.WithField("client", "ebiten"),
	}, nil
}

func (g *Game) input() {
	if g.State.Phase == model.OVER &&
		(inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		g.apply(g.State.Reset())
		return
	}
	for _, k := range keyMap {
		if inpututil.IsKeyJustPressed(k.key) {
			g.apply(g.State.Press(k.game))
		}
	}
}

// apply swaps in the next state and acquires or releases the tick pacer on
// phase changes.
func (g *Game) apply(next model.Game) {
	prev := g.State.Phase
	g.State = next
	if next.Phase == prev {
		return
	}
	g.logger.Infof("phase %s -> %s", prev.Name(), next.Phase.Name())
	switch next.Phase {
	case model.RUNNING:
		g.Pacer.Start()
		g.pulsing = true
		g.pulseFood()
	case model.OVER:
		g.Pacer.Stop()
		g.pulsing = false
		g.foodScale = 1
		g.fadeIn()
	default:
		g.Pacer.Stop()
		g.pulsing = false
		g.overlayAlpha = 0
		g.foodScale = 1
		g.Tweens = make(map[*gween.Tween]*Action)
	}
}

func (g *Game) tick(dt time.Duration) {
	if !g.Pacer.Advance(dt) {
		return
	}
	next, ev := g.State.Step(g.Rand)
	switch ev {
	case model.ATE:
		g.logger.WithField("score", next.Score).Debug("food eaten")
	case model.HIT_WALL, model.HIT_SELF, model.FILLED:
		g.logger.WithFields(log.Fields{
			"cause": next.Cause.Name(),
			"score": next.Score,
		}).Info("game over")
	}
	g.apply(next)
}

func (g *Game) update(screen *ebiten.Image) error {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	dt := now.Sub(g.last)
	g.last = now

	g.input()
	g.tick(dt)
	g.updateTweens(float32(dt.Seconds()))

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	if e := screen.Fill(COLOR_BACKGROUND.RGBA()); e != nil {
		log.Printf("%v", e)
	}
	text.Draw(screen, "Dot Snake", g.Faces.Title, marginX, 36, COLOR_FRAME.RGBA())
	text.Draw(screen, fmt.Sprintf("Score: %d", g.State.Score), g.Faces.Score, marginX, 70, COLOR_TEXT.RGBA())

	g.Frame.Draw(screen)
	board := g.State.Render()
	for row := range board {
		for col, kind := range board[row] {
			scale := 1.0
			if kind == model.FOOD {
				scale = g.foodScale
			}
			g.tiles[kind].Draw(screen, col, row, scale, 1)
		}
	}

	if g.overlayAlpha > 0 {
		ebitenutil.DrawRect(screen, float64(marginX), float64(boardY),
			float64(model.GridSize*size), float64(model.GridSize*size),
			color.RGBA{0, 0, 0, uint8(g.overlayAlpha * 255)})
	}

	y := boardY + model.GridSize*size + 36
	for i, line := range g.State.Prompt() {
		clr := COLOR_HINT.RGBA()
		if i == 0 && g.State.Phase == model.OVER {
			clr = COLOR_OVER.RGBA()
		} else if i == 0 && g.State.Phase == model.NOT_STARTED {
			clr = COLOR_TEXT.RGBA()
		}
		text.Draw(screen, line, g.Faces.Hint, marginX, y+i*22, clr)
	}
	ebitenutil.DebugPrintAt(screen, g.State.Phase.Name(), screenWidth-90, 4)
}

func main() {
	cfg, err := config.Load(os.Getenv("SNAKE_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.ApplyLogging()
	theGame, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.Run(theGame.update, screenWidth, screenHeight, 1, "Dot Snake"); err != nil {
		log.Fatal(err)
	}
}
