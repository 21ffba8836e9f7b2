package model

import (
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
}

func NewGame() Game {
	return Game{
		Snake:     []Coord{{X: 10, Y: 10}},
		Food:      Coord{X: 15, Y: 15},
		HasFood:   true,
		Direction: Up,
		Heading:   Up,
		Phase:     NOT_STARTED,
		Cause:     NONE,
	}
}

// Press applies one key press. At most one field group changes per call.
func (g Game) Press(k Key) Game {
	if g.Phase == NOT_STARTED && k == KEY_START {
		g.Phase = RUNNING
		return g
	}
	if g.Phase != RUNNING {
		return g
	}
	d, found := keyDirections[k]
	if !found {
		return g
	}
	// a reversal against either the applied heading or the pending
	// direction would fold the head into the neck
	if d.Opposite(g.Heading) || d.Opposite(g.Direction) {
		return g
	}
	g.Direction = d
	return g
}

// Step advances a running game by one tick.
func (g Game) Step(r Rand) (Game, Event) {
	if g.Phase != RUNNING {
		return g, IDLE
	}
	head := g.Head().Add(g.Direction)
	if !head.Valid() {
		g.Phase = OVER
		g.Cause = WALL
		return g, HIT_WALL
	}
	// the tail still counts: it leaves its cell only after this check
	if slices.Contains(g.Snake, head) {
		g.Phase = OVER
		g.Cause = SELF
		return g, HIT_SELF
	}

	snake := make([]Coord, 0, len(g.Snake)+1)
	snake = append(snake, head)
	snake = append(snake, g.Snake...)
	g.Heading = g.Direction
	g.Ticks++

	if g.HasFood && head == g.Food {
		g.Snake = snake
		g.Score += FoodScore
		g.Eaten++
		food, ok := PlaceFood(snake, r)
		if !ok {
			g.HasFood = false
			g.Phase = OVER
			g.Cause = BOARD_FULL
			return g, FILLED
		}
		g.Food = food
		return g, ATE
	}

	g.Snake = snake[:len(snake)-1]
	return g, MOVED
}

// PlaceFood picks a uniformly random cell not covered by snake. It tries a
// bounded number of blind draws, then draws from the explicit free-cell set.
// ok is false when the snake covers the whole board.
func PlaceFood(snake []Coord, r Rand) (food Coord, ok bool) {
	if len(snake) >= GridSize*GridSize {
		return Coord{}, false
	}
	for i := 0; i < foodAttempts; i++ {
		c := Coord{X: r.Intn(GridSize), Y: r.Intn(GridSize)}
		if !slices.Contains(snake, c) {
			return c, true
		}
	}
	free := FreeCells(snake)
	if len(free) == 0 {
		return Coord{}, false
	}
	return free[r.Intn(len(free))], true
}

func FreeCells(snake []Coord) []Coord {
	var taken [GridSize][GridSize]bool
	for _, s := range snake {
		if s.Valid() {
			taken[s.Y][s.X] = true
		}
	}
	free := make([]Coord, 0, GridSize*GridSize-len(snake))
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if !taken[y][x] {
				free = append(free, Coord{X: x, Y: y})
			}
		}
	}
	return free
}

// Reset returns a finished game to its initial state.
func (g Game) Reset() Game {
	if g.Phase != OVER {
		return g
	}
	return NewGame()
}

func (g Game) Render() Board {
	var b Board
	for i, s := range g.Snake {
		if !s.Valid() {
			continue
		}
		if i == 0 {
			b[s.Y][s.X] = HEAD
		} else if b[s.Y][s.X] == EMPTY {
			b[s.Y][s.X] = BODY
		}
	}
	if g.HasFood && g.Food.Valid() {
		b[g.Food.Y][g.Food.X] = FOOD
	}
	return b
}

func (g Game) Prompt() []string {
	switch g.Phase {
	case NOT_STARTED:
		return []string{"Press SPACE to start!", "Steer with the arrow keys"}
	case RUNNING:
		return []string{"Arrows: move | eat the red dots!"}
	default:
		if g.Cause == BOARD_FULL {
			return []string{"Board full, you win!", "Press R to play again"}
		}
		return []string{"Game over!", "Press R to play again"}
	}
}
