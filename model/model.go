package model

import "fmt"

const (
	GridSize     = 20
	FoodScore    = 10
	TickMillis   = 150
	foodAttempts = 64
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) Add(d Direction) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Valid reports whether c lies on the board.
func (c Coord) Valid() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// Direction is a unit vector along one axis.
type Direction Coord

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

func (d Direction) Opposite(o Direction) bool {
	return d.X == -o.X && d.Y == -o.Y
}

func (d Direction) Name() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("n/a:%d,%d", d.X, d.Y)
	}
}

type Phase int

const (
	NOT_STARTED Phase = iota
	RUNNING
	OVER
)

func (p Phase) Name() string {
	switch p {
	case NOT_STARTED:
		return "NOT_STARTED"
	case RUNNING:
		return "RUNNING"
	case OVER:
		return "OVER"
	default:
		return fmt.Sprintf("n/a:%d", p)
	}
}

// Cause tells why a game reached OVER.
type Cause int

const (
	NONE Cause = iota
	WALL
	SELF
	BOARD_FULL
)

func (c Cause) Name() string {
	switch c {
	case NONE:
		return "NONE"
	case WALL:
		return "WALL"
	case SELF:
		return "SELF"
	case BOARD_FULL:
		return "BOARD_FULL"
	default:
		return fmt.Sprintf("n/a:%d", c)
	}
}

// Key carries the KeyboardEvent.key value of a browser key press.
type Key string

const (
	KEY_START Key = " "
	KEY_UP    Key = "ArrowUp"
	KEY_DOWN  Key = "ArrowDown"
	KEY_LEFT  Key = "ArrowLeft"
	KEY_RIGHT Key = "ArrowRight"
)

var keyDirections = map[Key]Direction{
	KEY_UP:    Up,
	KEY_DOWN:  Down,
	KEY_LEFT:  Left,
	KEY_RIGHT: Right,
}

// Game is the whole state of one snake game. Transitions return a new value
// and never touch the receiver's slices.
type Game struct {
	Snake     []Coord
	Food      Coord
	HasFood   bool
	Direction Direction

	// Heading is the direction applied by the last tick.
	Heading Direction
	Score   int
	Eaten   int
	Ticks   int
	Phase   Phase
	Cause   Cause
}

func (g Game) Head() Coord {
	return g.Snake[0]
}

func (g Game) Tail() Coord {
	return g.Snake[len(g.Snake)-1]
}

type Event int

const (
	IDLE Event = iota
	MOVED
	ATE
	HIT_WALL
	HIT_SELF
	FILLED
)

func (e Event) Name() string {
	switch e {
	case IDLE:
		return "IDLE"
	case MOVED:
		return "MOVED"
	case ATE:
		return "ATE"
	case HIT_WALL:
		return "HIT_WALL"
	case HIT_SELF:
		return "HIT_SELF"
	case FILLED:
		return "FILLED"
	default:
		return fmt.Sprintf("n/a:%d", e)
	}
}

type CellKind int

const (
	EMPTY CellKind = iota
	BODY
	HEAD
	FOOD
)

func (k CellKind) Name() string {
	switch k {
	case EMPTY:
		return "EMPTY"
	case BODY:
		return "BODY"
	case HEAD:
		return "HEAD"
	case FOOD:
		return "FOOD"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

// Board is indexed [y][x].
type Board [GridSize][GridSize]CellKind

// Rand is the source used for food placement.
type Rand interface {
	Intn(n int) int
}
