package model

type ServerMessage struct {
	Setup *Setup `json:"setup,omitempty"`
	Frame *Frame `json:"frame,omitempty"`
}

type Setup struct {
	Cols       int    `json:"cols"`
	Rows       int    `json:"rows"`
	TickMillis int64  `json:"tickMillis"`
	Session    string `json:"session"`
}

type Frame struct {
	Phase   string       `json:"phase"`
	Cause   string       `json:"cause"`
	Score   int          `json:"score"`
	Cells   [][]CellKind `json:"cells"`
	Snake   []Coord      `json:"snake"`
	Food    Coord        `json:"food"`
	HasFood bool         `json:"hasFood"`
	Prompt  []string     `json:"prompt"`
}

type ClientMessage struct {
	Key   Key  `json:"key,omitempty"`
	Reset bool `json:"reset,omitempty"`
}

func MakeFrame(g Game) Frame {
	board := g.Render()
	cells := make([][]CellKind, GridSize)
	for y := range board {
		cells[y] = append([]CellKind(nil), board[y][:]...)
	}
	return Frame{
		Phase:   g.Phase.Name(),
		Cause:   g.Cause.Name(),
		Score:   g.Score,
		Cells:   cells,
		Snake:   append([]Coord(nil), g.Snake...),
		Food:    g.Food,
		HasFood: g.HasFood,
		Prompt:  g.Prompt(),
	}
}
