package server

import (
	"time"

	"github.com/zucenko/dotsnake/model"
)

func (ps *PlayerSession) MakeGameSetupMessage(tick time.Duration) model.ServerMessage {
	return model.ServerMessage{
		Setup: &model.Setup{
			Cols:       model.GridSize,
			Rows:       model.GridSize,
			TickMillis: tick.Milliseconds(),
			Session:    ps.Id,
		},
	}
}
