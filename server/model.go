package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/loop"
	"github.com/zucenko/dotsnake/model"
)

type GameServer struct {
	Config         *config.Config
	Sessions       map[string]*PlayerSession
	GameRequests   chan GameRequest
	Ended          chan string
	StatusRequests chan chan Status
	Upgrader       *websocket.Upgrader
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State    PlayerSessionState
	Id       string
	Conn     *websocket.Conn
	Game     *loop.Session
	GameOver chan struct{}

	MessagesToSend chan model.ServerMessage

	writeTimeout time.Duration
	logger       *log.Entry

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
