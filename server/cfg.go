package server

import (
	"fmt"
	"net/http"
)

const HTTP_SUCCESS = http.StatusOK
const HTTP_BAD_REQUEST = http.StatusBadRequest
const HTTP_TIMEOUT = http.StatusRequestTimeout
const HTTP_SERVER_ERR = http.StatusServiceUnavailable

// MAX_CLIENT_MESSAGE caps one {key, reset} message from the browser.
const MAX_CLIENT_MESSAGE = 512

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_FULL
	GAME_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return HTTP_SUCCESS
	case GAME_FULL:
		return HTTP_SERVER_ERR
	case GAME_INVALIDE:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (h ResponseCode) Name() string {
	switch h {
	case GAME_READY:
		return "GAME_READY"
	case GAME_FULL:
		return "GAME_FULL"
	case GAME_INVALIDE:
		return "GAME_INVALIDE"
	default:
		return fmt.Sprintf("n/a:%d", h)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type GameContextAwaiting struct {
	ResponseCode  ResponseCode
	PlayerSession *PlayerSession
}

type GameRequest struct {
	GameContextAwaiting chan GameContextAwaiting
}

type Status struct {
	Sessions    int `json:"sessions"`
	MaxSessions int `json:"maxSessions"`
}
