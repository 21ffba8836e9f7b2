package main

import (
	"context"
	"embed"
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/server"
)

//go:embed static
var static embed.FS

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := config.Load(os.Getenv("SNAKE_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.ApplyLogging()

	Server := Server{
		GameServer: server.NewGameServer(cfg),
	}
	go Server.GameServer.Loop(context.Background())
	Server.routes()
	log.WithFields(log.Fields{
		"listen": cfg.Listen,
		"tick":   cfg.TickInterval,
	}).Info("dotsnake serving")
	log.Fatalln(http.ListenAndServe(cfg.Listen, Server.router))
}
