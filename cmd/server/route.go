package main

import (
	"io/fs"
	"net/http"

	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_STATUS = "/status"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_STATUS, s.GameServer.HandleStatus())
	page, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("GET", "/...", http.FileServer(http.FS(page)))
}
