package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/loop"
	"github.com/zucenko/dotsnake/model"
)

func NewGameServer(cfg *config.Config) *GameServer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &GameServer{
		Config:         cfg,
		Sessions:       make(map[string]*PlayerSession),
		GameRequests:   make(chan GameRequest),
		Ended:          make(chan string),
		StatusRequests: make(chan chan Status),
		Upgrader:       &websocket.Upgrader{},
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - Conection received from %s", r.RemoteAddr)
		if !websocket.IsWebSocketUpgrade(r) {
			w.WriteHeader(GAME_INVALIDE.ToHttp())
			return
		}

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			if gca.ResponseCode != GAME_READY {
				log.Warnf("HandleHttpCall refused: %s", gca.ResponseCode.Name())
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			go s.abandon(gcas)
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		ps := gca.PlayerSession
		defer func() {
			select {
			case s.Ended <- ps.Id:
			case <-time.After(timeout):
				ps.logger.Warn("Ended TIMEOUTED")
			}
		}()

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client
			ps.logger.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ps.attach(con, s.Config)
		ps.Game = loop.NewSession(ps.Id, s.Config.TickInterval, ps.publish)
		ps.MessagesToSend <- ps.MakeGameSetupMessage(s.Config.TickInterval)

		go ps.LoopChannelWrite(ctx)
		go ps.Game.Run(ctx)
		go ps.LoopChannelRead()

		ps.logger.Info("HandleHttpCall and wait for gameover")
		<-ps.GameOver
		ps.logger.WithFields(log.Fields{
			"state": ps.State.Name(),
			"in":    ps.DebugInMessages,
			"pings": ps.DebugPings,
		}).Info("HandleHttpCall session closed")
	}
}

// abandon waits for the answer to a request nobody listens to anymore and
// frees the slot if Loop granted one.
func (s *GameServer) abandon(gcas <-chan GameContextAwaiting) {
	gca := <-gcas
	if gca.ResponseCode != GAME_READY {
		return
	}
	select {
	case s.Ended <- gca.PlayerSession.Id:
		gca.PlayerSession.logger.Info("abandoned session released")
	case <-time.After(time.Second):
		gca.PlayerSession.logger.Warn("Ended TIMEOUTED")
	}
}

func (s *GameServer) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan Status, 1)
		select {
		case s.StatusRequests <- reply:
		case <-time.After(200 * time.Millisecond):
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(<-reply); err != nil {
			log.Warnf("HandleStatus encode %v", err)
		}
	}
}

// Loop owns the session registry until ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Printf("GameServer.Loop ended")
			return
		case gameReq := <-s.GameRequests:
			if len(s.Sessions) >= s.Config.MaxSessions {
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_FULL}
				continue
			}
			ps := newPlayerSession(uuid.New().String())
			s.Sessions[ps.Id] = ps
			ps.logger.Infof("GameServer.Loop registered, %d active", len(s.Sessions))
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode:  GAME_READY,
				PlayerSession: ps,
			}
		case id := <-s.Ended:
			delete(s.Sessions, id)
			log.WithField("session", id).Infof("GameServer.Loop unregistered, %d active", len(s.Sessions))
		case reply := <-s.StatusRequests:
			reply <- Status{Sessions: len(s.Sessions), MaxSessions: s.Config.MaxSessions}
		}
	}
}

func newPlayerSession(id string) *PlayerSession {
	return &PlayerSession{
		State:          PS_NEW,
		Id:             id,
		GameOver:       make(chan struct{}),
		MessagesToSend: make(chan model.ServerMessage, 10),
		logger:         log.WithField("session", id),
	}
}

func (ps *PlayerSession) attach(conn *websocket.Conn, cfg *config.Config) {
	ps.Conn = conn
	ps.State = PS_PLAY
	ps.writeTimeout = cfg.WriteTimeout
	conn.SetReadLimit(MAX_CLIENT_MESSAGE)
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
}

// publish runs on the game goroutine, so it must not block on a slow socket.
// Frames are full snapshots: on a full queue the oldest one gives way.
func (ps *PlayerSession) publish(g model.Game) {
	frame := model.MakeFrame(g)
	mes := model.ServerMessage{Frame: &frame}
	for {
		select {
		case ps.MessagesToSend <- mes:
			return
		default:
		}
		select {
		case <-ps.MessagesToSend:
			ps.DebugDropped++
			ps.logger.Warn("MessagesToSend FULL, dropping oldest")
		default:
		}
	}
}

// LoopChannelRead ends the session when the socket fails or closes.
func (ps *PlayerSession) LoopChannelRead() {
	ps.logger.Printf("LoopChannelRead STARTED")
	defer close(ps.GameOver)
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ps.State = PS_OVER
			} else {
				ps.logger.Printf("LoopChannelRead err reading message from Conn %v", err)
				ps.State = PS_ERR
			}
			break
		}
		cm := model.ClientMessage{}
		if err := json.NewDecoder(r).Decode(&cm); err != nil {
			ps.logger.Warnf("LoopChannelRead cant decode %v", err)
			continue
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++
		ps.dispatch(cm)
	}
	ps.logger.Printf("LoopChannelRead ENDED")
}

func (ps *PlayerSession) dispatch(cm model.ClientMessage) {
	if cm.Reset {
		ps.Game.Reset()
	}
	if cm.Key != "" {
		ps.Game.Press(cm.Key)
	}
}

// LoopChannelWrite is the only writer of data frames on the connection.
func (ps *PlayerSession) LoopChannelWrite(ctx context.Context) {
	ps.logger.Printf("LoopChannelWrite STARTED")
	defer ps.logger.Printf("LoopChannelWrite ENDED")
	for {
		select {
		case <-ctx.Done():
			return
		case mes := <-ps.MessagesToSend:
			if err := ps.write(mes); err != nil {
				ps.logger.Warnf("LoopChannelWrite %v", err)
				// unblocks LoopChannelRead, which ends the session
				ps.Conn.Close()
				return
			}
			ps.DebugOutMessages++
		}
	}
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	if ps.writeTimeout > 0 {
		if err := ps.Conn.SetWriteDeadline(time.Now().Add(ps.writeTimeout)); err != nil {
			return err
		}
	}
	w, err := ps.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
