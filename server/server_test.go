package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/dotsnake/config"
	"github.com/zucenko/dotsnake/model"
)

func newTestServer(t *testing.T, maxSessions int) (*GameServer, *httptest.Server) {
	cfg := config.Default()
	cfg.TickInterval = 5 * time.Millisecond
	cfg.MaxSessions = maxSessions
	gs := NewGameServer(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	go gs.Loop(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/play", gs.HandleHttpCall())
	mux.HandleFunc("/status", gs.HandleStatus())
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return gs, ts
}

func dial(t *testing.T, ts *httptest.Server) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/play"
	return websocket.DefaultDialer.Dial(url, nil)
}

func read(t *testing.T, con *websocket.Conn) model.ServerMessage {
	require.NoError(t, con.SetReadDeadline(time.Now().Add(2*time.Second)))
	var mes model.ServerMessage
	require.NoError(t, con.ReadJSON(&mes))
	return mes
}

func readFrame(t *testing.T, con *websocket.Conn) model.Frame {
	mes := read(t, con)
	require.NotNil(t, mes.Frame)
	return *mes.Frame
}

func status(t *testing.T, ts *httptest.Server) Status {
	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func TestPlayOverWebsocket(t *testing.T) {
	_, ts := newTestServer(t, 4)
	con, _, err := dial(t, ts)
	require.NoError(t, err)
	defer con.Close()

	setup := read(t, con)
	require.NotNil(t, setup.Setup)
	assert.Equal(t, model.GridSize, setup.Setup.Cols)
	assert.Equal(t, model.GridSize, setup.Setup.Rows)
	assert.Equal(t, int64(5), setup.Setup.TickMillis)
	assert.NotEmpty(t, setup.Setup.Session)

	f := readFrame(t, con)
	assert.Equal(t, "NOT_STARTED", f.Phase)
	assert.Equal(t, model.HEAD, f.Cells[10][10])
	assert.Equal(t, model.FOOD, f.Cells[15][15])
	assert.Len(t, f.Cells, model.GridSize)

	require.NoError(t, con.WriteJSON(model.ClientMessage{Key: model.KEY_START}))
	f = readFrame(t, con)
	assert.Equal(t, "RUNNING", f.Phase)

	for f.Phase == "RUNNING" {
		f = readFrame(t, con)
	}
	assert.Equal(t, "OVER", f.Phase)
	assert.Equal(t, "WALL", f.Cause)
	assert.Equal(t, []model.Coord{{X: 10, Y: 0}}, f.Snake)
	assert.Equal(t, 0, f.Score)

	require.NoError(t, con.WriteJSON(model.ClientMessage{Reset: true}))
	f = readFrame(t, con)
	assert.Equal(t, "NOT_STARTED", f.Phase)
	assert.Equal(t, []model.Coord{{X: 10, Y: 10}}, f.Snake)
}

func TestSessionLimitAndStatus(t *testing.T) {
	_, ts := newTestServer(t, 1)
	con, _, err := dial(t, ts)
	require.NoError(t, err)
	read(t, con)

	assert.Equal(t, Status{Sessions: 1, MaxSessions: 1}, status(t, ts))

	_, resp, err := dial(t, ts)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	con.Close()
	assert.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/status")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var st Status
		return json.NewDecoder(resp.Body).Decode(&st) == nil && st.Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOversizedMessageEndsSession(t *testing.T) {
	_, ts := newTestServer(t, 1)
	con, _, err := dial(t, ts)
	require.NoError(t, err)
	defer con.Close()
	read(t, con)

	big := bytes.Repeat([]byte(" "), 2*MAX_CLIENT_MESSAGE)
	require.NoError(t, con.WriteMessage(websocket.TextMessage, big))
	require.NoError(t, con.SetReadDeadline(time.Now().Add(2*time.Second)))
	for err == nil {
		_, _, err = con.ReadMessage()
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)

	assert.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/status")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var st Status
		return json.NewDecoder(resp.Body).Decode(&st) == nil && st.Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAbandonedRequestReleasesSlot(t *testing.T) {
	gs, ts := newTestServer(t, 1)
	gcas := make(chan GameContextAwaiting, 1)
	gs.GameRequests <- GameRequest{GameContextAwaiting: gcas}
	assert.Equal(t, Status{Sessions: 1, MaxSessions: 1}, status(t, ts))

	gs.abandon(gcas)
	assert.Equal(t, Status{Sessions: 0, MaxSessions: 1}, status(t, ts))

	con, _, err := dial(t, ts)
	require.NoError(t, err)
	con.Close()
}

func TestPublishKeepsNewestFrame(t *testing.T) {
	ps := newPlayerSession("test")
	size := cap(ps.MessagesToSend)
	g := model.NewGame()
	for i := 0; i < size+5; i++ {
		g.Score = i * model.FoodScore
		ps.publish(g)
	}
	assert.Equal(t, 5, ps.DebugDropped)
	require.Len(t, ps.MessagesToSend, size)

	first := <-ps.MessagesToSend
	assert.Equal(t, 5*model.FoodScore, first.Frame.Score)
	var last model.ServerMessage
	for len(ps.MessagesToSend) > 0 {
		last = <-ps.MessagesToSend
	}
	assert.Equal(t, (size+4)*model.FoodScore, last.Frame.Score)
}

func TestPlainGetRefused(t *testing.T) {
	_, ts := newTestServer(t, 1)
	resp, err := http.Get(ts.URL + "/play")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResponseCodes(t *testing.T) {
	assert.Equal(t, http.StatusOK, GAME_READY.ToHttp())
	assert.Equal(t, http.StatusServiceUnavailable, GAME_FULL.ToHttp())
	assert.Equal(t, "GAME_FULL", GAME_FULL.Name())
	assert.Equal(t, "PLAY", PS_PLAY.Name())
}
