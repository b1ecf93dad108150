package handlers

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/session"
)

/*
 * GameHandler serves games over websocket connections. Each connection
 * owns exactly one session, which is dropped when the connection closes.
 */
type GameHandler struct {
	log      logrus.FieldLogger
	ws       *config.WebSocket
	defaults session.Params

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	ws *config.WebSocket,
	defaults session.Params,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		ws:       ws,
		defaults: defaults,
		rnd:      rnd,
	}
}

// newRand derives a source for one session; *rand.Rand is not safe for
// concurrent use.
func (g *GameHandler) newRand() *rand.Rand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return rand.New(rand.NewPCG(g.rnd.Uint64(), g.rnd.Uint64()))
}

func (g *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, g.log, "ok")
}

func (g *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	params, err := ParsePlayParams(r.URL.Query(), g.defaults)
	if err != nil {
		SendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	log := g.log.WithField("remote_addr", r.RemoteAddr)
	s, err := session.New(params, g.newRand(), log)
	if err != nil {
		SendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		log.WithError(err).Warn("unable to upgrade")
		return
	}
	defer conn.Close()

	log.Debug("established ws connection")

	err = runGameLoop(conn, s, log)
	if err == nil || websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		log.Debug("ws connection closed")
		return
	}
	log.WithError(err).Warn("error in ws loop")
}

// runGameLoop sends a snapshot, then answers every text message with
// either the new snapshot or {"error": ...}. A message may hold several
// newline separated commands; the ones after a failed command or after
// the game ends are ignored.
func runGameLoop(conn *websocket.Conn, s *session.Session, log logrus.FieldLogger) error {
	if err := conn.WriteJSON(s.Snapshot()); err != nil {
		return fmt.Errorf("unable to write json: %w", err)
	}
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		text := strings.TrimSpace(string(buf))
		log.Debug("> ", text)

		var cmdErr error
		for _, line := range byPiece(text, "\n") {
			if cmdErr = s.Execute(line); cmdErr != nil {
				break
			}
			if s.Over() {
				break
			}
		}

		var reply any = s.Snapshot()
		if cmdErr != nil {
			log.WithError(cmdErr).Debug("command rejected")
			reply = wrapError(cmdErr)
		}
		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
