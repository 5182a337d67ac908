package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/pkg/logger"
	"github.com/okian/iplboard/pkg/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum selection message size allowed from peer.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// selectionRequest is one client message on /ws/selection.
type selectionRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// selectionReply is sent on every state transition. The final
// idle-rendered reply carries the result or the error.
type selectionReply struct {
	State service.State            `json:"state"`
	Kind  string                   `json:"kind,omitempty"`
	Name  string                   `json:"name,omitempty"`
	HTML  string                   `json:"html,omitempty"`
	Data  *service.SelectionResult `json:"data,omitempty"`
	Error string                   `json:"error,omitempty"`
}

// handleSelection handles GET /ws/selection. Each connection owns one
// selector; selections are applied in arrival order.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(ctx, "websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	metrics.AddWSConnections(1)
	defer metrics.AddWSConnections(-1)

	done := make(chan struct{})
	defer close(done)
	go ping(conn, done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })

	sel := s.newSelector()
	for {
		var req selectionRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug(ctx, "websocket read failed", logger.Error(err))
			}
			return
		}

		var writeErr error
		res, err := sel.Select(ctx, req.Kind, req.Name, func(st service.State) {
			if st == service.StateRecomputing {
				writeErr = write(conn, selectionReply{State: st, Kind: req.Kind})
			}
		})
		if writeErr != nil {
			return
		}

		reply := selectionReply{State: service.StateIdle, Kind: req.Kind, Name: req.Name}
		switch {
		case errors.Is(err, service.ErrUnknownSelection):
			reply.Error = err.Error()
		case err != nil:
			s.logger.Error(ctx, "selection failed",
				logger.String("kind", req.Kind),
				logger.String("name", req.Name),
				logger.Error(err),
			)
			reply.Error = err.Error()
		default:
			reply.Data = &res
			if s.fragments != nil {
				html, ferr := s.fragments.Fragment(res)
				if ferr != nil {
					s.logger.Warn(ctx, "selection fragment failed", logger.Error(ferr))
				}
				reply.HTML = html
			}
		}
		if err := write(conn, reply); err != nil {
			return
		}
	}
}

func write(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// ping keeps the read deadline alive. WriteControl is safe alongside WriteJSON.
func ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
