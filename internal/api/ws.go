package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgReview = "review"
)

// WebSocket message types to client.
const (
	wsMsgDimension = "dimension"
	wsMsgReport    = "report"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsDimensionEvent reports one finished dimension pass.
type wsDimensionEvent struct {
	Dimension string `json:"dimension"`
	Findings  int    `json:"findings"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read", "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgReview:
			s.handleWSReview(r.Context(), conn, msg.Data)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

// handleWSReview runs one review, emitting a progress event per enabled
// dimension before the finished report.
func (s *Server) handleWSReview(ctx context.Context, conn *websocket.Conn, data json.RawMessage) {
	var req reviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid review data")
		return
	}

	facts, unit, err := req.factSet()
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}

	res, err := s.engine.Evaluate(ctx, facts)
	if err != nil {
		sendWSError(conn, "evaluating: "+err.Error())
		return
	}

	perDimension := make(map[model.Dimension]int)
	for _, f := range res.Findings {
		perDimension[f.Dimension]++
	}
	for _, d := range model.CanonicalOrder() {
		if !s.registry.Enabled(d) {
			continue
		}
		sendWSMessage(conn, wsMsgDimension, wsDimensionEvent{
			Dimension: d.String(),
			Findings:  perDimension[d],
		})
	}

	sendWSMessage(conn, wsMsgReport, report.Aggregate(unit, res.Findings, res.Errors))
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("ws marshal", "error", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		slog.Error("ws write", "error", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
