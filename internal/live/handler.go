package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
)

// Handler manages WebSocket connections for live form sessions.
type Handler struct {
	sessions *Manager
	svc      *forms.Service
	log      *logrus.Entry
}

// NewHandler creates a WebSocket handler on top of the forms service.
func NewHandler(sessions *Manager, svc *forms.Service) *Handler {
	return &Handler{
		sessions: sessions,
		svc:      svc,
		log:      logrus.WithField("component", "live"),
	}
}

// ServeHTTP upgrades to WebSocket and runs the message loop. The first
// message must be "init"; everything else is rejected until a session exists.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.WithError(err).Warn("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	token := r.Header.Get("X-Session-Token")
	var sess *Session
	defer func() {
		if sess != nil {
			h.sessions.Remove(sess.ID)
		}
	}()

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.log.WithField("status", websocket.CloseStatus(err)).Debug("connection closed")
			}
			return
		}

		switch msg.Type {
		case "init":
			sess = h.handleInit(ctx, conn, msg, token, sess)
		case "change":
			h.handleChange(ctx, conn, sess, msg, token)
		case "search":
			h.handleSearch(ctx, conn, sess, msg, token)
		case "render":
			if sess == nil {
				h.sendError(ctx, conn, msg.ID, "no_session", "send init first")
				continue
			}
			h.renderAndSend(ctx, conn, sess, msg.ID, token)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleInit(ctx context.Context, conn *websocket.Conn, msg ClientMessage, token string, prev *Session) *Session {
	var data InitData
	if err := json.Unmarshal(msg.Data, &data); err != nil || data.FormID == "" {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "init needs a form_id")
		return prev
	}

	// Re-init replaces the connection's session; drop the old one now rather
	// than leaving it to age out of the manager.
	if prev != nil {
		h.sessions.Remove(prev.ID)
	}
	sess := h.sessions.Create(data.FormID, data.Locale)
	sess.RecordID = data.RecordID

	h.send(ctx, conn, ServerMessage{
		Type:      "session",
		RequestID: msg.ID,
		Data: SessionData{
			SessionID: sess.ID,
			FormID:    sess.FormID,
			Locale:    sess.Locale,
		},
	})
	h.renderAndSend(ctx, conn, sess, msg.ID, token)
	return sess
}

func (h *Handler) handleChange(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage, token string) {
	if sess == nil {
		h.sendError(ctx, conn, msg.ID, "no_session", "send init first")
		return
	}
	var data ChangeData
	if err := json.Unmarshal(msg.Data, &data); err != nil || data.Field == "" {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "change needs a field")
		return
	}
	value, err := h.svc.ApplyChange(ctx, sess.FormID, data.Field, data.Value)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "change_error", err.Error())
		return
	}
	sess.Set(data.Field, value)

	// Edits can flip visibility rules, so the whole page re-renders.
	h.renderAndSend(ctx, conn, sess, msg.ID, token)
}

func (h *Handler) handleSearch(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage, token string) {
	if sess == nil {
		h.sendError(ctx, conn, msg.ID, "no_session", "send init first")
		return
	}
	var data SearchData
	if err := json.Unmarshal(msg.Data, &data); err != nil || data.Command == "" {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "search needs a command")
		return
	}
	sess.Touch()

	res, err := h.svc.ExecuteSearch(ctx, sess.FormID, forms.SearchRequest{
		Command:      data.Command,
		SearchText:   data.SearchText,
		Advanced:     data.Advanced,
		PageIndex:    data.PageIndex,
		PageSize:     data.PageSize,
		Locale:       sess.Locale,
		SessionToken: token,
	})
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "search_error", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "results", RequestID: msg.ID, Data: res})
}

func (h *Handler) renderAndSend(ctx context.Context, conn *websocket.Conn, sess *Session, requestID, token string) {
	page, err := h.svc.RenderPage(ctx, sess.FormID, forms.RenderOptions{
		Locale:       sess.Locale,
		RecordID:     sess.RecordID,
		SessionToken: token,
		FormState:    sess.Values,
	})
	if err != nil {
		h.sendError(ctx, conn, requestID, "render_error", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "page", RequestID: requestID, Data: page})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		h.log.WithError(err).Debug("websocket write")
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}
