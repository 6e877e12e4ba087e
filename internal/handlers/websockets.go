package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	maxMsgSize = 1 << 12 // 4 KB
)

// Message types on the task channel.
const (
	wsTypeList  = "list"
	wsTypeGet   = "get"
	wsTypeTasks = "tasks"
	wsTypeTask  = "task"
	wsTypeError = "error"
)

type wsRequest struct {
	Type string `json:"type"`
	ID   int    `json:"id,omitempty"`
}

// Envelope used for WebSocket replies.
type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: h.checkWSOrigin}
}

// checkWSOrigin accepts non-browser clients, same-host pages and configured origins.
func (h *Handler) checkWSOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return h.originAllowed(origin)
}

// wsConnect serves the owner's task channel. The server only answers
// requests; it never pushes on its own.
//
// @Summary      Task channel (websocket)
// @Description  Send {"type":"list"} or {"type":"get","id":N}; replies are {"type":"tasks"|"task"|"error",...}.
// @Tags         tasks
// @Security     BearerAuth
// @Param        user_id  path  int  true  "owner id"
// @Success      101
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/{user_id}/tasks/ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	ownerID := c.GetInt(ctxUserID)

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Infow("ws_upgrade_failed", "user_id", ownerID, "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := c.Request.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			h.log.Debugw("ws_read_closed", "user_id", ownerID, "err", err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := wsEnvelope{Type: wsTypeError, Error: "invalid message"}
		var req wsRequest
		if err := json.Unmarshal(msg, &req); err == nil {
			reply = h.wsReply(ctx, ownerID, req)
		}
		if err := h.wsWrite(conn, reply); err != nil {
			h.log.Infow("ws_write_failed", "user_id", ownerID, "err", err)
			return
		}
	}
}

func (h *Handler) wsReply(ctx context.Context, ownerID int, req wsRequest) wsEnvelope {
	switch req.Type {
	case wsTypeList:
		tasks, err := h.services.ListTasks(ctx, ownerID)
		if err != nil {
			return h.wsError(err)
		}
		return wsEnvelope{Type: wsTypeTasks, Data: tasks}
	case wsTypeGet:
		if req.ID <= 0 {
			return wsEnvelope{Type: wsTypeError, Error: "invalid id"}
		}
		task, err := h.services.GetTask(ctx, ownerID, req.ID)
		if err != nil {
			return h.wsError(err)
		}
		return wsEnvelope{Type: wsTypeTask, Data: task}
	default:
		return wsEnvelope{Type: wsTypeError, Error: "unknown message type"}
	}
}

func (h *Handler) wsError(err error) wsEnvelope {
	_, msg := serviceErrorStatus(err)
	if msg == internalErrorMessage {
		h.log.Errorw("ws_request_failed", "err", err)
	}
	return wsEnvelope{Type: wsTypeError, Error: msg}
}

func (h *Handler) wsWrite(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
