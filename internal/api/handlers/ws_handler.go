package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/eurouni/eurostudy/internal/preview"
	"github.com/eurouni/eurostudy/internal/services"
	"github.com/eurouni/eurostudy/internal/utils"
)

// previewStream is the slice of redis.PubSub this handler consumes.
type previewStream interface {
	ReceiveMessage(ctx context.Context) (*redis.Message, error)
	Close() error
}

// WSHandler streams rendered preview HTML for a resume being edited. The
// editor service publishes a fresh render to Redis on every section change;
// this handler fans it out to the connected page.
type WSHandler struct {
	editor    services.EditorService
	subscribe func(ctx context.Context, channel string) previewStream
	upgrader  websocket.Upgrader
}

func NewWSHandler(editor services.EditorService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		editor: editor,
		subscribe: func(ctx context.Context, channel string) previewStream {
			return rdb.Subscribe(ctx, channel)
		},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type previewFrame struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) PreviewWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resumeID := c.Param("id")
	if resumeID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.PreviewWS", "missing resume id", nil))
		return
	}

	// the connecting user must hold an open edit session for this resume
	draft, err := h.editor.Draft(userID, resumeID)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// initial frame so the page is never blank while waiting for the
	// first edit
	if html, rerr := preview.RenderHTML(preview.Project(draft)); rerr == nil {
		frame, _ := json.Marshal(previewFrame{Type: "preview", HTML: html})
		if werr := wc.writeText(frame); werr != nil {
			return
		}
	}

	pubsub := h.subscribe(ctx, services.PreviewChannel(resumeID))
	defer pubsub.Close()

	// reader: we only care about the close / ping side of the connection.
	// Cancelling ctx on reader exit unblocks ReceiveMessage below, so a
	// dead socket releases the goroutine and the Redis subscription
	// without waiting for the next publish.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()
	go func() {
		<-readDone
		cancel()
	}()

	for {
		m, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return
		}
		frame, _ := json.Marshal(previewFrame{Type: "preview", HTML: m.Payload})
		if werr := wc.writeText(frame); werr != nil {
			return
		}
	}
}
