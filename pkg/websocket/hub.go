// Package websocket turns any browser into a soft-light surface. Each
// connected page receives every colour the controller renders as a JSON
// frame and paints its background with it.
package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/engine"
	"github.com/wamphlett/softbox-controller/pkg/mailbox"
)

const shutdownTimeout = 5 * time.Second

// Frame is the message sent to clients
type Frame struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

func newFrame(c engine.Color) Frame {
	return Frame{R: c.R, G: c.G, B: c.B, Hex: c.Hex()}
}

type client struct {
	conn *ws.Conn
	box  *mailbox.Mailbox
}

// Hub implements controller.Renderer for browser clients
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    engine.Color

	upgrader     ws.Upgrader
	writeTimeout time.Duration
	logger       *log.Logger
}

// NewHub returns a hub with no clients
func NewHub(cfg *config.WebSocket, logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		last:    engine.White,
		upgrader: ws.Upgrader{
			// pages are usually opened from a phone on the same network
			CheckOrigin: func(*http.Request) bool { return true },
		},
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
	}
}

// Render hands c to every connected client without blocking
func (h *Hub) Render(c engine.Color) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = c
	for cl := range h.clients {
		cl.box.Post(c)
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves the light page on / and the colour stream on /ws
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.servePage)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is cancelled
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.Close()
	}()

	h.logger.Printf("websocket: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		h.remove(cl)
	}
}

func (h *Hub) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		h.logger.Println("websocket: upgrade:", err)
		return
	}

	cl := &client{conn: conn, box: mailbox.New()}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	cl.box.Post(h.last)
	h.mu.Unlock()

	go h.readPump(cl)
	h.writePump(cl)
}

// readPump discards client messages and notices disconnects
func (h *Hub) readPump(cl *client) {
	defer h.remove(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	defer h.remove(cl)
	for c := range cl.box.C() {
		if h.writeTimeout > 0 {
			_ = cl.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		if err := cl.conn.WriteJSON(newFrame(c)); err != nil {
			return
		}
	}
}

// remove forgets a client. Colours posted to it afterwards are dropped.
func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	_, ok := h.clients[cl]
	delete(h.clients, cl)
	h.mu.Unlock()

	cl.box.Close()
	if ok {
		_ = cl.conn.Close()
	}
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>SoftBox</title>
<style>html, body { margin: 0; height: 100%; background: #ffffff; }</style>
</head>
<body>
<script>
(function connect() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var sock = new WebSocket(proto + location.host + "/ws");
  sock.onmessage = function (ev) {
    document.body.style.background = JSON.parse(ev.data).hex;
  };
  sock.onclose = function () { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>
`
