package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// wsFramer carries one frame per websocket text message.
type wsFramer struct {
	ws *websocket.Conn
}

func newWSFramer(ws *websocket.Conn) *wsFramer {
	ws.SetReadLimit(MaxFrameSize)
	return &wsFramer{ws: ws}
}

func (w *wsFramer) ReadFrame() ([]byte, error) {
	for {
		mt, data, err := w.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if mt == websocket.TextMessage {
			return data, nil
		}
	}
}

func (w *wsFramer) WriteFrame(frame []byte) error {
	_ = w.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.ws.WriteMessage(websocket.TextMessage, frame)
}

func (w *wsFramer) Close() error {
	_ = w.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return w.ws.Close()
}

func (w *wsFramer) RemoteAddr() net.Addr { return w.ws.RemoteAddr() }

// WSListener serves a single websocket upgrade on an HTTP endpoint.
type WSListener struct {
	ln       net.Listener
	srv      *http.Server
	upgrader websocket.Upgrader
	path     string

	mu       sync.Mutex
	taken    bool
	accepted chan *websocket.Conn

	closeOnce sync.Once
}

// ListenWS binds an HTTP listener that upgrades requests on path.
func ListenWS(addr, path string) (*WSListener, error) {
	if path == "" {
		path = "/duel"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	l := &WSListener{
		ln:   ln,
		path: path,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		accepted: make(chan *websocket.Conn, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, l.serveWS)
	l.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Debug().Err(err).Msg("websocket listener stopped")
		}
	}()
	return l, nil
}

// Addr returns the bound address.
func (l *WSListener) Addr() net.Addr { return l.ln.Addr() }

// URL returns the ws:// URL a peer on this host would dial.
func (l *WSListener) URL() string {
	return fmt.Sprintf("ws://%s%s", l.ln.Addr().String(), l.path)
}

func (l *WSListener) serveWS(w http.ResponseWriter, r *http.Request) {
	l.mu.Lock()
	if l.taken {
		l.mu.Unlock()
		http.Error(w, "duel already in progress", http.StatusConflict)
		return
	}
	l.taken = true
	l.mu.Unlock()

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		l.mu.Lock()
		l.taken = false
		l.mu.Unlock()
		return
	}
	l.accepted <- ws
}

// Accept waits for the first upgraded connection, then stops serving.
func (l *WSListener) Accept(ctx context.Context) (Conn, error) {
	defer l.Close()
	select {
	case ws := <-l.accepted:
		log.Info().Str("peer", ws.RemoteAddr().String()).Msg("peer connected over websocket")
		return newPumpConn(newWSFramer(ws), "ws"), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the HTTP server. Upgraded connections are unaffected.
func (l *WSListener) Close() error {
	var err error
	l.closeOnce.Do(func() { err = l.srv.Close() })
	return err
}

// DialWS connects to a websocket duel endpoint such as
// "ws://host:12345/duel".
func DialWS(ctx context.Context, url string, opts DialOptions) (Conn, error) {
	opts = opts.withDefaults()
	ws, err := connect(ctx, opts, func(ctx context.Context) (*websocket.Conn, error) {
		d := websocket.Dialer{HandshakeTimeout: opts.Timeout}
		ws, _, err := d.DialContext(ctx, url, nil)
		if err != nil {
			log.Debug().Err(err).Str("url", url).Msg("websocket connect attempt failed")
		}
		return ws, err
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	return newPumpConn(newWSFramer(ws), "ws"), nil
}
