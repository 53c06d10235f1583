// Package livereload serves a development proxy of the site with browser
// refresh on rebuilds.
package livereload

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// SocketPath is the websocket endpoint of the live-reload channel.
	SocketPath = "/__livereload"
	// ScriptPath serves the client script injected into HTML pages.
	ScriptPath = "/__livereload.js"

	shutdownTimeout = 3 * time.Second
	clientQueueSize = 8
)

//go:embed client.js
var clientScript []byte

var scriptTag = []byte(`<script src="` + ScriptPath + `"></script>`)

// Message types sent to clients.
const (
	MessageCSS    = "css"
	MessageReload = "reload"
)

// Message is a live-reload event.
type Message struct {
	Type string `json:"type"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan Message
}

// Server is the live-reload proxy.
type Server struct {
	target   *url.URL
	listen   string
	proxy    *httputil.ReverseProxy
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

// New creates a server proxying target, to be served on listen.
func New(target, listen string) (*Server, error) {
	targetURL, err := url.Parse(target)
	if err != nil || targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q", target)
	}
	s := &Server{
		target:  targetURL,
		listen:  listen,
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.proxy = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(targetURL)
			r.SetXForwarded()
			// Plain bodies are required to inject the client script.
			r.Out.Header.Del("Accept-Encoding")
		},
		ModifyResponse: s.modifyResponse,
	}
	return s, nil
}

// injectScript inserts the client script tag before the closing body tag
// or appends it if there is none.
func injectScript(page []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(page), []byte("</body>"))
	if idx < 0 {
		return append(page, scriptTag...)
	}
	out := make([]byte, 0, len(page)+len(scriptTag))
	out = append(out, page[:idx]...)
	out = append(out, scriptTag...)
	return append(out, page[idx:]...)
}

func (s *Server) modifyResponse(resp *http.Response) error {
	// Keep redirects on the proxy.
	if location := resp.Header.Get("Location"); location != "" {
		origin := s.target.Scheme + "://" + s.target.Host
		if strings.HasPrefix(location, origin) {
			rest := strings.TrimPrefix(location, origin)
			if rest == "" {
				rest = "/"
			}
			resp.Header.Set("Location", rest)
		}
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") ||
		resp.Header.Get("Content-Encoding") != "" {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return err
	}
	body = injectScript(body)
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return nil
}

// Handler returns the proxy handler with the live-reload endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SocketPath, s.serveSocket)
	mux.HandleFunc(ScriptPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(clientScript)
	})
	mux.Handle("/", s.proxy)
	return mux
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debugf("Live reload upgrade failed: %s", err)
		return
	}
	c := &client{id: uuid.New(), conn: conn, send: make(chan Message, clientQueueSize)}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	log.Debugf("Live reload client %s connected", c.id)

	go s.writeLoop(c)
	// Reads detect closed connections, clients send nothing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(c)
}

func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Debugf("Live reload client %s: %s", c.id, err)
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	c.conn.Close()
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	delete(s.clients, c.id)
	close(c.send)
	log.Debugf("Live reload client %s disconnected", c.id)
}

func (s *Server) broadcast(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		select {
		case c.send <- msg:
		default:
			log.Debugf("Live reload client %s is slow, message dropped", c.id)
		}
	}
}

// NotifyCSS tells clients to refresh stylesheets in place.
func (s *Server) NotifyCSS() { s.broadcast(Message{Type: MessageCSS}) }

// Reload tells clients to reload the page.
func (s *Server) Reload() { s.broadcast(Message{Type: MessageReload}) }

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.drop(c)
	}
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.listen, Handler: s.Handler()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Proxying %s at http://%s", s.target, s.listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("live reload server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeClients()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
