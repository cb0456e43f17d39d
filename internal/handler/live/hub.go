package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	xlogger "TradeLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
)

const (
	KindMood    = "mood"
	KindSummary = "summary"

	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 45 * time.Second
	sendBuffer   = 16
)

// Frame is one websocket message.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Source produces the classified market panels pushed to clients.
type Source interface {
	Mood(ctx context.Context) (models.MarketMood, error)
	Summary(ctx context.Context) (models.MarketSummary, error)
}

type client struct {
	conn *websocket.Conn
	out  chan Frame
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// Hub refreshes market panels on a cron schedule and fans them out to
// every connected websocket client. New clients get the latest frames
// immediately.
type Hub struct {
	src      Source
	metrics  domrepo.Metrics
	log      *xlogger.Logger
	schedule string
	timeout  time.Duration
	upgrader websocket.Upgrader

	cron *cron.Cron

	mu      sync.RWMutex
	clients map[*client]struct{}
	last    map[string]Frame
}

// Option configures Hub.
type Option func(*Hub)

// WithAllowedOrigins restricts websocket upgrades; "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Hub) {
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		}
	}
}

// WithRefreshTimeout bounds a single refresh.
func WithRefreshTimeout(d time.Duration) Option {
	return func(h *Hub) { h.timeout = d }
}

func NewHub(src Source, metrics domrepo.Metrics, log *xlogger.Logger, schedule string, opts ...Option) *Hub {
	h := &Hub{
		src:      src,
		metrics:  metrics,
		log:      log,
		schedule: schedule,
		timeout:  15 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		cron:    cron.New(cron.WithSeconds()),
		clients: make(map[*client]struct{}),
		last:    make(map[string]Frame),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/live", h.Serve)
}

// Start schedules refreshes and runs a first one right away.
func (h *Hub) Start(ctx context.Context) error {
	if _, err := h.cron.AddFunc(h.schedule, func() { h.Refresh(ctx) }); err != nil {
		return err
	}
	h.cron.Start()
	go h.Refresh(ctx)
	h.log.Info("live feed started", xlogger.String("schedule", h.schedule))
	return nil
}

// Stop waits for a running refresh and disconnects every client.
func (h *Hub) Stop() {
	<-h.cron.Stop().Done()
	h.mu.Lock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
	h.mu.Unlock()
	h.log.Info("live feed stopped")
}

// Refresh fetches both panels and broadcasts whichever succeeded.
func (h *Hub) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if mood, err := h.src.Mood(ctx); err != nil {
		h.log.Warn("live mood refresh failed", xlogger.Error(err))
	} else {
		h.Broadcast(Frame{Type: KindMood, Data: mood})
	}
	if summary, err := h.src.Summary(ctx); err != nil {
		h.log.Warn("live summary refresh failed", xlogger.Error(err))
	} else {
		h.Broadcast(Frame{Type: KindSummary, Data: summary})
	}
}

// Broadcast remembers f as the latest frame of its kind and queues it for
// every client. Slow clients drop frames rather than block the hub.
func (h *Hub) Broadcast(f Frame) {
	h.mu.Lock()
	h.last[f.Type] = f
	n := len(h.clients)
	for c := range h.clients {
		select {
		case c.out <- f:
		default:
		}
	}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.RecordBroadcast(f.Type, n)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, kind := range []string{KindMood, KindSummary} {
		if f, ok := h.last[kind]; ok {
			c.out <- f
		}
	}
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Serve upgrades the request and streams frames until the client leaves.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		h.log.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	cl := &client{conn: conn, out: make(chan Frame, sendBuffer), done: make(chan struct{})}
	h.register(cl)
	defer h.unregister(cl)

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

// readLoop discards client messages; it exists to process pongs and close frames.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case f := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				h.log.Debug("websocket write failed", xlogger.Error(err))
				_ = c.conn.Close()
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			_ = c.conn.Close()
			return
		}
	}
}
