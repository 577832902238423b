// Package web provides a real-time dashboard for the drowsiness monitor
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-drowsy/internal/log"
	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
	"github.com/teslashibe/go-drowsy/pkg/hub"
	"github.com/teslashibe/go-drowsy/pkg/monitor"
)

// Monitor is the read side of a running monitor.
type Monitor interface {
	SessionID() string
	Config() drowsiness.Config
	Stats() monitor.Stats
}

// Server is the web dashboard server
type Server struct {
	app     *fiber.App
	port    string
	monitor Monitor

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates a dashboard for mon. metrics may be nil.
func NewServer(port string, mon Monitor, metrics http.Handler) *Server {
	s := &Server{
		port:      port,
		monitor:   mon,
		statusHub: hub.NewReplaying("status"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Drowsiness Monitor",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/session", s.handleSession)
	api.Get("/window", s.handleWindow)

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(func(c *websocket.Conn) { hub.Serve(s.statusHub, c) }))
	app.Get("/ws/camera", websocket.New(func(c *websocket.Conn) { hub.Serve(s.cameraHub, c) }))

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hubs and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info("web dashboard listening", "url", "http://localhost:"+s.port)

	go s.statusHub.Run(ctx)
	go s.cameraHub.Run(ctx)

	errc := make(chan error, 1)
	go func() { errc <- s.app.Listen(":" + s.port) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// Publish broadcasts a classification to status clients.
func (s *Server) Publish(c drowsiness.Classification) {
	if err := s.statusHub.BroadcastJSON(s.event(c)); err != nil {
		log.Debug("status encode failed", "error", err)
	}
}

// PublishFrame broadcasts an annotated JPEG to camera clients.
func (s *Server) PublishFrame(jpeg []byte) {
	if s.cameraHub.ClientCount() == 0 {
		return
	}
	s.cameraHub.BroadcastBinary(jpeg)
}
