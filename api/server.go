package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/neoxid-es/pyspectator/internal/disk"
	"github.com/neoxid-es/pyspectator/internal/monitor"
	"github.com/neoxid-es/pyspectator/internal/platform"
)

// Monitors groups the resource monitors served by the API
type Monitors struct {
	Virtual *monitor.Resource
	Swap    *monitor.Resource // nil when swap monitoring is disabled
	Disks   []*disk.Monitor
}

// Stop stops every monitor
func (m Monitors) Stop() {
	if m.Virtual != nil {
		m.Virtual.Stop()
	}
	if m.Swap != nil {
		m.Swap.Stop()
	}
	for _, d := range m.Disks {
		d.Stop()
	}
}

// Server represents the API server
type Server struct {
	app      *fiber.App
	monitors Monitors
	logger   *zap.Logger
}

// NewServer creates a new API server reading from monitors. The server owns
// the monitors and stops them on Shutdown.
func NewServer(monitors Monitors, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "pyspectator",
		AppName:               "pyspectator v1.0",
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "*",
		MaxAge:       86400, // 24 hours
	}))

	server := &Server{
		app:      app,
		monitors: monitors,
		logger:   log,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/memory", s.getMemory)
	api.Get("/swap", s.getSwap)
	api.Get("/disk", s.getDisks)
	api.Get("/disk/device", s.getDevice)

	// Health check
	api.Get("/health", s.healthCheck)
}

// Start starts the API server
func (s *Server) Start(address string) error {
	s.logger.Info("api listening", zap.String("address", address))
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server and stops the monitors
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.monitors.Stop()
	return err
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"monitors":  s.monitorCount(),
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) monitorCount() int {
	n := len(s.monitors.Disks)
	if s.monitors.Virtual != nil {
		n++
	}
	if s.monitors.Swap != nil {
		n++
	}
	return n
}
