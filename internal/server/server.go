// Package server exposes the administrative HTTP surface: health and
// status probes plus manual send and broadcast endpoints.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/scheduler"
	"github.com/investbot-app/investbot/internal/service"
)

// StatsProvider reports the messaging subsystem snapshot.
type StatsProvider interface {
	Stats() service.Stats
}

// Broadcaster is the slice of the scheduler the HTTP surface needs.
type Broadcaster interface {
	SendBroadcast(ctx context.Context, text string) (service.BroadcastResult, error)
	Jobs() []scheduler.JobStatus
}

// Server is the admin HTTP server.
type Server struct {
	httpServer  *http.Server
	router      *gin.Engine
	stats       StatsProvider
	sender      service.Sender
	broadcaster Broadcaster
}

// New builds the admin server and its routes.
func New(stats StatsProvider, sender service.Sender, broadcaster Broadcaster) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:      router,
		stats:       stats,
		sender:      sender,
		broadcaster: broadcaster,
	}

	router.GET("/health", s.handleHealth)
	router.GET("/status", s.handleStatus)
	api := router.Group("/api")
	api.POST("/send", s.handleSend)
	api.POST("/broadcast", s.handleBroadcast)

	return s
}

// Run serves until the context ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats": s.stats.Stats(),
		"jobs":  s.broadcaster.Jobs(),
	})
}

type sendRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) handleSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and message are required"})
		return
	}

	if err := s.sender.Send(c.Request.Context(), req.Phone, req.Message); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrTransportNotReady) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type broadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) handleBroadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	result, err := s.broadcaster.SendBroadcast(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sent":    result.Sent,
		"failed":  result.Failed,
	})
}
