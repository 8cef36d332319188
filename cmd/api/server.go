package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookrealm-backend/pkg/container"
)

type Server struct {
	httpServer *http.Server
	container  *container.Container
}

func NewServer(c *container.Container) *Server {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	registerRoutes(engine, c)

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + c.Config.App.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		container: c,
	}
}

func (s *Server) Start() error {
	log.Info().
		Str("addr", s.httpServer.Addr).
		Str("env", s.container.Config.App.Environment).
		Msg("HTTP server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
