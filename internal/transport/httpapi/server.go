// Package httpapi exposes the learning tables over a read-only HTTP API for
// dashboards and operator tooling. It never mutates state; all writes flow
// through the messaging transports.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franvarela/lorobot/internal/config"
	"github.com/franvarela/lorobot/internal/service/learning"
	"github.com/franvarela/lorobot/pkg/log"
)

type Server struct {
	srv    *http.Server
	engine *learning.Engine
}

func NewServer(ctx context.Context, cfg *config.HTTPConfig, engine *learning.Engine) *Server {
	if !config.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{engine: engine}

	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, s)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func registerRoutes(router *gin.Engine, s *Server) {
	router.GET("/learning/stats", s.getStats)
	router.GET("/learning/patterns", s.getPatterns)
	router.GET("/learning/match", s.getMatch)
	router.GET("/messages", s.getMessages)
	router.GET("/export/patterns/json", s.exportPatternsJSON)
	router.GET("/export/messages/csv", s.exportMessagesCSV)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http api")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
