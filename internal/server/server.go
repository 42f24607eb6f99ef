// Package server exposes the schedule engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/foreman/internal/config"
	"github.com/alexanderramin/foreman/internal/metrics"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	svc     service.ScheduleService
	metrics *metrics.Metrics
	logger  zerolog.Logger
	cfg     config.ServerConfig
	router  *gin.Engine
}

func New(svc service.ScheduleService, m *metrics.Metrics, logger zerolog.Logger, cfg config.ServerConfig) *Server {
	registerJSONFieldNames()

	s := &Server{
		svc:     svc,
		metrics: m,
		logger:  logger.With().Str("component", "http").Logger(),
		cfg:     cfg,
	}
	s.router = s.setupRoutes()
	return s
}

// Handler returns the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", HealthCheck)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	schedules := router.Group("/schedules")
	{
		schedules.GET("", ListSchedules(s.svc))
		schedules.POST("", CreateSchedule(s.svc))
		schedules.GET("/:id", GetSchedule(s.svc))
		schedules.PATCH("/:id", UpdateSchedule(s.svc))
		schedules.DELETE("/:id", DeleteSchedule(s.svc))
		schedules.GET("/:id/dependents", ListDependents(s.svc))
		schedules.GET("/:id/cycle-check", CycleCheck(s.svc))
	}
	router.POST("/conflicts/check", CheckConflicts(s.svc))

	return router
}

// requestLogger logs every request and feeds the HTTP metrics.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(c.Request.Method, path, status, duration)
		}

		ev := s.logger.Debug()
		if status >= http.StatusInternalServerError {
			ev = s.logger.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("error", c.Errors.String())
			}
		}
		ev.Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", duration).
			Msg("http_request")
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

var registerOnce sync.Once

// registerJSONFieldNames makes binding errors report json field names.
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}
