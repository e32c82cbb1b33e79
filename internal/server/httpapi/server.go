// Package httpapi exposes phase generation over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/logging"
	"github.com/dmitrijs2005/postplanner/internal/server/services"
)

const (
	GeneratePhasePath = "/functions/v1/generate-phase"
	HealthPath        = "/healthz"

	shutdownTimeout = 5 * time.Second
)

type Server struct {
	address    string
	router     *gin.Engine
	generation *services.GenerationService
	timeout    time.Duration
	logger     logging.Logger
}

// NewServer builds the router. A positive timeout bounds each generation
// request.
func NewServer(address string, zl *zap.Logger, gen *services.GenerationService, timeout time.Duration, debug bool) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestLogger(zl))
	router.Use(cors.New(cors.Config{
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", common.RequestIDHeaderName},
		AllowOriginFunc: func(string) bool { return true },
		MaxAge:          12 * time.Hour,
	}))

	s := &Server{
		address:    address,
		router:     router,
		generation: gen,
		timeout:    timeout,
		logger:     logging.NewZapLogger(zl).With("module", "http_server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET(HealthPath, s.health)
	s.router.POST(GeneratePhasePath, s.generatePhase)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
