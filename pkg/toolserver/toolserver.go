// Package toolserver serves the tool-calling boundary over HTTP: tool
// discovery, invocation, health and metrics.
package toolserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gopkg.in/tomb.v2"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/bridgecfg"
	"github.com/solomonneas/misp-mcp/pkg/correlation"
	"github.com/solomonneas/misp-mcp/pkg/toolserver/controllers"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	listenURI      string
	controller     *controllers.Controller
	router         *gin.Engine
	httpServer     *http.Server
	httpServerTomb tomb.Tomb
}

func recoverFromPanic(gctx *gin.Context) {
	if r := recover(); r != nil {
		log.Warningf("client %s error: %s", gctx.ClientIP(), r)
		gctx.AbortWithStatus(http.StatusInternalServerError)
	}
}

// CustomRecoveryWithWriter returns a middleware that recovers from any panics
// and writes a 500 if there was one.
func CustomRecoveryWithWriter() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		defer recoverFromPanic(gctx)
		gctx.Next()
	}
}

func NewServer(cfg *bridgecfg.Config, client *apiclient.ApiClient, engine *correlation.Engine) (*Server, error) {
	log.Debugf("starting tool router on %s", cfg.ListenURI)

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.ForwardedByClientIP = false
	router.Use(CustomRecoveryWithWriter())

	controller := controllers.New(client, engine)

	router.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/tools", controller.ListTools)
	router.POST("/tools/:name", controller.Invoke)

	if cfg.Prometheus {
		controllers.RegisterMetrics()
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return &Server{
		listenURI:  cfg.ListenURI,
		controller: controller,
		router:     router,
		httpServer: &http.Server{Addr: cfg.ListenURI, Handler: router},
	}, nil
}

// Run starts serving and blocks until the server stops or fails.
func (s *Server) Run() error {
	s.httpServerTomb.Go(func() error {
		log.Infof("tool server listening on %s", s.listenURI)

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	return s.httpServerTomb.Wait()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.httpServerTomb.Kill(nil)

	return nil
}

// Router is exposed for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
