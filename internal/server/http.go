package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/smtp-gateway-agent/internal/server/middlewares"
	"github.com/kubev2v/smtp-gateway-agent/pkg/certificates"
)

const (
	ProductionServer string = "prod"
	DevServer        string = "dev"
	APIV1            string = "/api/v1"
)

type Options struct {
	HTTPPort   int
	ServerMode string
	// StaticsFolder is served in production mode.
	StaticsFolder string
	// BasePath prefixes every registered route.
	BasePath    string
	Middlewares []gin.HandlerFunc
}

type Server struct {
	srv *http.Server
}

func NewServer(opts Options, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	gin.SetMode(gin.DebugMode)
	if opts.ServerMode == ProductionServer {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", opts.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.ServerMode == ProductionServer {
		engine.Static("/assets", path.Join(opts.StaticsFolder, "assets"))
		engine.StaticFile("/", path.Join(opts.StaticsFolder, "index.html"))
		engine.StaticFile("/favicon.ico", path.Join(opts.StaticsFolder, "favicon.ico"))

		engine.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "API endpoint not found",
				})
				return
			}
			c.File(path.Join(opts.StaticsFolder, "index.html"))
		})

		tlsConfig, err := certificates.NewSelfSignedTLSConfig(time.Now().AddDate(1, 0, 0))
		if err != nil {
			return nil, fmt.Errorf("failed to generate server's certificates: %w", err)
		}
		srv.TLSConfig = tlsConfig
	}

	router := engine.Group(opts.BasePath)

	router.Use(
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.S().Desugar(), true),
	)
	router.Use(opts.Middlewares...)

	registerHandlerFn(router)

	return &Server{srv: srv}, nil
}

// Start starts the HTTP or HTTPS server based on TLS configuration.
func (r *Server) Start(ctx context.Context) error {
	var err error
	if r.srv.TLSConfig != nil {
		err = r.srv.ListenAndServeTLS("", "")
	} else {
		err = r.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *Server) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server shutdown", "error", err)
	}
}
