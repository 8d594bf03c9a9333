// Package gateway serves the REST API and the gRPC service on one listener.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/suncalc/internal/controllers"
	grpcctl "github.com/chrissnell/suncalc/internal/controllers/grpc"
	"github.com/chrissnell/suncalc/internal/controllers/restserver"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/pkg/config"
	"github.com/soheilhy/cmux"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Controller splits one TCP listener between gRPC and HTTP
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	cfg        config.GatewayData
	grpcServer *grpc.Server
	httpServer *http.Server
	logger     *zap.SugaredLogger
}

// NewController creates a gateway controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg config.GatewayData, sky *controllers.Sky, logger *zap.SugaredLogger) (*Controller, error) {
	if sky == nil {
		return nil, errors.New("gateway requires a sky backend")
	}
	if cfg.Port == 0 {
		logger.Info("gateway.port not provided; defaulting to 8080")
		cfg.Port = 8080
	}

	return &Controller{
		ctx:        ctx,
		wg:         wg,
		cfg:        cfg,
		grpcServer: grpcctl.NewGRPCServer(sky),
		httpServer: &http.Server{
			Handler:           restserver.NewRouter(sky, cfg.EnableCORS),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// StartController binds the listener and starts serving
func (c *Controller) StartController() error {
	addr := fmt.Sprintf("%s:%d", c.cfg.ListenAddr, c.cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("gateway could not create listener: %w", err)
	}
	log.Infof("gateway listening on %s", addr)

	c.Serve(l)
	return nil
}

// Serve multiplexes l until the controller's context is cancelled
func (c *Controller) Serve(l net.Listener) {
	m := cmux.New(l)
	grpcL := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldPrefixSendSettings("content-type", "application/grpc"))
	httpL := m.Match(cmux.Any())

	c.wg.Add(3)
	go func() {
		defer c.wg.Done()
		if err := c.grpcServer.Serve(grpcL); err != nil && !errors.Is(err, cmux.ErrListenerClosed) && !errors.Is(err, cmux.ErrServerClosed) {
			log.Errorf("gateway gRPC serve error: %v", err)
		}
	}()
	go func() {
		defer c.wg.Done()
		if err := c.httpServer.Serve(httpL); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, cmux.ErrListenerClosed) && !errors.Is(err, cmux.ErrServerClosed) {
			log.Errorf("gateway HTTP serve error: %v", err)
		}
	}()
	go func() {
		defer c.wg.Done()
		if err := m.Serve(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, cmux.ErrServerClosed) {
			log.Errorf("gateway listener error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.httpServer.Shutdown(shutdownCtx)
		c.grpcServer.Stop()
		m.Close()
	}()
}
