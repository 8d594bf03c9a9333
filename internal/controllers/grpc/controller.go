// Package grpc serves the SunCalc service over gRPC with MessagePack-encoded
// messages.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Controller represents the gRPC controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	GRPCConfig config.GRPCData
	Server     *grpc.Server
	logger     *zap.SugaredLogger
}

// NewController creates a new gRPC controller instance
func NewController(ctx context.Context, wg *sync.WaitGroup, grpcConfig config.GRPCData, sky *controllers.Sky, logger *zap.SugaredLogger) (*Controller, error) {
	if grpcConfig.Port == 0 {
		logger.Info("grpc.port not provided; defaulting to 9090")
		grpcConfig.Port = 9090
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(unaryLoggingInterceptor),
		grpc.ChainStreamInterceptor(streamLoggingInterceptor),
	}

	// Create gRPC server with optional TLS
	if grpcConfig.Cert != "" && grpcConfig.Key != "" {
		creds, err := credentials.NewServerTLSFromFile(grpcConfig.Cert, grpcConfig.Key)
		if err != nil {
			return nil, fmt.Errorf("could not create TLS server from keypair: %v", err)
		}
		opts = append(opts, grpc.Creds(creds))
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		GRPCConfig: grpcConfig,
		Server:     NewGRPCServer(sky, opts...),
		logger:     logger,
	}
	return ctrl, nil
}

// NewGRPCServer builds a grpc.Server with the SunCalc and health services
// registered
func NewGRPCServer(sky *controllers.Sky, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	RegisterSunCalcServer(s, NewServer(sky))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

// StartController starts the gRPC controller
func (c *Controller) StartController() error {
	log.Info("Starting gRPC controller...")

	listenAddr := fmt.Sprintf("%s:%d", c.GRPCConfig.ListenAddr, c.GRPCConfig.Port)
	l, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("gRPC controller could not create listener: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		log.Infof("gRPC controller listening on %s", listenAddr)
		if err := c.Server.Serve(l); err != nil {
			log.Errorf("gRPC controller serve error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.StopController()
	}()

	return nil
}

// StopController stops the gRPC controller
func (c *Controller) StopController() {
	log.Info("Stopping gRPC controller...")
	if c.Server != nil {
		c.Server.GracefulStop()
	}
}

func unaryLoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logCall(info.FullMethod, start, err)
	return resp, err
}

func streamLoggingInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	logCall(info.FullMethod, start, err)
	return err
}

func logCall(method string, start time.Time, err error) {
	fields := []interface{}{
		"method", method,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		log.GetSugaredLogger().Warnw("grpc call failed", append(fields, "error", err.Error())...)
		return
	}
	log.GetSugaredLogger().Debugw("grpc call", fields...)
}
