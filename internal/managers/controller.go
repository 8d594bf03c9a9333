package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/internal/controllers/gateway"
	"github.com/chrissnell/suncalc/internal/controllers/grpc"
	"github.com/chrissnell/suncalc/internal/controllers/restserver"
	"github.com/chrissnell/suncalc/pkg/config"
	"go.uber.org/zap"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
}

// Controller is an interface that provides standard methods for various controller backends
type Controller interface {
	StartController() error
}

// NewControllerManager creates a new controller manager
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, configs []config.ControllerData, sky *controllers.Sky, logger *zap.SugaredLogger) (ControllerManager, error) {
	cm := &controllerManager{
		ctx:         ctx,
		wg:          wg,
		sky:         sky,
		logger:      logger,
		controllers: make([]Controller, 0, len(configs)),
	}

	// Create controllers based on configuration
	for _, con := range configs {
		controller, err := cm.createController(con)
		if err != nil {
			return nil, fmt.Errorf("error creating controller: %v", err)
		}
		cm.controllers = append(cm.controllers, controller)
	}

	return cm, nil
}

type controllerManager struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	sky         *controllers.Sky
	logger      *zap.SugaredLogger
	controllers []Controller
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		err := controller.StartController()
		if err != nil {
			return fmt.Errorf("error starting controller: %v", err)
		}
	}

	c.logger.Infof("Started %d controllers successfully", len(c.controllers))
	return nil
}

// createController creates a controller based on the controller configuration
func (cm *controllerManager) createController(cc config.ControllerData) (Controller, error) {
	switch cc.Type {
	case config.ControllerREST:
		if cc.RESTServer == nil {
			return nil, fmt.Errorf("rest controller has no rest section")
		}
		return restserver.NewController(cm.ctx, cm.wg, *cc.RESTServer, cm.sky, cm.logger)
	case config.ControllerGRPC:
		if cc.GRPC == nil {
			return nil, fmt.Errorf("grpc controller has no grpc section")
		}
		return grpc.NewController(cm.ctx, cm.wg, *cc.GRPC, cm.sky, cm.logger)
	case config.ControllerGateway:
		if cc.Gateway == nil {
			return nil, fmt.Errorf("gateway controller has no gateway section")
		}
		return gateway.NewController(cm.ctx, cm.wg, *cc.Gateway, cm.sky, cm.logger)
	default:
		return nil, fmt.Errorf("unknown controller type: %s", cc.Type)
	}
}
