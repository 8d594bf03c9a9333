package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/managers"
	"github.com/chrissnell/suncalc/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	observers, err := Observers(cfg.Observers)
	if err != nil {
		return err
	}

	settings, err := a.configProvider.GetAlmanacConfig()
	if err != nil {
		return fmt.Errorf("could not load almanac settings: %w", err)
	}
	interval, err := settings.Interval()
	if err != nil {
		return err
	}

	svc, err := almanac.NewService(settings.CacheSize, settings.Workers)
	if err != nil {
		return err
	}

	// Initialize the storage manager
	storageManager, err := managers.NewStorageManager(ctx, &wg, &cfg.Storage)
	if err != nil {
		return err
	}

	if len(storageManager.Engines) > 0 && len(observers) > 0 {
		scheduler := managers.NewAlmanacScheduler(observers, svc, settings.DaysAhead, interval, storageManager.DayDistributor)
		scheduler.Start(ctx, &wg)
	}

	sky := controllers.NewSky(observers, svc, storageManager.Reader(), storageManager.Health)

	// Initialize the controller manager
	cm, err := managers.NewControllerManager(ctx, &wg, cfg.Controllers, sky, a.logger)
	if err != nil {
		cancel()
		wg.Wait()
		storageManager.Close()
		return err
	}
	if err := cm.StartControllers(); err != nil {
		cancel()
		wg.Wait()
		storageManager.Close()
		return err
	}

	log.Infof("Application started successfully with %d observers", len(observers))

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	storageManager.Close()
	log.Info("shutdown complete")

	return nil
}

// Observers converts configured observers into almanac observers
func Observers(data []config.ObserverData) ([]almanac.Observer, error) {
	observers := make([]almanac.Observer, 0, len(data))
	for _, od := range data {
		obs, err := od.Observer()
		if err != nil {
			return nil, err
		}
		observers = append(observers, obs)
	}
	return observers, nil
}
