package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	http_router "github.com/safewalk-labs/safewalk/pkg/http/router"
	"github.com/safewalk-labs/safewalk/pkg/http/router/controllers"
	http_server "github.com/safewalk-labs/safewalk/pkg/http/server"
)

type Server struct {
	Log   *zap.Logger
	errCh chan error
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log, errCh: make(chan error, 1)}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,

) (*Server, error) {
	viper.SetDefault("API_PORT", 3000)
	viper.SetDefault("API_TIMEOUT", "30s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g := errgroup.Group{}

	g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, routingService,
		)
	})

	go func() {
		s.errCh <- g.Wait()
	}()

	return s, nil
}

// GracefulShutdown blocks until SIGINT/SIGTERM, or until the api server
// stops on its own. a listener that fails to bind surfaces here instead of
// leaving the process hanging as if healthy.
func (s *Server) GracefulShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.Log.Info("received shutdown signal", zap.String("signal", sig.String()))
		return nil
	case err := <-s.errCh:
		return err
	}
}
