package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log    *logrus.Logger
	config *config.Config
	router *http.ServeMux
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func New(log *logrus.Logger, cfg *config.Config, rnd *rand.Rand) *App {
	app := &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
		ws:     config.NewWebSocket(cfg),
		rnd:    rnd,
	}
	return app
}

func (a *App) handler() (http.Handler, error) {
	if err := a.loadRoutes(); err != nil {
		return nil, err
	}
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.log),
		middleware.Cors(a.config.AllowedOrigins),
		middleware.Logging(a.log),
	), nil
}

// Start serves on the configured address until ctx is done.
func (a *App) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, l)
}

func (a *App) Serve(ctx context.Context, l net.Listener) error {
	handler, err := a.handler()
	if err != nil {
		l.Close()
		return err
	}

	server := &http.Server{
		Handler:     handler,
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", l.Addr())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
