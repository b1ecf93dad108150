package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() error {
	defaults, err := a.config.GameParams()
	if err != nil {
		return err
	}

	game := handlers.NewGameHandler(a.log, a.ws, defaults, a.rnd)

	a.router.HandleFunc("GET /status", game.Status)
	a.router.HandleFunc("GET /play", game.Play)
	return nil
}
