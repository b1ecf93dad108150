package config

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin in development. Otherwise the origin
// must be listed in AllowedOrigins, or match the request host when the
// list is empty.
func NewWebSocket(c *Config) *WebSocket {
	checkOrigin := sameOrigin
	switch {
	case c.Development:
		checkOrigin = func(r *http.Request) bool {
			return true
		}
	case len(c.AllowedOrigins) > 0:
		origins := slices.Clone(c.AllowedOrigins)
		checkOrigin = func(r *http.Request) bool {
			return slices.Contains(origins, r.Header.Get("Origin"))
		}
	}

	return &WebSocket{Upgrader: websocket.Upgrader{CheckOrigin: checkOrigin}}
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
