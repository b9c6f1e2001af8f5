package server

import (
	"net/http"
	"time"
)

// NewServer wraps the app in an http.Server listening on the configured port.
func NewServer(app *App) *http.Server {
	return &http.Server{
		Addr:              app.Config.Addr(),
		Handler:           app.Engine,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
