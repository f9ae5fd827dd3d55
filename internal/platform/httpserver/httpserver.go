// Package httpserver wraps http.Server with sane timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// New returns an http.Server bound to addr serving handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
