// Package httpserver wraps net/http.Server with a validated listen address,
// configurable timeouts and a bounded graceful shutdown.
package httpserver
