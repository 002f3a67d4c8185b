// Package handler implements the HTTP handlers of the web app: the rendered
// welcome page, the greeting and info API endpoints and the liveness probe.
// It also provides the middleware that logs each request, tags it with a
// request ID and feeds the metrics collector.
package handler
