package main

import (
	"net/http"

	"github.com/angeloszaimis/simple-web-app/internal/handler"
	"github.com/angeloszaimis/simple-web-app/internal/metrics"
)

type route struct {
	pattern string
	label   string
	handle  http.HandlerFunc
}

func appRoutes(home *handler.HomeHandler) []route {
	return []route{
		{pattern: "GET /{$}", label: "/", handle: home.Welcome},
		{pattern: "GET /api/hello", label: "/api/hello", handle: home.Hello},
		{pattern: "GET /api/info", label: "/api/info", handle: home.Info},
	}
}

func setupRouter(home *handler.HomeHandler, mw *handler.Middleware, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	for _, r := range appRoutes(home) {
		mux.Handle(r.pattern, mw.WrapFunc(r.label, r.handle))
	}

	mux.HandleFunc("GET /healthz", home.Health)

	if collector != nil {
		mux.HandleFunc("GET /metrics", collector.Handler())
		mux.Handle("GET /metrics/prometheus", collector.PrometheusHandler())
	}

	return mux
}
