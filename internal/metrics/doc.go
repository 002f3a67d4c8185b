// Package metrics provides request metrics collection for the web app.
//
// It uses a channel-based event pipeline to asynchronously collect, per route:
//   - Request counts and requests currently in flight
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the request path. Events are sent through a buffered channel with
// non-blocking semantics, so a slow collector drops samples instead of
// slowing requests down.
//
// Example usage:
//
//	collector := metrics.NewCollector(1024, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "/api/hello",
//		Method:     http.MethodGet,
//		Duration:   150 * time.Microsecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
//
// The same events feed Prometheus counters and histograms kept on a private
// registry, served by PrometheusHandler. On shutdown the collector drains the
// queued events before closing Done.
package metrics
