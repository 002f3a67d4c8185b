// Loadtest is a concurrent HTTP load testing tool for the web app. It sends
// greeting requests with a distinct name per request and checks that every
// response echoes exactly its own name, alongside latency percentiles and
// status code counts.
//
// Usage:
//
//	go run ./scripts/loadtest -url http://localhost:8080 -concurrency 10 -requests 1000
//	go run ./scripts/loadtest -url http://localhost:8080 -concurrency 50 -requests 5000 -out summary.json
//
// Exit codes:
//
//	0 - All requests succeeded and matched
//	1 - Setup error
//	2 - Failed or mismatched responses
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/pflag"
)

type summary struct {
	Target        string        `json:"target"`
	Requests      int           `json:"requests"`
	Concurrency   int           `json:"concurrency"`
	Success       int32         `json:"success"`
	Failure       int32         `json:"failure"`
	Mismatched    int32         `json:"mismatched"`
	DurationMS    int64         `json:"duration_ms"`
	ThroughputRPS float64       `json:"throughput_rps"`
	StatusCodes   map[int]int32 `json:"status_codes"`
	P50           float64       `json:"p50_ms"`
	P90           float64       `json:"p90_ms"`
	P95           float64       `json:"p95_ms"`
	P99           float64       `json:"p99_ms"`
}

func main() {
	base := pflag.String("url", "http://localhost:8080", "Base URL of the web app")
	concurrency := pflag.Int("concurrency", 10, "Number of concurrent workers")
	requests := pflag.Int("requests", 100, "Total number of requests to send")
	timeout := pflag.Duration("timeout", 10*time.Second, "Per-request timeout")
	outJSON := pflag.String("out", "", "Write JSON summary to this file (optional)")
	verbose := pflag.BoolP("verbose", "v", false, "Verbose per-request logging to stdout")
	pflag.Parse()

	target, err := url.JoinPath(*base, "/api/hello")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid url: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var success, failure, mismatched int32

	var latMu sync.Mutex
	latencies := make([]time.Duration, 0, *requests)

	var statusMu sync.Mutex
	statusCodes := make(map[int]int32)

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				name := fmt.Sprintf("caller-%d", idx)
				start := time.Now()

				resp, err := client.Get(target + "?name=" + url.QueryEscape(name))
				dur := time.Since(start)

				latMu.Lock()
				latencies = append(latencies, dur)
				latMu.Unlock()

				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				body, readErr := io.ReadAll(resp.Body)
				resp.Body.Close()

				statusMu.Lock()
				statusCodes[resp.StatusCode]++
				statusMu.Unlock()

				if readErr != nil || resp.StatusCode != http.StatusOK {
					atomic.AddInt32(&failure, 1)
					continue
				}

				if want := "Hello, " + name + "!"; string(body) != want {
					atomic.AddInt32(&mismatched, 1)
					fmt.Printf("[%d] idx=%d mismatch: got %q want %q\n", workerID, idx, body, want)
					continue
				}

				atomic.AddInt32(&success, 1)
				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d dur=%v\n", workerID, idx, resp.StatusCode, dur)
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	total := time.Since(testStart)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pick := func(p float64) time.Duration {
		if len(latencies) == 0 {
			return 0
		}
		return latencies[int(float64(len(latencies)-1)*p)]
	}

	report := summary{
		Target:        target,
		Requests:      *requests,
		Concurrency:   *concurrency,
		Success:       success,
		Failure:       failure,
		Mismatched:    mismatched,
		DurationMS:    total.Milliseconds(),
		ThroughputRPS: float64(*requests) / total.Seconds(),
		StatusCodes:   statusCodes,
		P50:           float64(pick(0.50).Microseconds()) / 1000.0,
		P90:           float64(pick(0.90).Microseconds()) / 1000.0,
		P95:           float64(pick(0.95).Microseconds()) / 1000.0,
		P99:           float64(pick(0.99).Microseconds()) / 1000.0,
	}

	fmt.Println("--- Load Test Summary ---")
	fmt.Printf("Target: %s\n", target)
	fmt.Printf("Requests: %d  Concurrency: %d\n", *requests, *concurrency)
	fmt.Printf("Success: %d  Failure: %d  Mismatched: %d\n", success, failure, mismatched)
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", total, report.ThroughputRPS)

	fmt.Println("\nStatus codes:")
	codes := make([]int, 0, len(statusCodes))
	for code := range statusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("  %d -> %d\n", code, statusCodes[code])
	}

	fmt.Printf("\nLatency ms: p50=%.3f p90=%.3f p95=%.3f p99=%.3f\n", report.P50, report.P90, report.P95, report.P99)
	fmt.Printf("\nGOMAXPROCS=%d  NumGoroutine=%d\n", runtime.GOMAXPROCS(0), runtime.NumGoroutine())

	if *outJSON != "" {
		f, err := os.Create(*outJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create json file: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		f.Close()
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if failure > 0 || mismatched > 0 {
		os.Exit(2)
	}
}
