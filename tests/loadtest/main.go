package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const numWorkers = 32

var (
	baseURL  = flag.String("url", "http://127.0.0.1:8080", "cellar API base URL")
	duration = flag.Duration("duration", 10*time.Second, "duration of each phase")
)

var sortKeys = []string{"name", "vintage", "peakYear", "country", "style", "location"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type fixture struct {
	wineIDs []string
	styles  []string
}

func main() {
	flag.Parse()

	fmt.Println("=== Cellar Load Test ===")
	fmt.Printf("Workers: %d | Duration per phase: %s | Target: %s\n\n", numWorkers, *duration, *baseURL)

	fmt.Print("Waiting for server... ")
	fx, err := waitForCatalog()
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	fmt.Printf("OK (%d wines)\n", len(fx.wineIDs))
	if len(fx.wineIDs) == 0 {
		fmt.Println("catalog is empty, nothing to exercise")
		return
	}

	fmt.Println("\n--- Phase 1: Read-only (wines, wine, journal, facets) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doListWines(rng, fx)
		case r < 0.75:
			return doGetWine(rng, fx)
		case r < 0.95:
			return doGet("/journal")
		default:
			return doGet("/facets")
		}
	})

	// Every consume is followed by deleting its log, so the ledger ends
	// where it started.
	fmt.Println("\n--- Phase 2: Mixed load (20% consume+undo, 80% reads) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doConsumeAndUndo(rng, fx)
		case r < 0.70:
			return doListWines(rng, fx)
		default:
			return doGet("/journal")
		}
	})

	fmt.Println()
	r := doGet("/verify")
	fmt.Printf("Ledger check: HTTP %d\n", r.status)
}

func waitForCatalog() (*fixture, error) {
	var lastErr error
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/wines")
		if err != nil {
			lastErr = err
			time.Sleep(200 * time.Millisecond)
			continue
		}
		var list struct {
			Wines []struct {
				ID    string `json:"id"`
				Style string `json:"style"`
			} `json:"wines"`
		}
		err = json.NewDecoder(resp.Body).Decode(&list)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		fx := &fixture{}
		seen := map[string]bool{}
		for _, w := range list.Wines {
			fx.wineIDs = append(fx.wineIDs, w.ID)
			if w.Style != "" && !seen[w.Style] {
				seen[w.Style] = true
				fx.styles = append(fx.styles, w.Style)
			}
		}
		return fx, nil
	}
	return nil, fmt.Errorf("server not responding: %w", lastErr)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 80))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 80))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func send(endpoint, method, path string, body []byte, want int) (result, []byte) {
	req, err := http.NewRequest(method, *baseURL+path, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, nil
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}, data
}

func doGet(path string) result {
	r, _ := send("GET "+path, http.MethodGet, path, nil, http.StatusOK)
	return r
}

func doListWines(rng *rand.Rand, fx *fixture) result {
	q := url.Values{}
	q.Set("sort", sortKeys[rng.Intn(len(sortKeys))])
	if len(fx.styles) > 0 && rng.Float64() < 0.5 {
		q.Add("style", fx.styles[rng.Intn(len(fx.styles))])
	}
	if rng.Float64() < 0.3 {
		q.Set("inCellar", "true")
	}
	r, _ := send("GET /wines", http.MethodGet, "/wines?"+q.Encode(), nil, http.StatusOK)
	return r
}

func doGetWine(rng *rand.Rand, fx *fixture) result {
	id := fx.wineIDs[rng.Intn(len(fx.wineIDs))]
	r, _ := send("GET /wines/{id}", http.MethodGet, "/wines/"+url.PathEscape(id), nil, http.StatusOK)
	return r
}

func doConsumeAndUndo(rng *rand.Rand, fx *fixture) result {
	id := fx.wineIDs[rng.Intn(len(fx.wineIDs))]
	body, _ := json.Marshal(map[string]any{"quantity": 1, "notes": "load test"})
	r, data := send("POST /wines/{id}/consume", http.MethodPost, "/wines/"+url.PathEscape(id)+"/consume", body, http.StatusCreated)
	if r.err {
		return r
	}
	var created struct {
		Log struct {
			Key string `json:"key"`
		} `json:"log"`
	}
	if err := json.Unmarshal(data, &created); err != nil || created.Log.Key == "" {
		r.err = true
		return r
	}
	undo, _ := send("DELETE /logs/{key}", http.MethodDelete, "/logs/"+created.Log.Key, nil, http.StatusNoContent)
	if undo.err {
		return undo
	}
	return r
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
