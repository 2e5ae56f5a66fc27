package metrics

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-local request counters. It is safe for concurrent use.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	acquires        uint64
	acquireFailures uint64
	acquireWaitUs   uint64

	mu     sync.Mutex
	routes map[string]*routeStats
}

type routeStats struct {
	count    uint64
	statuses map[string]uint64
}

type RouteSnapshot struct {
	Route    string            `json:"route"`
	Requests uint64            `json:"requests"`
	Statuses map[string]uint64 `json:"statuses"`
}

func New() *Collector {
	return &Collector{routes: map[string]*routeStats{}}
}

func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))

	key := method + " " + route
	c.mu.Lock()
	stats, ok := c.routes[key]
	if !ok {
		stats = &routeStats{statuses: map[string]uint64{}}
		c.routes[key] = stats
	}
	stats.count++
	stats.statuses[strconv.Itoa(status)]++
	c.mu.Unlock()
}

// RecordAcquire tracks how long requests wait for a database handle.
func (c *Collector) RecordAcquire(wait time.Duration, err error) {
	atomic.AddUint64(&c.acquires, 1)
	if err != nil {
		atomic.AddUint64(&c.acquireFailures, 1)
	}
	atomic.AddUint64(&c.acquireWaitUs, uint64(wait.Microseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	acquires := atomic.LoadUint64(&c.acquires)
	avgWait := float64(0)
	if acquires > 0 {
		avgWait = float64(atomic.LoadUint64(&c.acquireWaitUs)) / float64(acquires)
	}

	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"rateLimitedTotal":   limited,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"dbAcquiresTotal":    acquires,
		"dbAcquireFailures":  atomic.LoadUint64(&c.acquireFailures),
		"dbAvgAcquireWaitUs": avgWait,
		"routes":             c.routeSnapshots(),
	}
}

func (c *Collector) routeSnapshots() []RouteSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RouteSnapshot, 0, len(c.routes))
	for route, stats := range c.routes {
		statuses := make(map[string]uint64, len(stats.statuses))
		for code, n := range stats.statuses {
			statuses[code] = n
		}
		out = append(out, RouteSnapshot{Route: route, Requests: stats.count, Statuses: statuses})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}
