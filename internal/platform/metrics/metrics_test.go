package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestSnapshotCountsRequests(t *testing.T) {
	c := New()
	c.Record("GET", "/employees/", 200, 10*time.Millisecond)
	c.Record("GET", "/employees/", 200, 30*time.Millisecond)
	c.Record("POST", "/tasks/", 500, 0)
	c.Record("POST", "/tasks/", 429, 0)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 4 {
		t.Fatalf("expected 4 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 || snap["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("unexpected error counters: %+v", snap)
	}
	if snap["avgDurationMs"].(float64) != 10 {
		t.Fatalf("expected 10ms average, got %v", snap["avgDurationMs"])
	}

	routes := snap["routes"].([]RouteSnapshot)
	if len(routes) != 2 || routes[0].Route != "GET /employees/" || routes[0].Requests != 2 {
		t.Fatalf("unexpected routes: %+v", routes)
	}
	if routes[1].Statuses["500"] != 1 || routes[1].Statuses["429"] != 1 {
		t.Fatalf("unexpected status breakdown: %+v", routes[1].Statuses)
	}
}

func TestRecordAcquire(t *testing.T) {
	c := New()
	c.RecordAcquire(2*time.Microsecond, nil)
	c.RecordAcquire(4*time.Microsecond, errors.New("pool closed"))

	snap := c.Snapshot()
	if snap["dbAcquiresTotal"].(uint64) != 2 || snap["dbAcquireFailures"].(uint64) != 1 {
		t.Fatalf("unexpected acquire counters: %+v", snap)
	}
	if snap["dbAvgAcquireWaitUs"].(float64) != 3 {
		t.Fatalf("expected 3us average wait, got %v", snap["dbAvgAcquireWaitUs"])
	}
}
