// Package metrics records evaluation outcomes and latencies.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"yqhp/calc-engine/internal/expression"
)

const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(time.Minute / time.Microsecond)
	sigFigs          = 3
)

// LatencySummary summarizes recorded latencies in microseconds.
type LatencySummary struct {
	Min  int64   `json:"min"`
	Mean float64 `json:"mean"`
	P50  int64   `json:"p50"`
	P95  int64   `json:"p95"`
	P99  int64   `json:"p99"`
	Max  int64   `json:"max"`
}

// Snapshot is a point-in-time copy of the recorded metrics.
type Snapshot struct {
	Total          int64            `json:"total"`
	Succeeded      int64            `json:"succeeded"`
	Failed         int64            `json:"failed"`
	Rejected       int64            `json:"rejected"`
	FailuresByKind map[string]int64 `json:"failures_by_kind"`
	LatencyMicros  LatencySummary   `json:"latency_us"`
}

// Recorder is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	succeeded int64
	rejected  int64
	failures  map[expression.ErrorKind]int64
	latency   *hdrhistogram.Histogram
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		failures: make(map[expression.ErrorKind]int64),
		latency:  hdrhistogram.New(minLatencyMicros, maxLatencyMicros, sigFigs),
	}
}

// Observe records one pipeline run. err is the pipeline error, nil on success.
func (r *Recorder) Observe(d time.Duration, err error) {
	micros := d.Microseconds()
	if micros < minLatencyMicros {
		micros = minLatencyMicros
	}
	if micros > maxLatencyMicros {
		micros = maxLatencyMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.latency.RecordValue(micros)
	if err == nil {
		r.succeeded++
		return
	}
	kind := expression.KindOf(err)
	if kind == "" {
		kind = "unknown"
	}
	r.failures[kind]++
}

// Reject records a request refused before evaluation, e.g. over the length limit.
func (r *Recorder) Reject() {
	r.mu.Lock()
	r.rejected++
	r.mu.Unlock()
}

// Snapshot returns a copy of the current metrics.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Succeeded:      r.succeeded,
		Rejected:       r.rejected,
		FailuresByKind: make(map[string]int64, len(r.failures)),
	}
	for kind, n := range r.failures {
		s.FailuresByKind[string(kind)] = n
		s.Failed += n
	}
	s.Total = s.Succeeded + s.Failed + s.Rejected

	if r.latency.TotalCount() > 0 {
		s.LatencyMicros = LatencySummary{
			Min:  r.latency.Min(),
			Mean: r.latency.Mean(),
			P50:  r.latency.ValueAtQuantile(50),
			P95:  r.latency.ValueAtQuantile(95),
			P99:  r.latency.ValueAtQuantile(99),
			Max:  r.latency.Max(),
		}
	}
	return s
}

// Reset clears all recorded metrics.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.succeeded = 0
	r.rejected = 0
	r.failures = make(map[expression.ErrorKind]int64)
	r.latency.Reset()
}
