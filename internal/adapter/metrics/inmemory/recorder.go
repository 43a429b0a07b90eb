package inmemory

import (
	"sync"

	"pillforge/internal/domain/planner"
)

type Snapshot struct {
	SearchTotal     uint64  `json:"search_total"`
	SearchRejected  uint64  `json:"search_rejected"`
	SearchFailure   uint64  `json:"search_failure"`
	NodesTotal      uint64  `json:"nodes_total"`
	CacheHitsTotal  uint64  `json:"cache_hits_total"`
	BudgetExhausted uint64  `json:"budget_exhausted"`
	ElapsedMsTotal  uint64  `json:"elapsed_ms_total"`
	AvgNodes        float64 `json:"avg_nodes"`
	AvgElapsedMs    float64 `json:"avg_elapsed_ms"`
}

// Recorder keeps search KPIs in process memory. Rejected requests are
// counted separately from engine failures so input noise does not hide
// real faults.
type Recorder struct {
	mu        sync.Mutex
	searches  uint64
	rejected  uint64
	failures  uint64
	nodes     uint64
	cacheHits uint64
	exhausted uint64
	elapsedMs uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordSearch(stats planner.SearchStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
	r.nodes += uint64(stats.Nodes)
	r.cacheHits += uint64(stats.CacheHits)
	if stats.Exhausted {
		r.exhausted++
	}
	if stats.ElapsedMs > 0 {
		r.elapsedMs += uint64(stats.ElapsedMs)
	}
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		SearchTotal:     r.searches,
		SearchRejected:  r.rejected,
		SearchFailure:   r.failures,
		NodesTotal:      r.nodes,
		CacheHitsTotal:  r.cacheHits,
		BudgetExhausted: r.exhausted,
		ElapsedMsTotal:  r.elapsedMs,
	}
	if r.searches > 0 {
		out.AvgNodes = float64(r.nodes) / float64(r.searches)
		out.AvgElapsedMs = float64(r.elapsedMs) / float64(r.searches)
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
