// Command bench sweeps the recommendation engine across lookahead
// depths and reports nodes, cache hits and wall time per depth. It is
// the offline tuning harness: point it at a captured snapshot, or run
// it bare to exercise the built-in demo recipe.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	sqlitecatalog "pillforge/internal/adapter/catalog/sqlite"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/harmony"
	"pillforge/internal/domain/planner"
)

// depthResult holds the best move and search bookkeeping for one depth.
type depthResult struct {
	Depth     int     `json:"depth"`
	ActionID  string  `json:"action_id"`
	Score     float64 `json:"score"`
	Nodes     int     `json:"nodes"`
	CacheHits int     `json:"cache_hits"`
	Exhausted bool    `json:"budget_exhausted,omitempty"`
	TimeMs    int64   `json:"time_ms"`
}

// benchOutput is the JSON-serializable result of a full sweep.
type benchOutput struct {
	Date    string        `json:"date"`
	Recipe  string        `json:"recipe"`
	Results []depthResult `json:"results"`
	TotalMs int64         `json:"total_ms"`
}

const usage = `Usage: bench [flags] [snapshot.json]

Positional arguments:
  snapshot.json   Captured craft snapshot (recipe plus live state);
                  omit to run the built-in demo recipe

Flags:
`

func main() {
	maxDepth := flag.Int("depth", planner.DefaultDepth, "deepest lookahead to sweep")
	beam := flag.Int("beam", planner.DefaultBeamWidth, "beam width per depth level")
	budget := flag.Int("budget", 2000, "per-search time budget in milliseconds")
	nodeCap := flag.Int("nodes", 500000, "per-search node ceiling")
	jsonOut := flag.Bool("json", false, "output results as JSON")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	snap := demoSnapshot()
	if args := flag.Args(); len(args) > 0 {
		loaded, err := loadSnapshot(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		snap = loaded
	}

	snap.Normalize()
	if err := snap.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Loaded %q: %d actions, %d buffs, completion target %.0f\n",
		snap.Recipe.Name, len(snap.Recipe.Actions), len(snap.Recipe.Buffs), snap.Recipe.CompletionTarget)

	runSweep(snap, *maxDepth, *beam, *budget, *nodeCap, *jsonOut)
}

func loadSnapshot(path string) (craft.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return craft.Snapshot{}, err
	}
	var snap craft.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return craft.Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return snap, nil
}

// demoSnapshot is a fresh craft over the default catalog, sized so the
// deeper sweep levels actually stress the beam.
func demoSnapshot() craft.Snapshot {
	buffs := make(map[string]craft.Buff)
	for _, b := range sqlitecatalog.DefaultBuffs() {
		buffs[b.Name] = b
	}
	return craft.Snapshot{
		Recipe: craft.Recipe{
			Name:             "jade-clarity-pill",
			CompletionTarget: 420,
			PerfectionTarget: 300,
			Control:          72,
			Intensity:        58,
			StabilityDecay:   2,
			Harmony:          harmony.KindHeat,
			Actions:          sqlitecatalog.DefaultActions(),
			Buffs:            buffs,
		},
		State: craft.State{
			Pool:             320,
			PoolCap:          320,
			Stability:        60,
			StabilityCapBase: 60,
		},
	}
}

func runDepth(snap craft.Snapshot, depth, beam, budgetMs, nodeCap int) (depthResult, error) {
	// Fresh planner per depth so memo hits from shallower sweeps do
	// not flatter the deeper timings.
	eng := planner.New(craft.NewService())
	res, err := eng.Recommend(snap, planner.Config{
		Depth:        depth,
		TimeBudgetMs: budgetMs,
		MaxNodes:     nodeCap,
		BeamWidth:    beam,
	})
	if err != nil {
		return depthResult{}, err
	}
	return depthResult{
		Depth:     depth,
		ActionID:  res.Best.ActionID,
		Score:     res.Best.Score,
		Nodes:     res.Stats.Nodes,
		CacheHits: res.Stats.CacheHits,
		Exhausted: res.Stats.Exhausted,
		TimeMs:    res.Stats.ElapsedMs,
	}, nil
}

func runSweep(snap craft.Snapshot, maxDepth, beam, budgetMs, nodeCap int, jsonOut bool) {
	var results []depthResult
	var totalMs int64

	for d := 1; d <= maxDepth; d++ {
		fmt.Fprintf(os.Stderr, "[%d/%d] depth=%d ...\n", d, maxDepth, d)
		r, err := runDepth(snap, d, beam, budgetMs, nodeCap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		results = append(results, r)
		totalMs += r.TimeMs
		fmt.Fprintf(os.Stderr, "  depth %d: %s %.1f in %.1fs\n",
			d, r.ActionID, r.Score, float64(r.TimeMs)/1000)
	}

	if jsonOut {
		out := benchOutput{
			Date:    time.Now().UTC().Format(time.RFC3339),
			Recipe:  snap.Recipe.Name,
			Results: results,
			TotalMs: totalMs,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
	} else {
		printTable(results, totalMs)
	}
}

func printTable(results []depthResult, totalMs int64) {
	const rule = "----- ------------ -------- ------------ ---------- --------"
	fmt.Printf("%5s %-12s %8s %12s %10s %8s\n", "Depth", "Action", "Score", "Nodes", "Hits", "Time")
	fmt.Println(rule)
	var totalNodes, totalHits int64
	exhausted := false
	for _, r := range results {
		totalNodes += int64(r.Nodes)
		totalHits += int64(r.CacheHits)
		mark := " "
		if r.Exhausted {
			mark = "*"
			exhausted = true
		}
		fmt.Printf("%5d %-12s %8.1f %12s %10s %7.1fs%s\n",
			r.Depth, r.ActionID, r.Score,
			humanize.Comma(int64(r.Nodes)), humanize.Comma(int64(r.CacheHits)),
			float64(r.TimeMs)/1000, mark)
	}
	fmt.Println(rule)
	fmt.Printf("%5s %-12s %8s %12s %10s %7.1fs\n", "", "TOTAL", "",
		humanize.Comma(totalNodes), humanize.Comma(totalHits), float64(totalMs)/1000)
	if exhausted {
		fmt.Println("* search budget exhausted at this depth")
	}
}
