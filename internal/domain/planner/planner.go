// Package planner searches the crafting state space for the best next
// action. The search is a beam over increasing depths: after every
// level a full recommendation exists, so budget exhaustion degrades to
// a shallower answer instead of none. Scores are memoized in an LRU
// transposition table keyed by the canonical state fingerprint.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"pillforge/internal/domain/craft"
)

var ErrNoAdmissibleAction = errors.New("no admissible action")

const (
	memoEntries        = 65536
	deadlineCheckEvery = 32
	maxAlternatives    = 3
)

type Planner struct {
	svc  craft.Service
	memo *lru.Cache[string, float64]
	now  func() time.Time
}

func New(svc craft.Service) *Planner {
	memo, _ := lru.New[string, float64](memoEntries)
	return &Planner{svc: svc, memo: memo, now: time.Now}
}

// Choice is one ranked root action with its first-turn deltas.
type Choice struct {
	ActionID      string         `json:"action_id"`
	Category      craft.Category `json:"category"`
	Score         float64        `json:"score"`
	Completion    float64        `json:"completion"`
	Perfection    float64        `json:"perfection"`
	Stability     float64        `json:"stability"`
	Pool          float64        `json:"pool"`
	SuccessChance float64        `json:"success_chance"`
}

type SearchStats struct {
	Nodes        int   `json:"nodes"`
	DepthReached int   `json:"depth_reached"`
	CacheHits    int   `json:"cache_hits"`
	Exhausted    bool  `json:"budget_exhausted"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// Result is a full recommendation: the chosen action, the runner-up
// roots, the projected line and the search bookkeeping.
type Result struct {
	Best         Choice      `json:"best"`
	Alternatives []Choice    `json:"alternatives,omitempty"`
	Rotation     []string    `json:"rotation"`
	Projected    craft.State `json:"projected"`
	Reasons      []string    `json:"reasons,omitempty"`
	Stats        SearchStats `json:"stats"`
}

type node struct {
	state craft.State
	key   string
	first int
	path  []string
	score float64
}

// Recommend searches from the snapshot under the clamped config. It
// returns ErrNoAdmissibleAction when the root offers no legal move,
// including crafts that already settled.
func (p *Planner) Recommend(snap craft.Snapshot, cfg Config) (Result, error) {
	cfg = cfg.Clamped()
	rc := &snap.Recipe
	w := weightsFor(cfg)
	prefix := scorePrefix(rc, cfg)

	start := p.now()
	deadline := start.Add(time.Duration(cfg.TimeBudgetMs) * time.Millisecond)

	var stats SearchStats
	var best *node
	rootBest := make(map[int]*node, len(rc.Actions))

	frontier := []node{{state: snap.State, first: -1}}
	nodes := 0
	exhausted := false

search:
	for depth := 1; depth <= cfg.Depth; depth++ {
		next := make([]node, 0, len(frontier)*len(rc.Actions))
		seen := make(map[string]struct{}, len(frontier)*len(rc.Actions))

		for fi := range frontier {
			parent := &frontier[fi]
			if parent.state.Terminal(rc) {
				continue
			}
			for ai := range rc.Actions {
				if nodes >= cfg.MaxNodes {
					exhausted = true
					break search
				}
				if nodes%deadlineCheckEvery == 0 && p.now().After(deadline) {
					exhausted = true
					break search
				}
				nodes++

				a := &rc.Actions[ai]
				st, err := p.svc.Apply(rc, parent.state, a)
				if err != nil {
					continue
				}

				key := st.Fingerprint()
				child := node{
					state: st,
					key:   key,
					first: parent.first,
					path:  appendPath(parent.path, a.ID),
				}
				if child.first < 0 {
					child.first = ai
				}
				child.score = p.memoScore(prefix, key, rc, &child.state, w, &stats)

				if best == nil || child.score > best.score {
					cp := child
					best = &cp
				}
				if cur, ok := rootBest[child.first]; !ok || child.score > cur.score {
					cp := child
					rootBest[child.first] = &cp
				}

				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				next = append(next, child)
			}
		}

		if len(next) == 0 {
			break
		}
		sort.SliceStable(next, func(i, j int) bool {
			return next[i].score > next[j].score
		})
		if len(next) > cfg.BeamWidth {
			next = next[:cfg.BeamWidth]
		}
		frontier = next
		stats.DepthReached = depth
	}

	stats.Nodes = nodes
	stats.Exhausted = exhausted
	stats.ElapsedMs = p.now().Sub(start).Milliseconds()

	if best == nil {
		return Result{Stats: stats}, ErrNoAdmissibleAction
	}

	rootAction := &rc.Actions[best.first]
	outcome, err := p.svc.Preview(rc, snap.State, rootAction)
	if err != nil {
		return Result{Stats: stats}, err
	}

	res := Result{
		Best:      choiceFor(rootAction, best.score, outcome),
		Rotation:  best.path,
		Projected: best.state,
		Reasons:   reasonsFor(rc, &snap.State, rootAction, outcome, best, exhausted),
		Stats:     stats,
	}

	alts := make([]*node, 0, len(rootBest))
	for first, n := range rootBest {
		if first == best.first {
			continue
		}
		alts = append(alts, n)
	}
	sort.Slice(alts, func(i, j int) bool {
		if alts[i].score != alts[j].score {
			return alts[i].score > alts[j].score
		}
		return alts[i].first < alts[j].first
	})
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	for _, n := range alts {
		a := &rc.Actions[n.first]
		out, err := p.svc.Preview(rc, snap.State, a)
		if err != nil {
			continue
		}
		res.Alternatives = append(res.Alternatives, choiceFor(a, n.score, out))
	}
	return res, nil
}

func (p *Planner) memoScore(prefix, key string, rc *craft.Recipe, st *craft.State, w weights, stats *SearchStats) float64 {
	mk := prefix + key
	if v, ok := p.memo.Get(mk); ok {
		stats.CacheHits++
		return v
	}
	v := scoreState(rc, st, w)
	p.memo.Add(mk, v)
	return v
}

// scorePrefix namespaces memo entries: the same state fingerprint
// scores differently under another recipe or weight preset.
func scorePrefix(rc *craft.Recipe, cfg Config) string {
	mode := "s"
	if cfg.Training {
		mode = "t"
	}
	return fmt.Sprintf("%s/%.2f/%.2f/%s#", rc.Name, rc.CompletionTarget, rc.PerfectionTarget, mode)
}

func choiceFor(a *craft.Action, score float64, out craft.Outcome) Choice {
	return Choice{
		ActionID:      a.ID,
		Category:      a.Category,
		Score:         score,
		Completion:    out.Completion,
		Perfection:    out.Perfection,
		Stability:     out.Stability,
		Pool:          out.Pool,
		SuccessChance: out.SuccessChance,
	}
}

func appendPath(path []string, id string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, id)
}
