package planner

// Config is the caller-tunable search surface. Zero values take the
// defaults; out-of-range values clamp into the documented bands so a
// hostile or stale profile cannot stall the engine.
type Config struct {
	// Depth is the lookahead horizon in turns.
	Depth int `json:"depth,omitempty"`
	// TimeBudgetMs bounds the wall clock spent searching.
	TimeBudgetMs int `json:"time_budget_ms,omitempty"`
	// MaxNodes bounds the number of settlements simulated.
	MaxNodes int `json:"max_nodes,omitempty"`
	// BeamWidth is how many states survive each depth level.
	BeamWidth int `json:"beam_width,omitempty"`
	// Training softens risk weighting for practice runs where the
	// materials are cheap and a failed craft costs little.
	Training bool `json:"training,omitempty"`
}

const (
	DefaultDepth        = 6
	DefaultTimeBudgetMs = 300
	DefaultMaxNodes     = 150000
	DefaultBeamWidth    = 12

	minDepth        = 1
	maxDepth        = 12
	minTimeBudgetMs = 10
	maxTimeBudgetMs = 5000
	minMaxNodes     = 100
	maxMaxNodes     = 2000000
	minBeamWidth    = 1
	maxBeamWidth    = 64
)

// Clamped returns the config with every knob forced into its band.
func (c Config) Clamped() Config {
	out := c
	out.Depth = clampInt(out.Depth, minDepth, maxDepth, DefaultDepth)
	out.TimeBudgetMs = clampInt(out.TimeBudgetMs, minTimeBudgetMs, maxTimeBudgetMs, DefaultTimeBudgetMs)
	out.MaxNodes = clampInt(out.MaxNodes, minMaxNodes, maxMaxNodes, DefaultMaxNodes)
	out.BeamWidth = clampInt(out.BeamWidth, minBeamWidth, maxBeamWidth, DefaultBeamWidth)
	return out
}

func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
