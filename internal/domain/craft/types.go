package craft

import "pillforge/internal/domain/harmony"

type Category string

const (
	CategoryFusion    Category = "fusion"
	CategoryRefine    Category = "refine"
	CategoryStabilize Category = "stabilize"
	CategorySupport   Category = "support"
)

// Expr is a data-driven scaling expression. The effective value is
// Value, multiplied by the referenced stat (resolved under the Scaling
// mode) and by the Equation result, plus Add, clamped by Max. Unknown
// stat or scaling names and malformed equations contribute a neutral
// factor of 1 so a bad catalog entry degrades instead of aborting the
// craft.
type Expr struct {
	Value    float64 `json:"value"`
	Stat     string  `json:"stat,omitempty"`
	Scaling  string  `json:"scaling,omitempty"`
	Equation string  `json:"equation,omitempty"`
	Add      *Expr   `json:"add,omitempty"`
	Max      *Expr   `json:"max,omitempty"`
}

const (
	ScalingTotal = "total"
	ScalingPure  = "pure"
)

// Action is the static definition of one crafting move. Costs are
// paid up front; gain expressions are evaluated against the effective
// stat environment. A zero SuccessChance means the move cannot miss.
type Action struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Category      Category `json:"category"`
	PoolCost      float64  `json:"pool_cost,omitempty"`
	StabilityCost float64  `json:"stability_cost,omitempty"`
	Toxicity      float64  `json:"toxicity,omitempty"`
	SuccessChance float64  `json:"success_chance,omitempty"`
	CanCrit       bool     `json:"can_crit,omitempty"`
	CooldownTurns int      `json:"cooldown_turns,omitempty"`
	HeatDelta     int      `json:"heat_delta,omitempty"`
	PreserveCap   bool     `json:"preserve_cap,omitempty"`
	UsesItem      string   `json:"uses_item,omitempty"`
	Completion    *Expr    `json:"completion,omitempty"`
	Perfection    *Expr    `json:"perfection,omitempty"`
	StabilityGain *Expr    `json:"stability_gain,omitempty"`
	PoolGain      *Expr    `json:"pool_gain,omitempty"`
	GrantBuff     string   `json:"grant_buff,omitempty"`
	GrantStacks   int      `json:"grant_stacks,omitempty"`
}

// Effect is a block of deltas run by a buff, either every turn or
// when an action of the matching category resolves. SelfStacks adjusts
// the owning buff's stack count after the block runs.
type Effect struct {
	Completion *Expr `json:"completion,omitempty"`
	Perfection *Expr `json:"perfection,omitempty"`
	Stability  *Expr `json:"stability,omitempty"`
	Pool       *Expr `json:"pool,omitempty"`
	Toxicity   *Expr `json:"toxicity,omitempty"`
	SelfStacks int   `json:"self_stacks,omitempty"`
}

// Buff is the static definition of a stacking effect. Percentage
// modifiers scale with the stack count, except on tick-down buffs
// where stacks encode the remaining duration and the modifiers apply
// flat.
type Buff struct {
	Name             string   `json:"name"`
	MaxStacks        int      `json:"max_stacks,omitempty"`
	TickDown         bool     `json:"tick_down,omitempty"`
	ControlPct       float64  `json:"control_pct,omitempty"`
	IntensityPct     float64  `json:"intensity_pct,omitempty"`
	CritChancePct    float64  `json:"crit_chance_pct,omitempty"`
	CritMultPct      float64  `json:"crit_mult_pct,omitempty"`
	SuccessPct       float64  `json:"success_pct,omitempty"`
	PoolCostPct      float64  `json:"pool_cost_pct,omitempty"`
	StabilityCostPct float64  `json:"stability_cost_pct,omitempty"`
	Category         Category `json:"category,omitempty"`
	OnCategory       *Effect  `json:"on_category,omitempty"`
	PerTurn          *Effect  `json:"per_turn,omitempty"`
}

// Recipe bundles the static parameters of one crafting session: the
// targets, the crafter's base stats, the ambient condition, the active
// harmony variant and the catalog of available actions and buffs.
type Recipe struct {
	Name             string          `json:"name,omitempty"`
	CompletionTarget float64         `json:"completion_target"`
	PerfectionTarget float64         `json:"perfection_target,omitempty"`
	Control          float64         `json:"control"`
	Intensity        float64         `json:"intensity"`
	StabilityDecay   float64         `json:"stability_decay,omitempty"`
	PoolCostCut      float64         `json:"pool_cost_cut,omitempty"`
	StabilityCostCut float64         `json:"stability_cost_cut,omitempty"`
	Condition        Condition       `json:"condition,omitempty"`
	Harmony          harmony.Kind    `json:"harmony,omitempty"`
	HarmonyCycle     []Category      `json:"harmony_cycle,omitempty"`
	Actions          []Action        `json:"actions"`
	Buffs            map[string]Buff `json:"buffs,omitempty"`
}

// State is the full mutable condition of a craft in progress. It is a
// value type; Apply never mutates its input.
type State struct {
	Pool                  float64        `json:"pool"`
	PoolCap               float64        `json:"pool_cap"`
	Stability             float64        `json:"stability"`
	StabilityCapBase      float64        `json:"stability_cap_base"`
	StabilityPenalty      float64        `json:"stability_penalty,omitempty"`
	Completion            float64        `json:"completion"`
	Perfection            float64        `json:"perfection"`
	CritChance            float64        `json:"crit_chance,omitempty"`
	CritMult              float64        `json:"crit_mult,omitempty"`
	SuccessBonus          float64        `json:"success_bonus,omitempty"`
	PoolCostFactor        float64        `json:"pool_cost_factor,omitempty"`
	StabilityCostFactor   float64        `json:"stability_cost_factor,omitempty"`
	Toxicity              float64        `json:"toxicity,omitempty"`
	ToxicityCap           float64        `json:"toxicity_cap,omitempty"`
	Cooldowns             map[string]int `json:"cooldowns,omitempty"`
	Items                 map[string]int `json:"items,omitempty"`
	Buffs                 map[string]int `json:"buffs,omitempty"`
	Harmony               harmony.State  `json:"harmony"`
	CompletionBonusStacks int            `json:"completion_bonus_stacks,omitempty"`
	StepIndex             int            `json:"step_index,omitempty"`
	History               []string       `json:"history,omitempty"`
}

// Snapshot is one observed craft: static recipe plus live state.
type Snapshot struct {
	Recipe Recipe `json:"recipe"`
	State  State  `json:"state"`
}

// Outcome reports the projected result of one action without
// committing it: the successor state, the per-track deltas and the
// effective success chance.
type Outcome struct {
	Next          State    `json:"next"`
	Completion    float64  `json:"completion"`
	Perfection    float64  `json:"perfection"`
	Stability     float64  `json:"stability"`
	Pool          float64  `json:"pool"`
	Toxicity      float64  `json:"toxicity"`
	SuccessChance float64  `json:"success_chance"`
	Events        []string `json:"events,omitempty"`
}
