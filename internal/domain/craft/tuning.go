package craft

const (
	// Critical chance above 100 converts into multiplier points at
	// this rate: 130/150 plays as 100/240, an expected 2.4x.
	CritOverflowRatio = 3.0

	NeutralCritMult  = 100.0
	GuaranteedChance = 100.0

	CompletionBonusBase       = 100.0
	CompletionBonusGrowth     = 1.3
	CompletionBonusControlPct = 10.0
	CompletionBonusMaxStacks  = 10

	ConditionMinPct = 25.0
	ConditionMaxPct = 100.0
)
