package harmony

const (
	HeatMax      = 10
	HeatBandLow  = 4
	HeatBandHigh = 6

	HeatBandIntensityPct    = 15
	HeatBandPerfectionBonus = 3
	HeatHighIntensityPct    = -20
	HeatMaxIntensityPct     = -40
	HeatMaxCompletionLoss   = 25
	HeatMaxPerfectionLoss   = 15

	ComboWindowLen         = 3
	ComboCompletionBonus   = 18
	ComboPerfectionBonus   = 10
	ComboSurgeIntensityPct = 25

	PatternStackPct            = 6
	PatternMaxStacks           = 8
	PatternBreakCompletionLoss = 10
	PatternBreakCapPenalty     = 5
	PatternBreakPoolLoss       = 8

	StreakCritPctPerPoint      = 4
	StreakSuccessPctPerPoint   = 3
	StreakMaxStrength          = 5
	StreakSwitchStabilityLoss  = 6
	StreakSwitchCompletionLoss = 8
)

// comboTriples are the category sequences a combo craft rewards. The
// window is cleared after a match so triples never overlap.
var comboTriples = [][ComboWindowLen]string{
	{"fusion", "refine", "stabilize"},
	{"refine", "refine", "fusion"},
	{"stabilize", "support", "fusion"},
}
