package craft

import (
	"math"
	"strconv"
	"strings"
)

// Fingerprint renders the state into a canonical string. Map entries
// are emitted in sorted key order and floats round to four decimals,
// so two states reached through different action orders but holding
// the same values produce the same key. The action history is left
// out on purpose.
func (s *State) Fingerprint() string {
	var b strings.Builder
	b.Grow(256)

	writeF := func(v float64) {
		b.WriteString(strconv.FormatFloat(round4(v), 'f', -1, 64))
		b.WriteByte('|')
	}
	writeI := func(v int) {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('|')
	}
	writeMap := func(m map[string]int) {
		for _, k := range sortedKeys(m) {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(strconv.Itoa(m[k]))
			b.WriteByte(';')
		}
		b.WriteByte('|')
	}

	writeF(s.Pool)
	writeF(s.PoolCap)
	writeF(s.Stability)
	writeF(s.StabilityCapBase)
	writeF(s.StabilityPenalty)
	writeF(s.Completion)
	writeF(s.Perfection)
	writeF(s.CritChance)
	writeF(s.CritMult)
	writeF(s.SuccessBonus)
	writeF(s.PoolCostFactor)
	writeF(s.StabilityCostFactor)
	writeF(s.Toxicity)
	writeF(s.ToxicityCap)
	writeMap(s.Cooldowns)
	writeMap(s.Items)
	writeMap(s.Buffs)
	writeI(s.CompletionBonusStacks)
	writeI(s.StepIndex)

	h := &s.Harmony
	b.WriteString(string(h.Kind))
	b.WriteByte('|')
	writeI(h.Heat)
	writeBool(&b, h.Overheated)
	b.WriteString(strings.Join(h.Window, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(h.Cycle, ","))
	b.WriteByte('|')
	writeI(h.CyclePos)
	writeI(h.Stacks)
	writeI(h.SurgeTurns)
	b.WriteString(h.LastCategory)
	b.WriteByte('|')
	writeI(h.Strength)
	writeBool(&b, h.SwitchPenalized)

	return b.String()
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteString("1|")
		return
	}
	b.WriteString("0|")
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
