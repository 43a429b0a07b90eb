package intake

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// matchFloor is the lowest candidate score still accepted as a match.
const matchFloor = 0.55

// matcher resolves host-side names against a known vocabulary. Hosts
// rename and restyle identifiers between patches, so resolution runs
// exact, folded, prefix, then fuzzy, in that order.
type matcher struct {
	names  []string
	folded []string
}

func newMatcher(names []string) *matcher {
	m := &matcher{names: names, folded: make([]string, len(names))}
	for i, name := range names {
		m.folded[i] = fold(name)
	}
	return m
}

type candidate struct {
	name  string
	score float64
}

// resolve returns the best catalog name for raw and its confidence, or
// ("", 0) when nothing clears the floor.
func (m *matcher) resolve(raw string) (string, float64) {
	if m == nil || raw == "" {
		return "", 0
	}
	in := fold(raw)
	if in == "" {
		return "", 0
	}

	var cands []candidate
	for i, name := range m.names {
		if raw == name {
			return name, 1
		}
		cmp := m.folded[i]
		if in == cmp {
			cands = append(cands, candidate{name: name, score: 0.95})
			continue
		}
		if len(in) >= 2 && strings.HasPrefix(cmp, in) {
			cands = append(cands, candidate{name: name, score: 0.9})
			continue
		}
		if len(in) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, cmp)
		if dist > distanceLimit(len(cmp)) {
			continue
		}
		cands = append(cands, candidate{name: name, score: 0.72 - 0.08*float64(dist)})
	}
	if len(cands) == 0 {
		return "", 0
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score == cands[j].score {
			return cands[i].name < cands[j].name
		}
		return cands[i].score > cands[j].score
	})
	best := cands[0]
	if best.score < matchFloor {
		return "", 0
	}
	return best.name, best.score
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// fold lowercases and strips separator noise so "Qi Infusion",
// "qi_infusion" and "qi-infusion" all compare equal.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '_', '-':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
