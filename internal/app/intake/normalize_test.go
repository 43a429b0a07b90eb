package intake

import "testing"

func TestMatcherResolve(t *testing.T) {
	m := newMatcher([]string{"infuse", "temper", "steady", "qi_infusion"})

	cases := []struct {
		name      string
		in        string
		want      string
		wantScore float64
	}{
		{name: "exact", in: "infuse", want: "infuse", wantScore: 1},
		{name: "folded", in: "Qi Infusion", want: "qi_infusion", wantScore: 0.95},
		{name: "prefix", in: "tem", want: "temper", wantScore: 0.9},
		{name: "one edit away", in: "steadyy", want: "steady", wantScore: 0.64},
		{name: "too far off", in: "elixir", want: "", wantScore: 0},
		{name: "too short to fuzz", in: "xy", want: "", wantScore: 0},
		{name: "empty", in: "", want: "", wantScore: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, score := m.resolve(tc.in)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if diff := score - tc.wantScore; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected score %v, got %v", tc.wantScore, score)
			}
		})
	}
}

func TestMatcherResolveNilReceiver(t *testing.T) {
	var m *matcher
	if got, score := m.resolve("anything"); got != "" || score != 0 {
		t.Fatalf("expected nil matcher to resolve nothing, got %q/%v", got, score)
	}
}

func TestMatcherTieBreaksAlphabetically(t *testing.T) {
	m := newMatcher([]string{"brew_b", "brew_a"})
	got, _ := m.resolve("brew_")
	if got != "brew_a" {
		t.Fatalf("expected alphabetical tie-break, got %q", got)
	}
}

func TestFold(t *testing.T) {
	cases := map[string]string{
		" Qi-Infusion ": "qiinfusion",
		"HEAT_vent":     "heatvent",
		"steady":        "steady",
		"":              "",
	}
	for in, want := range cases {
		if got := fold(in); got != want {
			t.Fatalf("fold(%q): expected %q, got %q", in, want, got)
		}
	}
}
