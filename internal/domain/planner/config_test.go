package planner

import "testing"

func TestConfigClamped(t *testing.T) {
	cases := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero values take defaults",
			in:   Config{},
			want: Config{Depth: DefaultDepth, TimeBudgetMs: DefaultTimeBudgetMs, MaxNodes: DefaultMaxNodes, BeamWidth: DefaultBeamWidth},
		},
		{
			name: "oversized values clamp to the ceiling",
			in:   Config{Depth: 99, TimeBudgetMs: 900000, MaxNodes: 1 << 30, BeamWidth: 500},
			want: Config{Depth: 12, TimeBudgetMs: 5000, MaxNodes: 2000000, BeamWidth: 64},
		},
		{
			name: "undersized values clamp to the floor",
			in:   Config{Depth: -3, TimeBudgetMs: 1, MaxNodes: 7, BeamWidth: -1},
			want: Config{Depth: 1, TimeBudgetMs: 10, MaxNodes: 100, BeamWidth: 1},
		},
		{
			name: "training flag survives clamping",
			in:   Config{Depth: 4, Training: true},
			want: Config{Depth: 4, TimeBudgetMs: DefaultTimeBudgetMs, MaxNodes: DefaultMaxNodes, BeamWidth: DefaultBeamWidth, Training: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Clamped()
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
