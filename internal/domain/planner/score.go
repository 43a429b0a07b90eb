package planner

import "pillforge/internal/domain/craft"

// weights shape the static evaluation. Two presets exist: the serious
// run protects stability and the pool, the training run chases track
// progress and tolerates thinner margins.
type weights struct {
	completion  float64
	perfection  float64
	finish      float64
	stability   float64
	pool        float64
	toxicity    float64
	death       float64
	safetyFloor float64
	poolFloor   float64
}

func weightsFor(cfg Config) weights {
	if cfg.Training {
		return weights{
			completion:  40,
			perfection:  45,
			finish:      15,
			stability:   18,
			pool:        6,
			toxicity:    4,
			death:       80,
			safetyFloor: 0.15,
			poolFloor:   0.10,
		}
	}
	return weights{
		completion:  55,
		perfection:  30,
		finish:      40,
		stability:   35,
		pool:        10,
		toxicity:    6,
		death:       200,
		safetyFloor: 0.25,
		poolFloor:   0.15,
	}
}

// scoreState is the memoizable static evaluation of one craft state.
// Progress toward each target saturates at the target, a finished
// craft collects the finish bonus, a broken one eats the death
// penalty, and thin stability or pool margins are taxed
// proportionally.
func scoreState(rc *craft.Recipe, st *craft.State, w weights) float64 {
	s := w.completion * progress(st.Completion, rc.CompletionTarget)
	s += w.perfection * progress(st.Perfection, rc.PerfectionTarget)

	if st.Finished(rc) {
		s += w.finish
		return s
	}
	if st.Stability <= 0 {
		return s - w.death
	}

	if c := st.StabilityCap(); c > 0 {
		margin := st.Stability / c
		if margin < w.safetyFloor {
			s -= w.stability * (w.safetyFloor - margin) / w.safetyFloor
		}
	}
	if st.PoolCap > 0 {
		reserve := st.Pool / st.PoolCap
		if reserve < w.poolFloor {
			s -= w.pool * (w.poolFloor - reserve) / w.poolFloor
		}
	}
	if st.ToxicityCap > 0 {
		s -= w.toxicity * (st.Toxicity / st.ToxicityCap)
	}
	return s
}

func progress(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := value / target
	if p > 1 {
		return 1
	}
	return p
}
