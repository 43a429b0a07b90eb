package planner

import (
	"testing"

	"pillforge/internal/domain/craft"
)

func scoreRecipe() craft.Recipe {
	return craft.Recipe{Name: "grade", CompletionTarget: 100, PerfectionTarget: 100}
}

func TestScoreState_ProgressSaturatesAtTarget(t *testing.T) {
	rc := scoreRecipe()
	w := weightsFor(Config{})

	at := craft.State{Completion: 100, Perfection: 240, Stability: 50, StabilityCapBase: 50, Pool: 80, PoolCap: 100}
	over := at
	over.Completion = 400

	if got, want := scoreState(&rc, &at, w), scoreState(&rc, &over, w); got != want {
		t.Fatalf("expected overshoot to score the same, got %v vs %v", got, want)
	}
	if got := scoreState(&rc, &at, w); got != w.completion+w.perfection+w.finish {
		t.Fatalf("expected full marks plus finish bonus, got %v", got)
	}
}

func TestScoreState_BrokenCraftEatsDeathPenalty(t *testing.T) {
	rc := scoreRecipe()
	w := weightsFor(Config{})

	dead := craft.State{Completion: 50, Stability: 0, StabilityCapBase: 50, Pool: 80, PoolCap: 100}
	if got, want := scoreState(&rc, &dead, w), w.completion*0.5-w.death; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScoreState_ThinMarginsAreTaxed(t *testing.T) {
	rc := scoreRecipe()
	w := weightsFor(Config{})

	comfy := craft.State{Completion: 50, Stability: 40, StabilityCapBase: 50, Pool: 80, PoolCap: 100}
	thin := comfy
	thin.Stability = 5

	if scoreState(&rc, &thin, w) >= scoreState(&rc, &comfy, w) {
		t.Fatalf("expected thin stability margin to score below a comfortable one")
	}

	drained := comfy
	drained.Pool = 5
	if scoreState(&rc, &drained, w) >= scoreState(&rc, &comfy, w) {
		t.Fatalf("expected a drained pool to score below a healthy one")
	}
}

func TestScoreState_ToxicityShareIsTaxed(t *testing.T) {
	rc := scoreRecipe()
	w := weightsFor(Config{})

	clean := craft.State{Completion: 50, Stability: 40, StabilityCapBase: 50, Pool: 80, PoolCap: 100, ToxicityCap: 60}
	dosed := clean
	dosed.Toxicity = 45

	if scoreState(&rc, &dosed, w) >= scoreState(&rc, &clean, w) {
		t.Fatalf("expected toxicity share to tax the score")
	}

	uncapped := dosed
	uncapped.ToxicityCap = 0
	if got, want := scoreState(&rc, &uncapped, w), scoreState(&rc, &clean, w); got != want {
		t.Fatalf("expected no toxicity tax without a cap, got %v vs %v", got, want)
	}
}

func TestWeightsFor_TrainingToleratesRisk(t *testing.T) {
	serious := weightsFor(Config{})
	training := weightsFor(Config{Training: true})

	if training.death >= serious.death {
		t.Fatalf("expected training to discount the death penalty")
	}
	if training.safetyFloor >= serious.safetyFloor {
		t.Fatalf("expected training to accept thinner stability margins")
	}
	if training.perfection <= serious.perfection {
		t.Fatalf("expected training to chase quality harder")
	}
}
