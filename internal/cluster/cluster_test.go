package cluster

import (
	"testing"

	"github.com/ericfarng/yaed/internal/paramest"
	"github.com/ericfarng/yaed/internal/validate"
)

func TestClusterMergesDuplicates(t *testing.T) {
	high := validate.Result{
		Params: paramest.Params{Center: [2]float32{100, 100}, Rho: 0.1, AAxis: 50, BAxis: 40},
		Score:  0.9,
	}
	nearDuplicate := validate.Result{
		Params: paramest.Params{Center: [2]float32{101, 99}, Rho: 0.12, AAxis: 49, BAxis: 39},
		Score:  0.7,
	}
	distinct := validate.Result{
		Params: paramest.Params{Center: [2]float32{500, 500}, Rho: 0.5, AAxis: 30, BAxis: 20},
		Score:  0.8,
	}

	kept := Cluster([]validate.Result{nearDuplicate, high, distinct})
	if len(kept) != 2 {
		t.Fatalf("expected 2 retained ellipses, got %d", len(kept))
	}
	for _, k := range kept {
		if k.Params.Center == nearDuplicate.Params.Center && k.Score == nearDuplicate.Score {
			t.Error("expected lower-scored duplicate to be dropped")
		}
	}
}

func TestClusterKeepsDistinctEllipses(t *testing.T) {
	a := validate.Result{Params: paramest.Params{Center: [2]float32{0, 0}, Rho: 0, AAxis: 10, BAxis: 10}, Score: 0.9}
	b := validate.Result{Params: paramest.Params{Center: [2]float32{1000, 1000}, Rho: 0, AAxis: 10, BAxis: 10}, Score: 0.8}

	kept := Cluster([]validate.Result{a, b})
	if len(kept) != 2 {
		t.Fatalf("expected both distinct ellipses retained, got %d", len(kept))
	}
}

func TestClusterEmpty(t *testing.T) {
	if got := Cluster(nil); len(got) != 0 {
		t.Errorf("expected empty input to produce empty output, got %d", len(got))
	}
}
