package main

import (
	"testing"

	"github.com/Hakuto4838/skipmap/datastream"
)

func TestGrid(t *testing.T) {
	var seen []result
	results := grid(4, 12, 4, 0.25, 0.5, 0.125, func(c int, p float64) result {
		r := result{capacity: c, p: p}
		seen = append(seen, r)
		return r
	})
	// capacity 4, 8, 12 × p 0.25, 0.375, 0.5
	if len(results) != 9 || len(seen) != 9 {
		t.Fatalf("got %d results, want 9", len(results))
	}
	if results[8].capacity != 12 || results[8].p != 0.5 {
		t.Errorf("last = %+v", results[8])
	}
}

func TestEvaluateCost(t *testing.T) {
	bf, err := datastream.GenerateOps(datastream.BenchConfig{N: 300, S: 1.2, V: 1, Seed: 5, K: 3000, Phase1Ratio: 0.5, DeleteRatio: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	files := []*datastream.BenchFile{bf}

	flat := evaluateCost(1, 0.5, files, 1, 1)
	tall := evaluateCost(16, 0.5, files, 1, 1)
	if flat.cost <= 0 || tall.cost <= 0 {
		t.Fatalf("no cost recorded: %+v %+v", flat, tall)
	}
	// 只有一層時退化成 linked list，成本應明顯較高
	if flat.cost < 2*tall.cost {
		t.Errorf("capacity 1 cost %.2f not much higher than capacity 16 cost %.2f", flat.cost, tall.cost)
	}
}
