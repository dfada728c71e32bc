package engine_test

import (
	"testing"

	"blackqueen/internal/engine/sim"
)

func TestSelfPlayGamesManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		if err := sim.RunSelfPlayGame(seed, 1000); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	}
}

func FuzzSelfPlayGame(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260901))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := sim.RunSelfPlayGame(seed, 1000); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	})
}
