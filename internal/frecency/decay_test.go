package frecency

import (
	stderrors "errors"
	"testing"

	"frec/internal/errors"
)

func TestWeightMonotonicallyDecreasing(t *testing.T) {
	params := DefaultDecayParams()

	prev := params.Weight(0)
	for rank := uint(1); rank < 3000; rank++ {
		w := params.Weight(rank)
		if w <= 0 {
			t.Fatalf("Weight(%d) = %v, want strictly positive", rank, w)
		}
		if w >= prev {
			t.Fatalf("Weight(%d) = %v, not less than Weight(%d) = %v", rank, w, rank-1, prev)
		}
		prev = w
	}
}

func TestWeightRankZero(t *testing.T) {
	params := DecayParams{HalfLife: 1, BaseWeight: 2.5}
	if got := params.Weight(0); got != 2.5 {
		t.Errorf("Weight(0) = %v, want baseWeight", got)
	}
}

func TestWeightNeverZeroInDefaultWindow(t *testing.T) {
	params := DefaultDecayParams()
	if w := params.Weight(2999); w == 0 {
		t.Error("decay underflowed to zero inside the default window")
	}
}

func TestWeightFloorsOnUnderflow(t *testing.T) {
	// A rank far beyond any bounded window still never reaches zero.
	params := DecayParams{HalfLife: 1, BaseWeight: 1}
	if w := params.Weight(100000); w <= 0 {
		t.Errorf("Weight(100000) = %v, want positive floor", w)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		params     DecayParams
		maxCommits int
		wantErr    bool
	}{
		{"defaults with default window", DefaultDecayParams(), 3000, false},
		{"zero half-life", DecayParams{HalfLife: 0, BaseWeight: 1}, 3000, true},
		{"negative half-life", DecayParams{HalfLife: -5, BaseWeight: 1}, 3000, true},
		{"zero base weight", DecayParams{HalfLife: 300, BaseWeight: 0}, 3000, true},
		{"underflow inside window", DecayParams{HalfLife: 1, BaseWeight: 1}, 3000, true},
		{"tight half-life, small window", DecayParams{HalfLife: 1, BaseWeight: 1}, 100, false},
		{"unbounded window skips guard", DecayParams{HalfLife: 1, BaseWeight: 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(tt.maxCommits)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var fe *errors.FrecError
				if !stderrors.As(err, &fe) || fe.Code != errors.InvalidConfig {
					t.Errorf("error = %v, want INVALID_CONFIG", err)
				}
			}
		})
	}
}
