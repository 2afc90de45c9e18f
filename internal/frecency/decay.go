package frecency

import (
	"math"

	"frec/internal/errors"
)

const (
	// DefaultHalfLife is the rank at which a touch contributes ~37% of a
	// rank-0 touch. 300 keeps every rank inside the default 3000-commit
	// window well clear of underflow.
	DefaultHalfLife = 300.0

	// DefaultBaseWeight is the contribution of a touch at rank 0
	DefaultBaseWeight = 1.0

	// maxExpArg is the largest rank/halfLife ratio a bounded window may
	// reach: exp(-x) underflows to exactly 0 near x ≈ 745, and a silent
	// zero would make old-but-frequent files indistinguishable from
	// untouched files.
	maxExpArg = 700.0
)

// DecayParams holds the tuning constants of the decay function. Passed
// explicitly at construction so concurrent runs with different shapes
// never interfere.
type DecayParams struct {
	HalfLife   float64 `json:"halfLife"`
	BaseWeight float64 `json:"baseWeight"`
}

// DefaultDecayParams returns the standard decay shape
func DefaultDecayParams() DecayParams {
	return DecayParams{
		HalfLife:   DefaultHalfLife,
		BaseWeight: DefaultBaseWeight,
	}
}

// Validate checks the decay shape against a commit window of maxCommits.
// maxCommits = 0 means an unbounded window; the underflow guard is skipped
// and Weight floors instead.
func (p DecayParams) Validate(maxCommits int) error {
	if p.HalfLife <= 0 {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"Decay half-life must be positive",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"halfLife": p.HalfLife})
	}
	if p.BaseWeight <= 0 {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"Decay base weight must be positive",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"baseWeight": p.BaseWeight})
	}
	if maxCommits > 0 && float64(maxCommits)/p.HalfLife > maxExpArg {
		return errors.NewFrecError(
			errors.InvalidConfig,
			"Decay would underflow to zero inside the commit window; raise half-life or lower max commits",
			nil,
			errors.GetSuggestedFixes(errors.InvalidConfig),
		).WithDetails(map[string]interface{}{
			"halfLife":   p.HalfLife,
			"maxCommits": maxCommits,
		})
	}
	return nil
}

// Weight returns the contribution of a touch at the given rank:
// baseWeight * exp(-rank/halfLife). Strictly positive and monotonically
// decreasing in rank; unbounded windows floor at the smallest positive
// subnormal rather than reaching zero.
func (p DecayParams) Weight(rank uint) float64 {
	w := p.BaseWeight * math.Exp(-float64(rank)/p.HalfLife)
	if w == 0 {
		return math.SmallestNonzeroFloat64
	}
	return w
}
