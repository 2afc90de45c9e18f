package frecency

// CommitRecord is one commit's worth of history: its 0-based position in
// the newest-first stream and the repo-relative paths it touched. Records
// are produced once, folded once, and discarded.
type CommitRecord struct {
	Rank  uint
	Hash  string
	Paths []string
}

// Accumulator folds rank-tagged commit records into a per-file score map.
// It is the sole writer of the map; scores only ever grow.
type Accumulator struct {
	params DecayParams
	scores map[string]float64

	// One decay weight is reused across every path a commit touches, so
	// the weight is memoized per rank instead of recomputed per pair.
	lastRank   uint
	lastWeight float64
	hasLast    bool
}

// NewAccumulator creates an accumulator with the given decay shape
func NewAccumulator(params DecayParams) *Accumulator {
	return &Accumulator{
		params: params,
		scores: make(map[string]float64),
	}
}

func (a *Accumulator) weight(rank uint) float64 {
	if a.hasLast && rank == a.lastRank {
		return a.lastWeight
	}
	w := a.params.Weight(rank)
	a.lastRank = rank
	a.lastWeight = w
	a.hasLast = true
	return w
}

// Fold adds one commit's contribution to the score map. Records with empty
// touch sets are accepted and change nothing. Folding is commutative across
// records, so rank-tagged records may arrive in any order.
func (a *Accumulator) Fold(record CommitRecord) {
	if len(record.Paths) == 0 {
		return
	}
	w := a.weight(record.Rank)
	for _, path := range record.Paths {
		a.scores[path] += w
	}
}

// Scores returns the accumulated score map. The caller must treat it as
// read-only; the accumulator keeps ownership until the run ends.
func (a *Accumulator) Scores() map[string]float64 {
	return a.scores
}

// Len returns the number of scored paths
func (a *Accumulator) Len() int {
	return len(a.scores)
}
