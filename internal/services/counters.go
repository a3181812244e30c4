package services

// CounterDelta is the change to a target's counter triple when a vote moves
// from one value to another. Up and Down are each in {-1, 0, 1} and
// Score == Up - Down always, so applying a delta can never break the
// score invariant on counters that already satisfied it.
type CounterDelta struct {
	Up    int
	Down  int
	Score int
}

// ComputeCounterDelta covers all nine old/new combinations with one rule.
// previous and requested use 0 for "no vote". No I/O; the coordinator calls
// this instead of relying on any save-time hook to fix up scores.
func ComputeCounterDelta(previous, requested int) CounterDelta {
	d := CounterDelta{
		Up:   boolToInt(requested == 1) - boolToInt(previous == 1),
		Down: boolToInt(requested == -1) - boolToInt(previous == -1),
	}
	d.Score = d.Up - d.Down
	return d
}

// IsZero reports a no-op transition (requested == previous). The engine
// still answers these with current counters but writes nothing.
func (d CounterDelta) IsZero() bool {
	return d.Up == 0 && d.Down == 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
