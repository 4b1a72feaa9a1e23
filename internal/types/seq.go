package types

import "sync/atomic"

// SequenceGuard orders listing responses. Every dispatched query takes a
// sequence number from Next; a response is only applied if its number is
// still the latest issued, so a slow response for an old filter can never
// overwrite the result of a newer one.
type SequenceGuard struct {
	latest atomic.Int64
}

// Next issues the next sequence number.
func (g *SequenceGuard) Next() int64 {
	return g.latest.Add(1)
}

// IsLatest reports whether seq is the most recently issued number.
func (g *SequenceGuard) IsLatest(seq int64) bool {
	return g.latest.Load() == seq
}

// Observe records a number issued elsewhere (a client counts its own
// queries) and reports whether it is still the newest seen. A false
// return means a newer query overtook this one while it was in flight.
func (g *SequenceGuard) Observe(seq int64) bool {
	for {
		cur := g.latest.Load()
		if seq < cur {
			return false
		}
		if g.latest.CompareAndSwap(cur, seq) {
			return true
		}
	}
}
