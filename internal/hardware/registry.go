package hardware

import "sync"

// candidates is populated at init time by every manager implementation's
// own init(). Appending here rather than returning a slice from a
// constructor keeps adding a new manager a one-line change at its own
// definition site.
var candidates []Manager

// Register adds a manager to the election pool. Call from an init() func.
func Register(m Manager) {
	candidates = append(candidates, m)
}

var (
	electOnce sync.Once
	elected   Manager
)

// Elect picks the highest-ranked registered manager, breaking ties by
// registration order, and caches the result process-wide: hardware
// manager election happens once per agent run, so every caller for the
// life of the process gets the same instance.
func Elect() Manager {
	electOnce.Do(func() {
		var best Manager
		bestRank := RankNone
		for _, m := range candidates {
			if r := m.EvaluateHardwareSupport(); r > bestRank {
				best = m
				bestRank = r
			}
		}
		elected = best
	})
	return elected
}

// reset clears election state; used by tests that register fresh
// candidates per-case. Not exported: production code elects exactly once.
func reset() {
	electOnce = sync.Once{}
	elected = nil
	candidates = nil
}
