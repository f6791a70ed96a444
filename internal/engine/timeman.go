package engine

import (
	"time"
)

// DefaultMoveTime is the budget used when no limit is given.
const DefaultMoveTime = 4 * time.Second

// TimeManager tracks the time budget of one search.
type TimeManager struct {
	optimumTime time.Duration // Do not start a new iteration past this
	maximumTime time.Duration // Abort the search past this
	startTime   time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock for a new search. A fixed move time is a hard limit;
// new iterations are not started once half of it is used. A depth-only
// search runs without a deadline.
func (tm *TimeManager) Init(limits SearchLimits) {
	tm.startTime = time.Now()

	switch {
	case limits.MoveTime > 0:
		tm.maximumTime = limits.MoveTime
		tm.optimumTime = limits.MoveTime / 2
	case limits.Depth > 0:
		tm.maximumTime = 0
		tm.optimumTime = 0
	default:
		tm.maximumTime = DefaultMoveTime
		tm.optimumTime = DefaultMoveTime / 2
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// OptimumTime returns the soft limit.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the hard limit, zero if unlimited.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// ShouldStop returns true once the hard limit is reached.
func (tm *TimeManager) ShouldStop() bool {
	return tm.maximumTime > 0 && tm.Elapsed() >= tm.maximumTime
}

// PastOptimum returns true if another iteration should not be started.
func (tm *TimeManager) PastOptimum() bool {
	return tm.optimumTime > 0 && tm.Elapsed() >= tm.optimumTime
}
