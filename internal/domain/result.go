package domain

import "fmt"

// StageWarning reports a non-fatal failure in one stage of event processing.
// The base activity record is never rolled back because of these.
type StageWarning struct {
	Stage string
	Err   error
}

func (w StageWarning) String() string {
	return fmt.Sprintf("%s: %v", w.Stage, w.Err)
}

// ActivityResult is the outcome of processing one lifecycle event. Callers
// can observe degraded bookkeeping through Warnings without the triggering
// ticket operation ever failing.
type ActivityResult struct {
	Activity        *Activity
	Awards          []ScoreAward
	PointsGranted   int
	NewAchievements []string
	Streak          *StreakState
	Duplicate       bool
	Warnings        []StageWarning
}
