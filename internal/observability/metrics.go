package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for the scoring engine.
type Metrics struct {
	mu            sync.Mutex
	activities    map[string]int64
	awards        map[string]int64
	unlocks       int64
	duplicates    int64
	stageFailures map[string]int64
	requestCount  map[string]int64
	errorCount    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		activities:    make(map[string]int64),
		awards:        make(map[string]int64),
		stageFailures: make(map[string]int64),
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
	}
}

// RecordActivity increments the counter for a recorded activity type.
func (m *Metrics) RecordActivity(activityType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[activityType]++
}

// RecordAward increments the counter for an award reason.
func (m *Metrics) RecordAward(reason string, points int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awards[reason] += int64(points)
}

// RecordUnlock increments the achievement unlock counter.
func (m *Metrics) RecordUnlock() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocks++
}

// RecordDuplicate increments the duplicate-submission counter.
func (m *Metrics) RecordDuplicate() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duplicates++
}

// RecordStageFailure increments the counter for a non-fatal pipeline stage failure.
func (m *Metrics) RecordStageFailure(stage string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageFailures[stage]++
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[path+"|"+method]++
}

// RecordError increments HTTP error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[path+"|"+method+"|"+code]++
}

// Snapshot returns a copy of all counters for exposure on a debug endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64)
	for k, v := range m.activities {
		out["activities."+k] = v
	}
	for k, v := range m.awards {
		out["points."+k] = v
	}
	for k, v := range m.stageFailures {
		out["stage_failures."+k] = v
	}
	for k, v := range m.requestCount {
		out["requests."+k] = v
	}
	for k, v := range m.errorCount {
		out["request_errors."+k] = v
	}
	out["achievement_unlocks"] = m.unlocks
	out["duplicate_activities"] = m.duplicates
	return out
}
