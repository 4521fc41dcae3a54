package state

import "time"

// StateVersion is the schema version for state file migration
const StateVersion = 1

// RunState records the generate jobs of one manifest that completed successfully
type RunState struct {
	Version  int                 `json:"version"`
	Manifest string              `json:"manifest"`
	LastRun  time.Time           `json:"last_run"`
	Jobs     map[string]JobState `json:"jobs"`
}

// JobState is what a job produced the last time it ran
type JobState struct {
	Fingerprint string    `json:"fingerprint"`
	Outputs     []string  `json:"outputs,omitempty"`
	Items       int       `json:"items"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewRunState creates a new empty run state
func NewRunState(manifest string) *RunState {
	return &RunState{
		Version:  StateVersion,
		Manifest: manifest,
		LastRun:  time.Now(),
		Jobs:     make(map[string]JobState),
	}
}

// JobCount returns the number of jobs in the state
func (s *RunState) JobCount() int {
	return len(s.Jobs)
}

// GetJob returns a job state by name
func (s *RunState) GetJob(name string) (JobState, bool) {
	job, exists := s.Jobs[name]
	return job, exists
}
