package operations

import (
	"sync"
	"time"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/charts"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
)

// RunStatus represents the overall status of a run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunState carries the values handed from one step to the next.
// Each stage output is a new value; earlier outputs are never modified.
type RunState struct {
	mu sync.RWMutex

	ID        string
	Status    RunStatus
	StartTime time.Time
	EndTime   *time.Time
	Error     error

	Steps map[string]*StepState

	Raw         *dataprocessing.RawTable
	Diagnostics dataprocessing.Diagnostics
	Cleaned     *dataprocessing.Table
	CleanReport dataprocessing.CleanReport
	Enriched    *dataprocessing.Table
	Charts      []charts.Chart

	artifacts []Artifact
}

// NewRunState creates the state of a new run
func NewRunState(id string) *RunState {
	return &RunState{
		ID:        id,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
	}
}

// Start marks the run as running
func (s *RunState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (s *RunState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusFailed
	s.Error = err
}

// Cancel marks the run as cancelled
func (s *RunState) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCancelled
}

// GetStep returns the state of a step, or nil if it has not run
func (s *RunState) GetStep(stepID string) *StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Steps[stepID]
}

// SetStep records the state of a step
func (s *RunState) SetStep(stepID string, state *StepState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Steps[stepID] = state
}

// AddArtifact records a file written by a step
func (s *RunState) AddArtifact(a Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
}

// Artifacts returns the files written so far, in write order
func (s *RunState) Artifacts() []Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}
