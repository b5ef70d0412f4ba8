package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Artifact types
const (
	ArtifactChart    = "chart"
	ArtifactCSV      = "csv"
	ArtifactWorkbook = "xlsx"
)

// Artifact is a file written by a step
type Artifact struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	CreatedBy string `json:"created_by"`
}

// StageExecution tracks the execution of a single step
type StageExecution struct {
	StageID   string                 `json:"stage_id"`
	StageName string                 `json:"stage_name"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Duration  string                 `json:"duration"`
	Status    string                 `json:"status"` // "running", "completed", "failed"
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// RunManifest is the persisted record of one pipeline run
type RunManifest struct {
	mu sync.RWMutex `json:"-"`

	// Identity
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	InputFile string    `json:"input_file"`
	StartTime time.Time `json:"start_time"`

	// Execution tracking
	Stages    []StageExecution `json:"stages"`
	Artifacts []Artifact       `json:"artifacts"`

	// Current status
	Status      string    `json:"status"` // "pending", "running", "completed", "failed"
	LastUpdated time.Time `json:"last_updated"`
	Error       string    `json:"error,omitempty"`
}

// NewRunManifest creates a manifest for the run reading inputFile
func NewRunManifest(runID, inputFile string) *RunManifest {
	now := time.Now()
	return &RunManifest{
		ID:          uuid.NewString(),
		RunID:       runID,
		InputFile:   inputFile,
		StartTime:   now,
		Stages:      []StageExecution{},
		Artifacts:   []Artifact{},
		Status:      "pending",
		LastUpdated: now,
	}
}

// RecordStageStart records the start of a step
func (m *RunManifest) RecordStageStart(stageID, stageName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Stages = append(m.Stages, StageExecution{
		StageID:   stageID,
		StageName: stageName,
		StartTime: time.Now(),
		Status:    "running",
	})
	m.Status = "running"
	m.LastUpdated = time.Now()
}

// RecordStageCompletion records the completion of a step
func (m *RunManifest) RecordStageCompletion(stageID string, metadata map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(stageID); i >= 0 {
		m.Stages[i].EndTime = time.Now()
		m.Stages[i].Duration = m.Stages[i].EndTime.Sub(m.Stages[i].StartTime).String()
		m.Stages[i].Status = "completed"
		m.Stages[i].Metadata = metadata
	}
	m.LastUpdated = time.Now()
}

// RecordStageFailure records a step failure and fails the run
func (m *RunManifest) RecordStageFailure(stageID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(stageID); i >= 0 {
		m.Stages[i].EndTime = time.Now()
		m.Stages[i].Duration = m.Stages[i].EndTime.Sub(m.Stages[i].StartTime).String()
		m.Stages[i].Status = "failed"
		m.Stages[i].Error = err.Error()
	}
	m.Status = "failed"
	m.Error = fmt.Sprintf("Stage %s failed: %v", stageID, err)
	m.LastUpdated = time.Now()
}

// AddArtifacts records files written during the run
func (m *RunManifest) AddArtifacts(artifacts ...Artifact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Artifacts = append(m.Artifacts, artifacts...)
	m.LastUpdated = time.Now()
}

// MarkCompleted marks the run as completed
func (m *RunManifest) MarkCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Status = "completed"
	m.LastUpdated = time.Now()
}

// IsStageCompleted checks if a step has been completed
func (m *RunManifest) IsStageCompleted(stageID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(stageID)
	return i >= 0 && m.Stages[i].Status == "completed"
}

// indexOf returns the latest execution of stageID, or -1
func (m *RunManifest) indexOf(stageID string) int {
	for i := len(m.Stages) - 1; i >= 0; i-- {
		if m.Stages[i].StageID == stageID {
			return i
		}
	}
	return -1
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(filepath string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(filepath string) (*RunManifest, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
