package operations

import (
	"time"

	"franvarocli/internal/dataprocessing"
	"franvarocli/pkg/contracts/domain"
)

// OperationStatus represents the overall operation status
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
)

// OperationState represents the complete state of an operation run
type OperationState struct {
	ID        string          `json:"id"`
	Status    OperationStatus `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`

	// Step states by ID, and the IDs in execution order
	Steps map[string]*StepState `json:"steps"`
	Order []string              `json:"order"`

	// Context passes data between steps
	Context map[string]interface{} `json:"context"`

	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Context:   make(map[string]interface{}),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stageID string) *StepState {
	return p.Steps[stageID]
}

// SetStage records the state of a Step, keeping first-registration order
func (p *OperationState) SetStage(stageID string, state *StepState) {
	if _, ok := p.Steps[stageID]; !ok {
		p.Order = append(p.Order, stageID)
	}
	p.Steps[stageID] = state
}

// GetContext retrieves a value from the operation context
func (p *OperationState) GetContext(key string) (interface{}, bool) {
	val, ok := p.Context[key]
	return val, ok
}

// SetContext sets a value in the operation context
func (p *OperationState) SetContext(key string, value interface{}) {
	p.Context[key] = value
}

// MergedReport returns the merge result stored by the merge step
func (p *OperationState) MergedReport() (*domain.MergedReport, bool) {
	v, ok := p.Context[ContextKeyMergedReport].(*domain.MergedReport)
	return v, ok
}

// CleanResult returns the cleaning result stored by the clean step
func (p *OperationState) CleanResult() (*dataprocessing.CleanResult, bool) {
	v, ok := p.Context[ContextKeyCleanResult].(*dataprocessing.CleanResult)
	return v, ok
}

// ThresholdReport returns the counts stored by the threshold step
func (p *OperationState) ThresholdReport() (domain.ThresholdReport, bool) {
	v, ok := p.Context[ContextKeyThresholdReport].(domain.ThresholdReport)
	return v, ok
}
