package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// OptimizeJob tracks one resume-optimization run through the pipeline.
type OptimizeJob struct {
	ID        uuid.UUID              `json:"id"`
	Status    string                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// NewOptimizeJob creates a pending job with a fresh ID.
func NewOptimizeJob() *OptimizeJob {
	now := time.Now()
	return &OptimizeJob{
		ID:        uuid.New(),
		Status:    StatusPending,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
