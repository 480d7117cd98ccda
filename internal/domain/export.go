package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// ExportRecord is the history row written for every PDF export attempt.
type ExportRecord struct {
	ID         uuid.UUID              `json:"id"`
	SessionID  uuid.UUID              `json:"session_id"`
	FileName   string                 `json:"file_name"`
	Template   string                 `json:"template"`
	Font       string                 `json:"font"`
	Accent     string                 `json:"accent"`
	Status     string                 `json:"status"`
	StorageKey string                 `json:"storage_key,omitempty"`
	Size       int                    `json:"size"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
