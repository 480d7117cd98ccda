package domain

import (
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// Session is one editing session and the document it owns.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	Doc       *model.Resume `json:"document"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
