package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompileRequest wraps a score and the caller's compile options
type CompileRequest struct {
	Score        Score   `json:"score" yaml:"score"`
	Tempo        float64 `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Key          string  `json:"key,omitempty" yaml:"key,omitempty"`
	StartSection string  `json:"startSection,omitempty" yaml:"startSection,omitempty"`
	EndSection   string  `json:"endSection,omitempty" yaml:"endSection,omitempty"`
	Seed         *int64  `json:"seed,omitempty" yaml:"seed,omitempty"` // Optional seed for reproducible humanize
}

// CompileRecord is one stored compilation in the history table
type CompileRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RequestID    string  `gorm:"index" json:"request_id"`
	UserID       string  `gorm:"index" json:"user_id,omitempty"` // from the gateway, empty without auth
	ScoreName    string  `json:"score_name"`
	ScoreHash    string  `gorm:"index;not null" json:"score_hash"`
	Sections     int     `json:"sections"`
	Bars         int     `json:"bars"`
	Notes        int     `json:"notes"`
	Seconds      float64 `json:"seconds"`
	WarningCount int     `json:"warning_count"`
	Warnings     string  `gorm:"type:text" json:"warnings,omitempty"` // newline separated
	DurationMS   int     `gorm:"not null" json:"duration_ms"`
	Cached       bool    `gorm:"default:false" json:"cached"`
}

// BeforeCreate assigns a UUID primary key
func (r *CompileRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
