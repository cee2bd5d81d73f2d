package services

import (
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService returns nil when db is nil, which disables history
func NewHistoryService(db *gorm.DB) *HistoryService {
	if db == nil {
		return nil
	}
	return &HistoryService{db: db}
}

// Record stores one compilation
func (s *HistoryService) Record(rec *models.CompileRecord, warnings []string) error {
	if s == nil {
		return nil
	}
	rec.WarningCount = len(warnings)
	rec.Warnings = strings.Join(warnings, "\n")
	return s.db.Create(rec).Error
}

// Recent lists the newest compilations, optionally for one user
func (s *HistoryService) Recent(userID string, limit int) ([]models.CompileRecord, error) {
	if s == nil {
		return []models.CompileRecord{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	q := s.db.Order("created_at DESC").Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var records []models.CompileRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ByHash returns the latest compilation of a score hash
func (s *HistoryService) ByHash(hash string) (*models.CompileRecord, error) {
	if s == nil {
		return nil, gorm.ErrRecordNotFound
	}
	var rec models.CompileRecord
	if err := s.db.Where("score_hash = ?", hash).Order("created_at DESC").First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
