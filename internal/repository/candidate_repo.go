package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/duo-match/internal/db"
)

// CandidateRepository is the read side of the candidate catalog.
type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(database *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

// Exists reports whether an active candidate with id exists.
func (r *CandidateRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Candidate{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
