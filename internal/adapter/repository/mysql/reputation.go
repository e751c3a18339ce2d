package mysql

import (
	"context"

	reputationDomain "loanly-backend/internal/domain/reputation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReputationRepository struct{ db *gorm.DB }

func NewReputationRepository(db *gorm.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

func (r *ReputationRepository) Create(ctx context.Context, rep *reputationDomain.Reputation) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReputationRepository) Save(ctx context.Context, rep *reputationDomain.Reputation) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *ReputationRepository) GetByLoanerID(ctx context.Context, loanerID string) (*reputationDomain.Reputation, error) {
	var out reputationDomain.Reputation
	res := r.db.WithContext(ctx).Where("loaner_id = ?", loanerID).First(&out)
	return &out, res.Error
}

func (r *ReputationRepository) GetByLoanerIDForUpdate(ctx context.Context, loanerID string) (*reputationDomain.Reputation, error) {
	var out reputationDomain.Reputation
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loaner_id = ?", loanerID).
		First(&out)
	return &out, res.Error
}
