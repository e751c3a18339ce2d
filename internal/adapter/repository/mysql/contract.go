package mysql

import (
	"context"

	contractDomain "loanly-backend/internal/domain/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetActiveByLoanerID(ctx context.Context, loanerID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("loaner_id = ? AND state IN ?", loanerID,
			[]contractDomain.State{contractDomain.StateCreated, contractDomain.StateConfirmed}).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetLatestByLoanerID(ctx context.Context, loanerID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("loaner_id = ?", loanerID).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// GetLatestByLoanerIDForUpdate takes a FOR UPDATE lock so lifecycle
// transitions on the same contract are serialized.
func (r *ContractRepository) GetLatestByLoanerIDForUpdate(ctx context.Context, loanerID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loaner_id = ?", loanerID).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}
