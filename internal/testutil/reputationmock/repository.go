package reputationmock

import (
	"context"

	domain "loanly-backend/internal/domain/reputation"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies reputation.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Reputation) error
	GetByLoanerIDFn          func(ctx context.Context, loanerID string) (*domain.Reputation, error)
	GetByLoanerIDForUpdateFn func(ctx context.Context, loanerID string) (*domain.Reputation, error)
	SaveFn                   func(ctx context.Context, r *domain.Reputation) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Reputation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByLoanerID(ctx context.Context, loanerID string) (*domain.Reputation, error) {
	if m.GetByLoanerIDFn != nil {
		return m.GetByLoanerIDFn(ctx, loanerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanerIDForUpdate(ctx context.Context, loanerID string) (*domain.Reputation, error) {
	if m.GetByLoanerIDForUpdateFn != nil {
		return m.GetByLoanerIDForUpdateFn(ctx, loanerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, r *domain.Reputation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
