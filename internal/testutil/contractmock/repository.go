package contractmock

import (
	"context"

	domain "loanly-backend/internal/domain/contract"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies contract.Repository.
// Fill in the function fields you need in a test; unfilled getters report
// record-not-found.
type Repo struct {
	CreateFn                       func(ctx context.Context, c *domain.Contract) error
	GetByContractIDFn              func(ctx context.Context, contractID string) (*domain.Contract, error)
	GetActiveByLoanerIDFn          func(ctx context.Context, loanerID string) (*domain.Contract, error)
	GetLatestByLoanerIDFn          func(ctx context.Context, loanerID string) (*domain.Contract, error)
	GetLatestByLoanerIDForUpdateFn func(ctx context.Context, loanerID string) (*domain.Contract, error)
	SaveFn                         func(ctx context.Context, c *domain.Contract) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.GetByContractIDFn != nil {
		return m.GetByContractIDFn(ctx, contractID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveByLoanerID(ctx context.Context, loanerID string) (*domain.Contract, error) {
	if m.GetActiveByLoanerIDFn != nil {
		return m.GetActiveByLoanerIDFn(ctx, loanerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetLatestByLoanerID(ctx context.Context, loanerID string) (*domain.Contract, error) {
	if m.GetLatestByLoanerIDFn != nil {
		return m.GetLatestByLoanerIDFn(ctx, loanerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetLatestByLoanerIDForUpdate(ctx context.Context, loanerID string) (*domain.Contract, error) {
	if m.GetLatestByLoanerIDForUpdateFn != nil {
		return m.GetLatestByLoanerIDForUpdateFn(ctx, loanerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
