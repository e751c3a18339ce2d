package accountmock

import (
	"context"

	domain "loanly-backend/internal/domain/account"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, a *domain.Account) error
	GetByAccountIDFn          func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByAccountIDForUpdateFn func(ctx context.Context, accountID string) (*domain.Account, error)
	SaveFn                    func(ctx context.Context, a *domain.Account) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDForUpdateFn != nil {
		return m.GetByAccountIDForUpdateFn(ctx, accountID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
