package mysql

import (
	"context"
	"errors"

	"loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Contracts:   &ContractRepository{db: tx},
		Reputations: &ReputationRepository{db: tx},
		Accounts:    &AccountRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinContractTx(ctx context.Context, loanerID string, fn func(r uow.Repos, c *contract.Contract) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the contract row up-front to serialize transitions
		c, err := r.Contracts.GetLatestByLoanerIDForUpdate(ctx, loanerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}
