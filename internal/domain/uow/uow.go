package uow

import (
	"context"

	"loanly-backend/internal/domain/account"
	"loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/reputation"
)

type Repos struct {
	Contracts   contract.Repository
	Reputations reputation.Repository
	Accounts    account.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loaner's latest contract first, then pass it in
	WithinContractTx(ctx context.Context, loanerID string, fn func(r Repos, c *contract.Contract) error) error
}
