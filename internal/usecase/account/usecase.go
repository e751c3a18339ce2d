package account

import (
	"context"
	"errors"
	"time"

	domain "loanly-backend/internal/domain/account"
	"loanly-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

type AccountDTO struct {
	AccountID string    `json:"account_id"`
	Balance   uint64    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Deposit credits an identity's ledger row, creating it on first use. This is
// how owners fund confirmations and loaners fund repayments.
func (u *Usecase) Deposit(ctx context.Context, accountID string, amount uint64) (*AccountDTO, error) {
	if len(accountID) != 32 {
		return nil, errors.New("invalid account id")
	}
	if amount == 0 {
		return nil, errors.New("amount must be positive")
	}

	var dto *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			a = &domain.Account{AccountID: accountID, Balance: amount}
			if err := r.Accounts.Create(ctx, a); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			a.Balance += amount
			if err := r.Accounts.Save(ctx, a); err != nil {
				return err
			}
		}
		dto = &AccountDTO{AccountID: a.AccountID, Balance: a.Balance, CreatedAt: a.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, accountID string) (*AccountDTO, error) {
	a, err := u.repo.GetByAccountID(ctx, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &AccountDTO{AccountID: a.AccountID, Balance: a.Balance, CreatedAt: a.CreatedAt}, nil
}
