package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	// GetByAccountIDForUpdate locks the balance row so the solvency check
	// and the debit read the same value.
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Account, error)
	Save(ctx context.Context, a *Account) error
}
