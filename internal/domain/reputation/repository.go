package reputation

import "context"

type Repository interface {
	Create(ctx context.Context, r *Reputation) error
	GetByLoanerID(ctx context.Context, loanerID string) (*Reputation, error)
	GetByLoanerIDForUpdate(ctx context.Context, loanerID string) (*Reputation, error)
	Save(ctx context.Context, r *Reputation) error
}
