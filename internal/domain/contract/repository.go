package contract

import "context"

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
	// GetActiveByLoanerID returns the loaner's unsettled contract, if any
	// (state created or confirmed). Used to enforce one active contract
	// per loaner.
	GetActiveByLoanerID(ctx context.Context, loanerID string) (*Contract, error)
	// GetLatestByLoanerID returns the loaner's most recent contract
	// regardless of state.
	GetLatestByLoanerID(ctx context.Context, loanerID string) (*Contract, error)
	// GetLatestByLoanerIDForUpdate locks and returns the loaner's most
	// recent contract regardless of state, so terminal contracts still
	// surface AlreadySettled instead of not-found.
	GetLatestByLoanerIDForUpdate(ctx context.Context, loanerID string) (*Contract, error)
	Save(ctx context.Context, c *Contract) error
}
