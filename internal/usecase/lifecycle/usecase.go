package lifecycle

import (
	"context"
	"errors"
	"time"

	"loanly-backend/internal/domain/account"
	"loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/reputation"
	"loanly-backend/internal/domain/uow"
	"loanly-backend/internal/settlement"
	"loanly-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase drives the contract lifecycle: create -> confirm -> paid/late_paid.
// Every transition runs inside a single unit of work, so either all of its
// mutations (flags, counters, balance moves) commit or none do.
type Usecase struct {
	contractRepo   contract.Repository
	reputationRepo reputation.Repository
	uow            uow.UnitOfWork
	now            func() time.Time
}

func NewUsecase(contracts contract.Repository, reputations reputation.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		contractRepo:   contracts,
		reputationRepo: reputations,
		uow:            tx,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source; tests use it to pin the due-date check.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Create records a new contract for the signing loaner. No funds move; the
// loaner's reputation row is created on first use and left untouched after.
func (u *Usecase) Create(ctx context.Context, in CreateContractInput) (*ContractDTO, error) {
	if len(in.LoanerID) != 32 || len(in.OwnerID) != 32 || in.LoanerID == in.OwnerID {
		return nil, errors.New("invalid input")
	}
	if in.Principal < contract.MinPrincipal {
		return nil, contract.ErrInsufficientPrincipal
	}
	now := u.now()
	if in.DueAt.IsZero() || !in.DueAt.After(now) {
		return nil, errors.New("due_at must be in the future")
	}

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Block while the loaner still has an unsettled contract.
		_, err := r.Contracts.GetActiveByLoanerID(ctx, in.LoanerID)
		switch {
		case err == nil:
			return contract.ErrPendingContract
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		c := &contract.Contract{
			ContractID:     id.NewID32(),
			LoanerID:       in.LoanerID,
			OwnerID:        in.OwnerID,
			Principal:      in.Principal,
			InterestBps:    contract.DefaultInterestBps,
			State:          contract.StateCreated,
			DueAt:          in.DueAt.UTC(),
			StateUpdatedAt: now,
		}
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		if err := ensureReputation(ctx, r, in.LoanerID); err != nil {
			return err
		}
		dto = toContractDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Confirm is the owner-only transition that funds the loan: it moves the
// principal owner->loaner, flips is_confirmed and counts the loan in the
// loaner's reputation, all in one transaction.
func (u *Usecase) Confirm(ctx context.Context, loanerID, signerID string) (*ContractDTO, error) {
	var dto *ContractDTO
	err := u.uow.WithinContractTx(ctx, loanerID, func(r uow.Repos, c *contract.Contract) error {
		if signerID != c.OwnerID {
			return contract.ErrUnauthorized
		}
		if c.State.Terminal() {
			return contract.ErrAlreadySettled
		}
		if c.State == contract.StateConfirmed {
			return contract.ErrAlreadyConfirmed
		}

		rep, err := lockReputation(ctx, r, c.LoanerID)
		if err != nil {
			return err
		}
		if rep.LatePaidLoans > contract.MaxLatePaidLoans {
			return contract.ErrBadReputation
		}

		if err := transfer(ctx, r, c.OwnerID, c.LoanerID, c.Principal); err != nil {
			return err
		}

		c.IsConfirmed = true
		c.State = contract.StateConfirmed
		c.StateUpdatedAt = u.now()
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		rep.TotalLoans++
		if err := r.Reputations.Save(ctx, rep); err != nil {
			return err
		}
		dto = toContractDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Pay is the loaner-only terminal transition. On time the cashback lowers the
// effective multiplier; late the full amount is owed and the loaner's
// late-paid counter increments.
func (u *Usecase) Pay(ctx context.Context, loanerID, signerID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinContractTx(ctx, loanerID, func(r uow.Repos, c *contract.Contract) error {
		if signerID != c.LoanerID {
			return contract.ErrUnauthorized
		}
		if c.State.Terminal() {
			return contract.ErrAlreadySettled
		}
		if c.State != contract.StateConfirmed {
			return contract.ErrNotConfirmed
		}

		paidAt := u.now()
		late := settlement.IsLate(paidAt, c.DueAt)
		var owed uint64
		if late {
			owed = settlement.FullRepayment(c.Principal, c.InterestBps)
		} else {
			owed = settlement.OnTimeRepayment(c.Principal, c.InterestBps, contract.CashbackBps)
		}

		if err := transfer(ctx, r, c.LoanerID, c.OwnerID, owed); err != nil {
			return err
		}

		if late {
			c.IsLatePaid = true
			c.State = contract.StateLatePaid
			rep, err := lockReputation(ctx, r, c.LoanerID)
			if err != nil {
				return err
			}
			rep.LatePaidLoans++
			if err := r.Reputations.Save(ctx, rep); err != nil {
				return err
			}
		} else {
			c.CashbackClaimed = true
			c.State = contract.StatePaid
		}
		c.SettledAt = &paidAt
		c.StateUpdatedAt = paidAt
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = &PaymentDTO{Contract: *toContractDTO(c), AmountPaid: owed, Late: late}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns the loaner's most recent contract, settled or not.
func (u *Usecase) Get(ctx context.Context, loanerID string) (*ContractDTO, error) {
	c, err := u.contractRepo.GetLatestByLoanerID(ctx, loanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toContractDTO(c), nil
}

func (u *Usecase) Reputation(ctx context.Context, loanerID string) (*ReputationDTO, error) {
	rep, err := u.reputationRepo.GetByLoanerID(ctx, loanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reputation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ReputationDTO{LoanerID: rep.LoanerID, TotalLoans: rep.TotalLoans, LatePaidLoans: rep.LatePaidLoans}, nil
}

// ---- tx helpers ----

func ensureReputation(ctx context.Context, r uow.Repos, loanerID string) error {
	_, err := r.Reputations.GetByLoanerID(ctx, loanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.Reputations.Create(ctx, &reputation.Reputation{LoanerID: loanerID})
	}
	return err
}

func lockReputation(ctx context.Context, r uow.Repos, loanerID string) (*reputation.Reputation, error) {
	rep, err := r.Reputations.GetByLoanerIDForUpdate(ctx, loanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rep = &reputation.Reputation{LoanerID: loanerID}
		if err := r.Reputations.Create(ctx, rep); err != nil {
			return nil, err
		}
		return rep, nil
	}
	return rep, err
}

// transfer debits fromID and credits toID inside the enclosing transaction.
// Rows are locked in key order so opposing transfers cannot deadlock; the
// credited row is created if the identity has never held funds.
func transfer(ctx context.Context, r uow.Repos, fromID, toID string, amount uint64) error {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	rows := make(map[string]*account.Account, 2)
	for _, aid := range []string{first, second} {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, aid)
		switch {
		case err == nil:
			rows[aid] = a
		case errors.Is(err, gorm.ErrRecordNotFound):
			if aid == fromID {
				return contract.ErrInsufficientFunds
			}
		default:
			return err
		}
	}

	from := rows[fromID]
	if from.Balance < amount {
		return contract.ErrInsufficientFunds
	}
	from.Balance -= amount
	if err := r.Accounts.Save(ctx, from); err != nil {
		return err
	}

	if to := rows[toID]; to != nil {
		to.Balance += amount
		return r.Accounts.Save(ctx, to)
	}
	return r.Accounts.Create(ctx, &account.Account{AccountID: toID, Balance: amount})
}

func toContractDTO(c *contract.Contract) *ContractDTO {
	return &ContractDTO{
		ContractID:      c.ContractID,
		LoanerID:        c.LoanerID,
		OwnerID:         c.OwnerID,
		Principal:       c.Principal,
		InterestBps:     c.InterestBps,
		State:           string(c.State),
		IsConfirmed:     c.IsConfirmed,
		IsLatePaid:      c.IsLatePaid,
		CashbackClaimed: c.CashbackClaimed,
		DueAt:           c.DueAt,
		CreatedAt:       c.CreatedAt,
		SettledAt:       c.SettledAt,
	}
}
