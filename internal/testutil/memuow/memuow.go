// Package memuow is an in-memory unit of work for tests. It keeps all three
// record kinds in maps and rolls the whole store back when a transaction
// function returns an error, so tests can assert that failed transitions
// leave no partial state.
package memuow

import (
	"context"
	"sort"

	"loanly-backend/internal/domain/account"
	"loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/reputation"
	"loanly-backend/internal/domain/uow"

	"gorm.io/gorm"
)

var _ uow.UnitOfWork = (*Store)(nil)

type Store struct {
	seq         uint64
	contracts   map[uint64]*contract.Contract
	reputations map[string]*reputation.Reputation
	accounts    map[string]*account.Account
}

func New() *Store {
	return &Store{
		contracts:   map[uint64]*contract.Contract{},
		reputations: map[string]*reputation.Reputation{},
		accounts:    map[string]*account.Account{},
	}
}

// Seed helpers for test setup (no transaction semantics).

func (s *Store) SeedAccount(accountID string, balance uint64) {
	s.seq++
	s.accounts[accountID] = &account.Account{ID: s.seq, AccountID: accountID, Balance: balance}
}

func (s *Store) SeedReputation(loanerID string, total, late uint64) {
	s.seq++
	s.reputations[loanerID] = &reputation.Reputation{ID: s.seq, LoanerID: loanerID, TotalLoans: total, LatePaidLoans: late}
}

func (s *Store) SeedContract(c *contract.Contract) {
	s.seq++
	c.ID = s.seq
	cp := *c
	s.contracts[c.ID] = &cp
}

// Inspection helpers.

func (s *Store) Balance(accountID string) uint64 {
	if a, ok := s.accounts[accountID]; ok {
		return a.Balance
	}
	return 0
}

func (s *Store) ReputationOf(loanerID string) *reputation.Reputation {
	return s.reputations[loanerID]
}

func (s *Store) LatestContract(loanerID string) *contract.Contract {
	c, _ := s.latestByLoaner(loanerID, false)
	return c
}

func (s *Store) latestByLoaner(loanerID string, activeOnly bool) (*contract.Contract, bool) {
	ids := make([]uint64, 0, len(s.contracts))
	for cid := range s.contracts {
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	for _, cid := range ids {
		c := s.contracts[cid]
		if c.LoanerID != loanerID {
			continue
		}
		if activeOnly && c.State.Terminal() {
			continue
		}
		return c, true
	}
	return nil, false
}

func (s *Store) snapshot() *Store {
	cp := New()
	cp.seq = s.seq
	for k, v := range s.contracts {
		c := *v
		if v.SettledAt != nil {
			at := *v.SettledAt
			c.SettledAt = &at
		}
		cp.contracts[k] = &c
	}
	for k, v := range s.reputations {
		r := *v
		cp.reputations[k] = &r
	}
	for k, v := range s.accounts {
		a := *v
		cp.accounts[k] = &a
	}
	return cp
}

func (s *Store) restore(snap *Store) {
	s.seq = snap.seq
	s.contracts = snap.contracts
	s.reputations = snap.reputations
	s.accounts = snap.accounts
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Contracts:   &contractRepo{s: s},
		Reputations: &reputationRepo{s: s},
		Accounts:    &accountRepo{s: s},
	}
}

// Repos returns repositories bound to the live store, for read paths that do
// not go through a transaction.
func (s *Store) Repos() uow.Repos { return s.repos() }

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	snap := s.snapshot()
	if err := fn(s.repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) WithinContractTx(ctx context.Context, loanerID string, fn func(r uow.Repos, c *contract.Contract) error) error {
	snap := s.snapshot()
	c, ok := s.latestByLoaner(loanerID, false)
	if !ok {
		return contract.ErrNotFound
	}
	if err := fn(s.repos(), c); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ---- repository implementations ----

type contractRepo struct{ s *Store }

func (r *contractRepo) Create(ctx context.Context, c *contract.Contract) error {
	r.s.seq++
	c.ID = r.s.seq
	cp := *c
	r.s.contracts[c.ID] = &cp
	return nil
}

func (r *contractRepo) Save(ctx context.Context, c *contract.Contract) error {
	if _, ok := r.s.contracts[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.s.contracts[c.ID] = &cp
	return nil
}

func (r *contractRepo) GetByContractID(ctx context.Context, contractID string) (*contract.Contract, error) {
	for _, c := range r.s.contracts {
		if c.ContractID == contractID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *contractRepo) GetActiveByLoanerID(ctx context.Context, loanerID string) (*contract.Contract, error) {
	if c, ok := r.s.latestByLoaner(loanerID, true); ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *contractRepo) GetLatestByLoanerID(ctx context.Context, loanerID string) (*contract.Contract, error) {
	if c, ok := r.s.latestByLoaner(loanerID, false); ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *contractRepo) GetLatestByLoanerIDForUpdate(ctx context.Context, loanerID string) (*contract.Contract, error) {
	return r.GetLatestByLoanerID(ctx, loanerID)
}

type reputationRepo struct{ s *Store }

func (r *reputationRepo) Create(ctx context.Context, rep *reputation.Reputation) error {
	r.s.seq++
	rep.ID = r.s.seq
	r.s.reputations[rep.LoanerID] = rep
	return nil
}

func (r *reputationRepo) Save(ctx context.Context, rep *reputation.Reputation) error {
	r.s.reputations[rep.LoanerID] = rep
	return nil
}

func (r *reputationRepo) GetByLoanerID(ctx context.Context, loanerID string) (*reputation.Reputation, error) {
	if rep, ok := r.s.reputations[loanerID]; ok {
		return rep, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *reputationRepo) GetByLoanerIDForUpdate(ctx context.Context, loanerID string) (*reputation.Reputation, error) {
	return r.GetByLoanerID(ctx, loanerID)
}

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(ctx context.Context, a *account.Account) error {
	r.s.seq++
	a.ID = r.s.seq
	r.s.accounts[a.AccountID] = a
	return nil
}

func (r *accountRepo) Save(ctx context.Context, a *account.Account) error {
	r.s.accounts[a.AccountID] = a
	return nil
}

func (r *accountRepo) GetByAccountID(ctx context.Context, accountID string) (*account.Account, error) {
	if a, ok := r.s.accounts[accountID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *accountRepo) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*account.Account, error) {
	return r.GetByAccountID(ctx, accountID)
}
