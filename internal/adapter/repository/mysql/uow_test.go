package mysql

import (
	"context"
	"errors"
	"testing"

	accountDomain "loanly-backend/internal/domain/account"
	contractDomain "loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/uow"
	"loanly-backend/pkg/id"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	accRepo := NewAccountRepository(db)

	from := id.NewID32()
	to := id.NewID32()

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Accounts.Create(ctx, &accountDomain.Account{AccountID: from, Balance: 300}); err != nil {
			return err
		}
		return r.Accounts.Create(ctx, &accountDomain.Account{AccountID: to, Balance: 0})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	got, err := accRepo.GetByAccountID(ctx, from)
	if err != nil {
		t.Fatalf("GetByAccountID after commit: %v", err)
	}
	if got.Balance != 300 {
		t.Fatalf("balance = %d, want 300", got.Balance)
	}
}

func TestGormUoW_WithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	accRepo := NewAccountRepository(db)

	accID := id.NewID32()
	boom := errors.New("boom")

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Accounts.Create(ctx, &accountDomain.Account{AccountID: accID, Balance: 100}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if _, err := accRepo.GetByAccountID(ctx, accID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("rolled-back row still visible: err = %v", err)
	}
}

func TestGormUoW_WithinContractTx_PassesLockedContract(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	ctrRepo := NewContractRepository(db)

	loaner := id.NewID32()
	c := makeContract(id.NewID32(), loaner, id.NewID32(), contractDomain.StateCreated)
	if err := ctrRepo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := guow.WithinContractTx(ctx, loaner, func(r uow.Repos, got *contractDomain.Contract) error {
		if got.ContractID != c.ContractID {
			t.Fatalf("locked contract = %s, want %s", got.ContractID, c.ContractID)
		}
		got.State = contractDomain.StateConfirmed
		got.IsConfirmed = true
		return r.Contracts.Save(ctx, got)
	})
	if err != nil {
		t.Fatalf("WithinContractTx: %v", err)
	}

	after, err := ctrRepo.GetByContractID(ctx, c.ContractID)
	if err != nil {
		t.Fatalf("GetByContractID: %v", err)
	}
	if after.State != contractDomain.StateConfirmed {
		t.Fatalf("state = %s, want confirmed", after.State)
	}
}

func TestGormUoW_WithinContractTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinContractTx(context.Background(), id.NewID32(), func(r uow.Repos, c *contractDomain.Contract) error {
		t.Fatal("fn called for missing contract")
		return nil
	})
	if !errors.Is(err, contractDomain.ErrNotFound) {
		t.Fatalf("err = %v, want contract.ErrNotFound", err)
	}
}
