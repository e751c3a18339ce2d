package mysql

import (
	"context"
	"errors"
	"testing"

	accountDomain "loanly-backend/internal/domain/account"
	reputationDomain "loanly-backend/internal/domain/reputation"
	"loanly-backend/pkg/id"

	"gorm.io/gorm"
)

func TestAccountCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	accID := id.NewID32()
	if _, err := repo.GetByAccountID(ctx, accID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}

	a := &accountDomain.Account{AccountID: accID, Balance: 500_000_000}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByAccountID(ctx, accID)
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if got.Balance != 500_000_000 {
		t.Fatalf("balance = %d, want 500000000", got.Balance)
	}
}

func TestAccountSaveBalance(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	a := &accountDomain.Account{AccountID: id.NewID32(), Balance: 100}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a.Balance = 250
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByAccountID(ctx, a.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if got.Balance != 250 {
		t.Fatalf("balance = %d, want 250", got.Balance)
	}
}

func TestReputationCreateAndSave(t *testing.T) {
	db := openTestDB(t)
	repo := NewReputationRepository(db)
	ctx := context.Background()

	loaner := id.NewID32()
	if _, err := repo.GetByLoanerID(ctx, loaner); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}

	rep := &reputationDomain.Reputation{LoanerID: loaner}
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rep.TotalLoans = 1
	if err := repo.Save(ctx, rep); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanerID(ctx, loaner)
	if err != nil {
		t.Fatalf("GetByLoanerID: %v", err)
	}
	if got.TotalLoans != 1 || got.LatePaidLoans != 0 {
		t.Fatalf("counters = %d/%d, want 1/0", got.TotalLoans, got.LatePaidLoans)
	}
}
