package contract

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type State string

const (
	StateCreated   State = "created"
	StateConfirmed State = "confirmed"
	StatePaid      State = "paid"
	StateLatePaid  State = "late_paid"
)

// Terminal reports whether no further transition applies to the contract.
func (s State) Terminal() bool { return s == StatePaid || s == StateLatePaid }

// Policy constants. Multipliers are basis points so that settlement amounts
// are bit-reproducible: 11000 bps = 1.1, 200 bps = 0.02.
const (
	MinPrincipal       uint64 = 100_000_000
	DefaultInterestBps uint64 = 11_000
	CashbackBps        uint64 = 200
	MaxLatePaidLoans   uint64 = 3
)

var (
	ErrNotFound              = errors.New("contract not found")
	ErrInsufficientPrincipal = errors.New("principal below minimum amount")
	ErrPendingContract       = errors.New("loaner already has an unsettled contract")
	ErrUnauthorized          = errors.New("signer does not match the required party")
	ErrBadReputation         = errors.New("loaner has too many late-paid loans")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrNotConfirmed          = errors.New("contract has not been confirmed")
	ErrAlreadyConfirmed      = errors.New("contract is already confirmed")
	ErrAlreadySettled        = errors.New("contract is already settled")
)

type Contract struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	ContractID string `gorm:"size:32;uniqueIndex:ux_contracts_contract_id" json:"contract_id"`
	LoanerID   string `gorm:"size:32;index:idx_contracts_loaner_state" json:"loaner_id"`
	OwnerID    string `gorm:"size:32;index:idx_contracts_owner" json:"owner_id"`
	// Principal and the settlement multipliers are unsigned base units /
	// basis points; no floating point touches money.
	Principal   uint64 `gorm:"not null" json:"principal"`
	InterestBps uint64 `gorm:"not null;default:11000" json:"interest_bps"`
	State       State  `gorm:"type:enum('created','confirmed','paid','late_paid');default:'created';index:idx_contracts_loaner_state" json:"state"`
	// Status flags are monotone: each is set true at most once, never reset.
	IsConfirmed     bool           `gorm:"not null;default:false" json:"is_confirmed"`
	IsLatePaid      bool           `gorm:"not null;default:false" json:"is_late_paid"`
	CashbackClaimed bool           `gorm:"not null;default:false" json:"cashback_claimed"`
	DueAt           time.Time      `gorm:"not null" json:"due_at"`
	SettledAt       *time.Time     `json:"settled_at,omitempty"`
	StateUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contract) TableName() string { return "contracts" }
