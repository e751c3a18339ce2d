package account

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("account not found")

// Account is a ledger row per identity. Balance is in unsigned base units;
// a transfer is two locked rows mutated inside one DB transaction.
type Account struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	AccountID string         `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	Balance   uint64         `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string { return "accounts" }
