package reputation

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("reputation not found")

// Reputation aggregates a loaner's loan history. Both counters only ever
// increment; late_paid_loans <= total_loans holds because a loan is counted
// at confirm time and can be marked late at most once, at pay time.
type Reputation struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanerID      string         `gorm:"size:32;uniqueIndex:ux_reputations_loaner" json:"loaner_id"`
	TotalLoans    uint64         `gorm:"not null;default:0" json:"total_loans"`
	LatePaidLoans uint64         `gorm:"not null;default:0" json:"late_paid_loans"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reputation) TableName() string { return "reputations" }
