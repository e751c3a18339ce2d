package lifecycle

import "time"

type CreateContractInput struct {
	LoanerID  string    `json:"loaner_id"`
	OwnerID   string    `json:"owner_id"`
	Principal uint64    `json:"principal"`
	DueAt     time.Time `json:"due_at"`
}

type ContractDTO struct {
	ContractID      string     `json:"contract_id"`
	LoanerID        string     `json:"loaner_id"`
	OwnerID         string     `json:"owner_id"`
	Principal       uint64     `json:"principal"`
	InterestBps     uint64     `json:"interest_bps"`
	State           string     `json:"state"`
	IsConfirmed     bool       `json:"is_confirmed"`
	IsLatePaid      bool       `json:"is_late_paid"`
	CashbackClaimed bool       `json:"cashback_claimed"`
	DueAt           time.Time  `json:"due_at"`
	CreatedAt       time.Time  `json:"created_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

type ReputationDTO struct {
	LoanerID      string `json:"loaner_id"`
	TotalLoans    uint64 `json:"total_loans"`
	LatePaidLoans uint64 `json:"late_paid_loans"`
}

// PaymentDTO reports the terminal transition, including the amount actually
// transferred so callers can see the cashback effect.
type PaymentDTO struct {
	Contract   ContractDTO `json:"contract"`
	AmountPaid uint64      `json:"amount_paid"`
	Late       bool        `json:"late"`
}
