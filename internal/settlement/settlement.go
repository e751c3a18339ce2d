// Package settlement computes repayment amounts for loan contracts.
// All arithmetic is integer basis points over math/big intermediates with
// truncation toward zero, so amounts are deterministic across platforms.
package settlement

import (
	"math/big"
	"time"
)

// BasisPoints is the fixed-point denominator: 10000 bps = factor 1.0.
const BasisPoints = 10_000

var basisPoints = big.NewInt(BasisPoints)

// FullRepayment returns floor(principal * interestBps / 10000), the amount
// owed when no cashback applies.
func FullRepayment(principal, interestBps uint64) uint64 {
	owed := new(big.Int).SetUint64(principal)
	owed.Mul(owed, new(big.Int).SetUint64(interestBps))
	owed.Quo(owed, basisPoints)
	return owed.Uint64()
}

// OnTimeRepayment returns the discounted amount owed when the loan is paid
// on time. The cashback reduces the effective multiplier, not the gross
// amount: floor(principal * (interestBps - cashbackBps) / 10000).
func OnTimeRepayment(principal, interestBps, cashbackBps uint64) uint64 {
	if cashbackBps > interestBps {
		cashbackBps = interestBps
	}
	return FullRepayment(principal, interestBps-cashbackBps)
}

// IsLate reports whether the payment misses the due date. The comparison is
// strict: paying exactly at dueAt is on time.
func IsLate(paidAt, dueAt time.Time) bool {
	return paidAt.After(dueAt)
}
