package models

import "time"

// TransactionKind is the business reason for a ledger entry.
type TransactionKind string

const (
	TxSwapPayment     TransactionKind = "swap_payment"
	TxSignupBonus     TransactionKind = "signup_bonus"
	TxReferralBonus   TransactionKind = "referral_bonus"
	TxAdminAdjustment TransactionKind = "admin_adjustment"
)

// Transaction is an immutable, append-only ledger entry. FromUserID is empty
// for system-originated credits (signup/referral bonuses, admin adjustments).
type Transaction struct {
	ID          string
	FromUserID  string
	ToUserID    string
	SwapID      string
	Amount      int64
	Kind        TransactionKind
	Description string
	CreatedAt   time.Time
}
