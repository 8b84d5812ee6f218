package models

import "time"

const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
	TypeConvert    = "CONVERT"
)

// PointsToUSDRate is the mocked display-only conversion rate.
const PointsToUSDRate = 0.01

// Transaction is an append-only ledger row. No balance recomputation happens
// at this layer; amount semantics depend on Type.
type Transaction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTransactionInput struct {
	UserID int    `json:"user_id" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL CONVERT"`
	Amount string `json:"amount" binding:"required"`
}
