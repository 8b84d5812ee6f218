package models

import "time"

// Referral is an append-only row recording that referrer invited referred.
// Rows are never updated after creation.
type Referral struct {
	ID         int       `json:"id"`
	ReferrerID int       `json:"referrer_id"`
	ReferredID int       `json:"referred_id"`
	Points     string    `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// InitialPoints is the points value assigned to a new referral row.
const InitialPoints = "0.00"

type CreateReferralInput struct {
	ReferrerID int `json:"referrer_id" binding:"required"`
	ReferredID int `json:"referred_id" binding:"required"`
}
