package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
)

// Borrow represents money owed by the user to a counterparty.
// The principal is credited to Destination when the record is created and the
// debt is worked off by repayment transactions that decrement RemainingAmount.
type Borrow struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Person          string          `gorm:"size:100;not null" json:"person"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"remaining_amount"`
	Description     *string         `gorm:"type:text" json:"description"`
	Status          string          `gorm:"size:20;default:pending;not null;index" json:"status"`
	Destination     string          `gorm:"size:50;not null" json:"destination"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Associations
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Repayments []Repayment `gorm:"foreignKey:BorrowID;constraint:OnDelete:CASCADE" json:"repayments,omitempty"`
}

// TableName specifies the table name for Borrow
func (Borrow) TableName() string {
	return "borrows"
}

// Borrow status constants
const (
	BorrowStatusPending  = "pending"
	BorrowStatusApproved = "approved"
	BorrowStatusRejected = "rejected"
	BorrowStatusSettled  = "settled"
)

// IsSettled returns true if the debt is fully repaid. Settled is terminal.
func (b *Borrow) IsSettled() bool {
	return b.Status == BorrowStatusSettled
}

// MayApprove returns true if the borrow can be approved
func (b *Borrow) MayApprove() bool {
	return b.Status == BorrowStatusPending
}

// MayReject returns true if the borrow can be rejected
func (b *Borrow) MayReject() bool {
	return b.Status == BorrowStatusPending
}

// MayRepay returns true if the borrow accepts further repayments.
// Approval status does not gate repayment; only settlement does.
func (b *Borrow) MayRepay() bool {
	return !b.IsSettled() && b.RemainingAmount.IsPositive()
}

// Posting returns the ledger contribution of the principal: the borrowed
// money lands in the destination account.
func (b *Borrow) Posting() ledger.Posting {
	return ledger.Credit(ledger.Account(b.Destination), b.Amount)
}

// BorrowResponse is the JSON response format for borrows
type BorrowResponse struct {
	ID              uint            `json:"id"`
	Person          string          `json:"person"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Description     *string         `json:"description"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Destination     string          `json:"destination"`
	Date            string          `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToResponse converts Borrow to BorrowResponse
func (b *Borrow) ToResponse() BorrowResponse {
	return BorrowResponse{
		ID:              b.ID,
		Person:          b.Person,
		Amount:          b.Amount,
		RemainingAmount: b.RemainingAmount,
		Description:     b.Description,
		Type:            "borrow",
		Status:          b.Status,
		Destination:     b.Destination,
		Date:            b.Date.Format("2006-01-02"),
		CreatedAt:       b.CreatedAt,
	}
}
