package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
)

// Lend represents money the user has lent to a counterparty.
// The principal leaves the Source account when the record is created and
// comes back through repayment transactions.
type Lend struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Person          string          `gorm:"size:100;not null" json:"person"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"remaining_amount"`
	Description     *string         `gorm:"type:text" json:"description"`
	Status          string          `gorm:"size:20;default:pending;not null;index" json:"status"`
	Source          string          `gorm:"size:50;not null" json:"source"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Associations
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Repayments []Repayment `gorm:"foreignKey:LendID;constraint:OnDelete:CASCADE" json:"repayments,omitempty"`
}

// TableName specifies the table name for Lend
func (Lend) TableName() string {
	return "lends"
}

// Lend status constants
const (
	LendStatusPending = "pending"
	LendStatusSettled = "settled"
)

// IsSettled returns true if the loan is fully repaid. Settled is terminal.
func (l *Lend) IsSettled() bool {
	return l.Status == LendStatusSettled
}

// MayReceive returns true if the lend accepts further repayments
func (l *Lend) MayReceive() bool {
	return !l.IsSettled() && l.RemainingAmount.IsPositive()
}

// Posting returns the ledger contribution of the principal: the lent money
// leaves the source account.
func (l *Lend) Posting() ledger.Posting {
	return ledger.Debit(ledger.Account(l.Source), l.Amount)
}

// LendResponse is the JSON response format for lends
type LendResponse struct {
	ID              uint            `json:"id"`
	Person          string          `json:"person"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Description     *string         `json:"description"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Source          string          `json:"source"`
	Date            string          `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToResponse converts Lend to LendResponse
func (l *Lend) ToResponse() LendResponse {
	return LendResponse{
		ID:              l.ID,
		Person:          l.Person,
		Amount:          l.Amount,
		RemainingAmount: l.RemainingAmount,
		Description:     l.Description,
		Type:            "lend",
		Status:          l.Status,
		Source:          l.Source,
		Date:            l.Date.Format("2006-01-02"),
		CreatedAt:       l.CreatedAt,
	}
}
