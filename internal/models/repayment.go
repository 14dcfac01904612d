package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Repayment is a single payment against a Borrow or Lend. Exactly one of
// BorrowID/LendID is set. Repayment rows are immutable once created: every
// derived fact (remaining amounts, balances) can be recomputed from them.
type Repayment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Source      *string         `gorm:"size:50" json:"source,omitempty"`
	Destination *string         `gorm:"size:50" json:"destination,omitempty"`
	Notes       *string         `gorm:"size:255" json:"notes"`
	BorrowID    *uint           `gorm:"index" json:"borrow_id,omitempty"`
	LendID      *uint           `gorm:"index" json:"lend_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Associations
	Borrow *Borrow `gorm:"foreignKey:BorrowID" json:"-"`
	Lend   *Lend   `gorm:"foreignKey:LendID" json:"-"`
}

// TableName specifies the table name for Repayment
func (Repayment) TableName() string {
	return "repayments"
}

// RepaymentResponse is the JSON response format for repayments, flattened
// with the parent obligation's counterparty and status.
type RepaymentResponse struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	Type        string          `json:"type,omitempty"`
	Person      string          `json:"person,omitempty"`
	Status      string          `json:"status,omitempty"`
	Source      *string         `json:"source,omitempty"`
	Destination *string         `json:"destination,omitempty"`
}

// ToResponse converts Repayment to RepaymentResponse
func (r *Repayment) ToResponse() RepaymentResponse {
	resp := RepaymentResponse{
		ID:          r.ID,
		Amount:      r.Amount,
		Date:        r.Date.Format("2006-01-02"),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		Source:      r.Source,
		Destination: r.Destination,
	}

	if r.BorrowID != nil && r.Borrow != nil {
		resp.Type = "borrow"
		resp.Person = r.Borrow.Person
		resp.Status = r.Borrow.Status
	} else if r.LendID != nil && r.Lend != nil {
		resp.Type = "lend"
		resp.Person = r.Lend.Person
		resp.Status = r.Lend.Status
	}

	return resp
}
