package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
)

// Expense is a dated, categorized debit against the wallet balance.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description *string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Posting returns the signed ledger contribution: expenses always debit the wallet.
func (e *Expense) Posting() ledger.Posting {
	return ledger.Debit(ledger.AccountWallet, e.Amount)
}

// ExpenseResponse is the JSON response format for expenses
type ExpenseResponse struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description *string         `json:"description"`
}

// ToResponse converts Expense to ExpenseResponse
func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
	}
}
