package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
)

// Income is a dated credit to the wallet or savings balance.
type Income struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Source      string          `gorm:"size:100;not null" json:"source"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Destination string          `gorm:"size:50;not null" json:"destination"`
	Notes       *string         `gorm:"size:255" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Income
func (Income) TableName() string {
	return "income"
}

// IsSalary returns true for salary income, which triggers the wallet sweep
func (i *Income) IsSalary() bool {
	return i.Source == "salary" || i.Source == "Salary"
}

// Posting returns the signed ledger contribution of this income.
// Amounts can be negative for transfer counter-entries (wallet sweep).
func (i *Income) Posting() ledger.Posting {
	return ledger.Credit(ledger.Account(i.Destination), i.Amount)
}

// IncomeResponse is the JSON response format for income records
type IncomeResponse struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Date        string          `json:"date"`
	Destination string          `json:"destination"`
	Notes       *string         `json:"notes"`
}

// ToResponse converts Income to IncomeResponse
func (i *Income) ToResponse() IncomeResponse {
	return IncomeResponse{
		ID:          i.ID,
		Amount:      i.Amount,
		Source:      i.Source,
		Date:        i.Date.Format("2006-01-02"),
		Destination: i.Destination,
		Notes:       i.Notes,
	}
}
