package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/ledger"
)

// Saving is a movement into or out of the savings balance. The balance is
// the fold sum(manual)+sum(auto)-sum(spend); it is never stored.
type Saving struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type      string          `gorm:"size:50;not null;index" json:"type"`
	Reason    string          `gorm:"size:255" json:"reason"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt time.Time       `json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Saving
func (Saving) TableName() string {
	return "savings"
}

// Saving type constants
const (
	SavingTypeManual = "manual"
	SavingTypeAuto   = "auto"
	SavingTypeSpend  = "spend"
)

// IsSpend returns true if the entry takes money out of savings
func (s *Saving) IsSpend() bool {
	return s.Type == SavingTypeSpend
}

// Posting returns the signed ledger contribution of this entry.
func (s *Saving) Posting() ledger.Posting {
	if s.IsSpend() {
		return ledger.Debit(ledger.AccountSavings, s.Amount)
	}
	return ledger.Credit(ledger.AccountSavings, s.Amount)
}

// SavingResponse is the JSON response format for savings entries
type SavingResponse struct {
	ID        uint            `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Reason    string          `json:"reason"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToResponse converts Saving to SavingResponse
func (s *Saving) ToResponse() SavingResponse {
	return SavingResponse{
		ID:        s.ID,
		Amount:    s.Amount,
		Type:      s.Type,
		Reason:    s.Reason,
		Date:      s.Date.Format("2006-01-02"),
		CreatedAt: s.CreatedAt,
	}
}
