package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Income       IncomeRepository
	Expense      ExpenseRepository
	Borrow       BorrowRepository
	Lend         LendRepository
	Repayment    RepaymentRepository
	Saving       SavingRepository
	Report       ReportRepository
	Notification NotificationRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Income:       NewIncomeRepository(db),
		Expense:      NewExpenseRepository(db),
		Borrow:       NewBorrowRepository(db),
		Lend:         NewLendRepository(db),
		Repayment:    NewRepaymentRepository(db),
		Saving:       NewSavingRepository(db),
		Report:       NewReportRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// DateRange is an optional date window applied to list and balance queries.
type DateRange struct {
	From *string
	To   *string
}

// Empty returns true when neither bound is set
func (r DateRange) Empty() bool {
	return (r.From == nil || *r.From == "") && (r.To == nil || *r.To == "")
}

func applyDateRange(db *gorm.DB, column string, rng DateRange) *gorm.DB {
	if rng.From != nil && *rng.From != "" {
		db = db.Where(column+" >= ?", *rng.From)
	}
	if rng.To != nil && *rng.To != "" {
		db = db.Where(column+" <= ?", *rng.To)
	}
	return db
}
