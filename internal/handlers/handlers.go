package handlers

import (
	"github.com/fintrackhq/fintrack-api/internal/jobs"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Income       *IncomeHandler
	Expense      *ExpenseHandler
	Borrow       *BorrowHandler
	Lend         *LendHandler
	Repayment    *RepaymentHandler
	Saving       *SavingHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
	Report       *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(worker),
		Auth:         NewAuthHandler(svcs.Auth),
		Income:       NewIncomeHandler(svcs.Income),
		Expense:      NewExpenseHandler(svcs.Expense),
		Borrow:       NewBorrowHandler(svcs.Borrow, svcs.Repayment),
		Lend:         NewLendHandler(svcs.Lend, svcs.Repayment),
		Repayment:    NewRepaymentHandler(svcs.Repayment),
		Saving:       NewSavingHandler(svcs.Saving),
		Dashboard:    NewDashboardHandler(svcs.Dashboard),
		Notification: NewNotificationHandler(svcs.Notification),
		Report:       NewReportHandler(svcs.Report),
	}
}
