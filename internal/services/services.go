package services

import (
	"github.com/fintrackhq/fintrack-api/internal/config"
	"github.com/fintrackhq/fintrack-api/internal/jobs"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	Balance      *BalanceService
	Income       *IncomeService
	Expense      *ExpenseService
	Borrow       *BorrowService
	Lend         *LendService
	Repayment    *RepaymentService
	Saving       *SavingService
	Dashboard    *DashboardService
	Notification *NotificationService
	Report       *ReportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	balanceSvc := NewBalanceService(repos.Income, repos.Expense, repos.Borrow, repos.Lend, repos.Saving)
	notificationSvc := NewNotificationService(repos.Notification, repos.User, repos.Borrow, repos.Lend, balanceSvc, cfg.LowSavingsThreshold)
	dashboardSvc := NewDashboardService(repos.Income, repos.Expense, repos.Borrow, repos.Lend, repos.Saving, balanceSvc)
	reportSvc := NewReportService(repos.Report, repos.Income, repos.Expense, repos.Saving, dashboardSvc, notificationSvc, store)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		Balance:      balanceSvc,
		Income:       NewIncomeService(repos.Income, repos.Saving, balanceSvc, reportSvc, worker),
		Expense:      NewExpenseService(repos.Expense),
		Borrow:       NewBorrowService(repos.Borrow, repos.Repayment),
		Lend:         NewLendService(repos.Lend, repos.Repayment, balanceSvc),
		Repayment:    NewRepaymentService(repos.Repayment, repos.Borrow, repos.Lend, balanceSvc, notificationSvc),
		Saving:       NewSavingService(repos.Saving, balanceSvc),
		Dashboard:    dashboardSvc,
		Notification: notificationSvc,
		Report:       reportSvc,
	}
}
