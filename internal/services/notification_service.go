package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// NotificationService handles in-app notifications and the recurring
// reminder checks that produce them.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	borrowRepo       repository.BorrowRepository
	lendRepo         repository.LendRepository
	balanceSvc       *BalanceService
	lowSavings       decimal.Decimal
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	borrowRepo repository.BorrowRepository,
	lendRepo repository.LendRepository,
	balanceSvc *BalanceService,
	lowSavingsThreshold string,
) *NotificationService {
	threshold, err := decimal.NewFromString(lowSavingsThreshold)
	if err != nil {
		logger.Warn(fmt.Sprintf("invalid low savings threshold %q, using 0", lowSavingsThreshold))
		threshold = decimal.Zero
	}

	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		borrowRepo:       borrowRepo,
		lendRepo:         lendRepo,
		balanceSvc:       balanceSvc,
		lowSavings:       threshold,
	}
}

// NotifyUser creates a notification for a user
func (s *NotificationService) NotifyUser(ctx context.Context, userID uint, title, message, notificationType string) error {
	notification := &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: &notificationType,
	}
	return s.notificationRepo.Create(ctx, notification)
}

// List returns all notifications for a user, newest first
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.notificationRepo.FindByUser(ctx, userID)
}

// MarkAsRead marks a single notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !notification.IsRead() {
		notification.MarkAsRead()
		if err := s.notificationRepo.Update(ctx, notification); err != nil {
			return nil, err
		}
	}

	return notification, nil
}

// MarkAllAsRead marks every unread notification for a user as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

// CheckDueRepayments scans every user for unsettled obligations whose date
// has passed and creates reminder notifications. At most one reminder of
// each type per user per day.
func (s *NotificationService) CheckDueRepayments(ctx context.Context) error {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	since := time.Now().Add(-24 * time.Hour)

	for _, user := range users {
		exists, err := s.notificationRepo.ExistsSince(ctx, user.ID, models.NotificationTypeRepaymentDue, since)
		if err != nil {
			logger.Error(fmt.Sprintf("repayment reminder check failed for user %d: %v", user.ID, err))
			continue
		}
		if exists {
			continue
		}

		borrows, err := s.borrowRepo.FindPendingPastDue(ctx, user.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to load past due borrows for user %d: %v", user.ID, err))
			continue
		}

		lends, err := s.lendRepo.FindPendingPastDue(ctx, user.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to load past due lends for user %d: %v", user.ID, err))
			continue
		}

		if len(borrows) == 0 && len(lends) == 0 {
			continue
		}

		message := dueMessage(len(borrows), len(lends))
		if err := s.NotifyUser(ctx, user.ID, "Pending repayments", message, models.NotificationTypeRepaymentDue); err != nil {
			logger.Error(fmt.Sprintf("failed to notify user %d: %v", user.ID, err))
		}
	}

	return nil
}

func dueMessage(borrows, lends int) string {
	switch {
	case borrows > 0 && lends > 0:
		return fmt.Sprintf("You have %d debt(s) to repay and %d loan(s) awaiting collection.", borrows, lends)
	case borrows > 0:
		return fmt.Sprintf("You have %d debt(s) with repayments due.", borrows)
	default:
		return fmt.Sprintf("You have %d loan(s) awaiting collection.", lends)
	}
}

// CheckLowSavings warns users whose savings balance has dropped below the
// configured threshold. At most one warning per user per day.
func (s *NotificationService) CheckLowSavings(ctx context.Context) error {
	if !s.lowSavings.IsPositive() {
		return nil
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	since := time.Now().Add(-24 * time.Hour)

	for _, user := range users {
		exists, err := s.notificationRepo.ExistsSince(ctx, user.ID, models.NotificationTypeLowSavings, since)
		if err != nil {
			logger.Error(fmt.Sprintf("low savings check failed for user %d: %v", user.ID, err))
			continue
		}
		if exists {
			continue
		}

		balance, err := s.balanceSvc.SavingsBalance(ctx, user.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to fold savings balance for user %d: %v", user.ID, err))
			continue
		}

		if balance.GreaterThanOrEqual(s.lowSavings) {
			continue
		}

		message := fmt.Sprintf("Your savings balance is %s, below your %s threshold.", balance.StringFixed(2), s.lowSavings.StringFixed(2))
		if err := s.NotifyUser(ctx, user.ID, "Low savings", message, models.NotificationTypeLowSavings); err != nil {
			logger.Error(fmt.Sprintf("failed to notify user %d: %v", user.ID, err))
		}
	}

	return nil
}
