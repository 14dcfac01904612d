package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// ObligationFilter narrows borrow/lend list queries
type ObligationFilter struct {
	Status string
	Range  DateRange
}

// BorrowRepository defines the interface for borrow data access
type BorrowRepository interface {
	Create(ctx context.Context, borrow *models.Borrow) error
	FindByID(ctx context.Context, id, userID uint) (*models.Borrow, error)
	FindByUser(ctx context.Context, userID uint, filter ObligationFilter) ([]models.Borrow, error)
	FindPendingPastDue(ctx context.Context, userID uint) ([]models.Borrow, error)
	Update(ctx context.Context, borrow *models.Borrow) error
	Delete(ctx context.Context, id, userID uint) error
}

type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository creates a new borrow repository
func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Create(ctx context.Context, borrow *models.Borrow) error {
	return r.db.WithContext(ctx).Create(borrow).Error
}

func (r *borrowRepository) FindByID(ctx context.Context, id, userID uint) (*models.Borrow, error) {
	var borrow models.Borrow
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&borrow).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

func (r *borrowRepository) FindByUser(ctx context.Context, userID uint, filter ObligationFilter) ([]models.Borrow, error) {
	var borrows []models.Borrow

	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" && filter.Status != "all" {
		db = db.Where("status = ?", filter.Status)
	}
	db = applyDateRange(db, "date", filter.Range)

	err := db.Order("date DESC, id DESC").Find(&borrows).Error
	return borrows, err
}

// FindPendingPastDue returns unsettled borrows whose transaction date has
// passed, used for repayment reminder notifications.
func (r *borrowRepository) FindPendingPastDue(ctx context.Context, userID uint) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ? AND date < CURRENT_DATE", userID, models.BorrowStatusSettled).
		Order("date ASC").
		Find(&borrows).Error
	return borrows, err
}

func (r *borrowRepository) Update(ctx context.Context, borrow *models.Borrow) error {
	return r.db.WithContext(ctx).Save(borrow).Error
}

// Delete removes the borrow and, via the FK cascade, its repayment history.
func (r *borrowRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Borrow{}).Error
}
