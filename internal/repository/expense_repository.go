package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// ExpenseFilter narrows expense list queries
type ExpenseFilter struct {
	Category string
	Range    DateRange
}

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id, userID uint) (*models.Expense, error)
	FindByUser(ctx context.Context, userID uint, filter ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id, userID uint) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id, userID uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByUser(ctx context.Context, userID uint, filter ExpenseFilter) ([]models.Expense, error) {
	var expenses []models.Expense

	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != "" && filter.Category != "all" {
		db = db.Where("category = ?", filter.Category)
	}
	db = applyDateRange(db, "date", filter.Range)

	err := db.Order("date DESC, id DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{}).Error
}
