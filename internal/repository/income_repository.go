package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// IncomeFilter narrows income list queries
type IncomeFilter struct {
	Source string
	Range  DateRange
}

// IncomeRepository defines the interface for income data access
type IncomeRepository interface {
	Create(ctx context.Context, income *models.Income) error
	FindByID(ctx context.Context, id, userID uint) (*models.Income, error)
	FindByUser(ctx context.Context, userID uint, filter IncomeFilter) ([]models.Income, error)
	Update(ctx context.Context, income *models.Income) error
	Delete(ctx context.Context, id, userID uint) error
}

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository
func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, income *models.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *incomeRepository) FindByID(ctx context.Context, id, userID uint) (*models.Income, error) {
	var income models.Income
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&income).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) FindByUser(ctx context.Context, userID uint, filter IncomeFilter) ([]models.Income, error) {
	var incomes []models.Income

	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Source != "" && filter.Source != "all" {
		db = db.Where("source = ?", filter.Source)
	}
	db = applyDateRange(db, "date", filter.Range)

	err := db.Order("date DESC, id DESC").Find(&incomes).Error
	return incomes, err
}

func (r *incomeRepository) Update(ctx context.Context, income *models.Income) error {
	return r.db.WithContext(ctx).Save(income).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Income{}).Error
}
