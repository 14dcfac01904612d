package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id, userID uint) (*models.Report, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Report, error)
	Delete(ctx context.Context, id, userID uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id, userID uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Report{}).Error
}
