package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack-api/internal/models"
)

// RepaymentFilter narrows repayment list queries
type RepaymentFilter struct {
	Type   string // all | borrow | lend
	Status string // all | pending | settled
	Range  DateRange
}

// RepaymentApplication bundles everything a single repayment persists:
// the repayment row, the counterpart movement on the paying/receiving
// account, and the obligation with its decremented remaining amount.
// Apply writes all of it in one transaction so the repayment record is
// the single durable source of truth for the operation.
type RepaymentApplication struct {
	Repayment *models.Repayment
	Expense   *models.Expense // counterpart when paying out of the wallet
	Saving    *models.Saving  // counterpart when savings is involved
	Income    *models.Income  // counterpart when receiving into the wallet
	Borrow    *models.Borrow  // updated obligation (one of Borrow/Lend set)
	Lend      *models.Lend
}

// RepaymentRepository defines the interface for repayment data access
type RepaymentRepository interface {
	Apply(ctx context.Context, app *RepaymentApplication) error
	FindByBorrow(ctx context.Context, borrowID, userID uint) ([]models.Repayment, error)
	FindByLend(ctx context.Context, lendID, userID uint) ([]models.Repayment, error)
	SumForBorrow(ctx context.Context, borrowID uint) (decimal.Decimal, error)
	SumForLend(ctx context.Context, lendID uint) (decimal.Decimal, error)
	List(ctx context.Context, userID uint, filter RepaymentFilter) ([]models.Repayment, error)
}

type repaymentRepository struct {
	db *gorm.DB
}

// NewRepaymentRepository creates a new repayment repository
func NewRepaymentRepository(db *gorm.DB) RepaymentRepository {
	return &repaymentRepository{db: db}
}

func (r *repaymentRepository) Apply(ctx context.Context, app *RepaymentApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app.Repayment).Error; err != nil {
			return err
		}
		if app.Expense != nil {
			if err := tx.Create(app.Expense).Error; err != nil {
				return err
			}
		}
		if app.Saving != nil {
			if err := tx.Create(app.Saving).Error; err != nil {
				return err
			}
		}
		if app.Income != nil {
			if err := tx.Create(app.Income).Error; err != nil {
				return err
			}
		}
		if app.Borrow != nil {
			if err := tx.Save(app.Borrow).Error; err != nil {
				return err
			}
		}
		if app.Lend != nil {
			if err := tx.Save(app.Lend).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repaymentRepository) FindByBorrow(ctx context.Context, borrowID, userID uint) ([]models.Repayment, error) {
	var repayments []models.Repayment
	err := r.db.WithContext(ctx).
		Joins("JOIN borrows ON borrows.id = repayments.borrow_id").
		Where("repayments.borrow_id = ? AND borrows.user_id = ?", borrowID, userID).
		Order("repayments.date ASC, repayments.id ASC").
		Find(&repayments).Error
	return repayments, err
}

func (r *repaymentRepository) FindByLend(ctx context.Context, lendID, userID uint) ([]models.Repayment, error) {
	var repayments []models.Repayment
	err := r.db.WithContext(ctx).
		Joins("JOIN lends ON lends.id = repayments.lend_id").
		Where("repayments.lend_id = ? AND lends.user_id = ?", lendID, userID).
		Order("repayments.date ASC, repayments.id ASC").
		Find(&repayments).Error
	return repayments, err
}

// SumForBorrow totals all repayments recorded against a borrow. The stored
// remaining amount can always be reconciled against amount minus this sum.
func (r *repaymentRepository) SumForBorrow(ctx context.Context, borrowID uint) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Repayment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("borrow_id = ?", borrowID).
		Scan(&result).Error
	return result.Total, err
}

// SumForLend totals all repayments recorded against a lend.
func (r *repaymentRepository) SumForLend(ctx context.Context, lendID uint) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Repayment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("lend_id = ?", lendID).
		Scan(&result).Error
	return result.Total, err
}

func (r *repaymentRepository) List(ctx context.Context, userID uint, filter RepaymentFilter) ([]models.Repayment, error) {
	var repayments []models.Repayment

	db := r.db.WithContext(ctx).
		Preload("Borrow").
		Preload("Lend").
		Joins("LEFT JOIN borrows ON borrows.id = repayments.borrow_id").
		Joins("LEFT JOIN lends ON lends.id = repayments.lend_id").
		Where("borrows.user_id = ? OR lends.user_id = ?", userID, userID)

	switch filter.Type {
	case "borrow":
		db = db.Where("repayments.borrow_id IS NOT NULL")
	case "lend":
		db = db.Where("repayments.lend_id IS NOT NULL")
	}

	if filter.Status != "" && filter.Status != "all" {
		db = db.Where(
			"(repayments.borrow_id IS NOT NULL AND borrows.status = ?) OR (repayments.lend_id IS NOT NULL AND lends.status = ?)",
			filter.Status, filter.Status,
		)
	}

	db = applyDateRange(db, "repayments.date", filter.Range)

	err := db.Order("repayments.date DESC, repayments.id DESC").Find(&repayments).Error
	return repayments, err
}
