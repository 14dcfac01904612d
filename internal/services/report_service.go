package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/storage"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// ReportService generates downloadable report files (CSV, XLSX, PDF) and
// keeps their records. Files live in local storage; the database row points
// at the relative path.
type ReportService struct {
	reportRepo      repository.ReportRepository
	incomeRepo      repository.IncomeRepository
	expenseRepo     repository.ExpenseRepository
	savingRepo      repository.SavingRepository
	dashboardSvc    *DashboardService
	notificationSvc *NotificationService
	storage         *storage.LocalStorage
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	savingRepo repository.SavingRepository,
	dashboardSvc *DashboardService,
	notificationSvc *NotificationService,
	store *storage.LocalStorage,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		incomeRepo:      incomeRepo,
		expenseRepo:     expenseRepo,
		savingRepo:      savingRepo,
		dashboardSvc:    dashboardSvc,
		notificationSvc: notificationSvc,
		storage:         store,
	}
}

func rangeLabel(rng repository.DateRange) string {
	if rng.Empty() {
		return "all"
	}
	from, to := "", ""
	if rng.From != nil {
		from = *rng.From
	}
	if rng.To != nil {
		to = *rng.To
	}
	return fmt.Sprintf("%s..%s", from, to)
}

// GenerateSummaryCSV builds a CSV summary of balances, totals and the
// transactions in the requested range.
func (s *ReportService) GenerateSummaryCSV(ctx context.Context, userID uint, rng repository.DateRange) (*models.Report, error) {
	summary, err := s.dashboardSvc.Summary(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.FindByUser(ctx, userID, repository.IncomeFilter{Range: rng})
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByUser(ctx, userID, repository.ExpenseFilter{Range: rng})
	if err != nil {
		return nil, err
	}
	savings, err := s.savingRepo.FindByUser(ctx, userID, repository.SavingFilter{Range: rng})
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	_ = w.Write([]string{"Financial summary", time.Now().Format("2006-01-02 15:04")})
	_ = w.Write([]string{""})

	_ = w.Write([]string{"Balances"})
	_ = w.Write([]string{"Wallet", summary.WalletBalance.StringFixed(2)})
	_ = w.Write([]string{"Savings", summary.SavingsBalance.StringFixed(2)})
	_ = w.Write([]string{""})

	_ = w.Write([]string{"Totals"})
	_ = w.Write([]string{"Income", summary.TotalIncome.StringFixed(2)})
	_ = w.Write([]string{"Expenses", summary.TotalExpenses.StringFixed(2)})
	_ = w.Write([]string{"Net saved", summary.NetSaved.StringFixed(2)})
	_ = w.Write([]string{"Borrowed outstanding", summary.BorrowOutstanding.StringFixed(2)})
	_ = w.Write([]string{"Lent outstanding", summary.LendOutstanding.StringFixed(2)})
	_ = w.Write([]string{""})

	_ = w.Write([]string{"Income"})
	_ = w.Write([]string{"Date", "Source", "Destination", "Amount"})
	for i := range incomes {
		_ = w.Write([]string{
			incomes[i].Date.Format("2006-01-02"),
			incomes[i].Source,
			incomes[i].Destination,
			incomes[i].Amount.StringFixed(2),
		})
	}
	_ = w.Write([]string{""})

	_ = w.Write([]string{"Expenses"})
	_ = w.Write([]string{"Date", "Category", "Amount"})
	for i := range expenses {
		_ = w.Write([]string{
			expenses[i].Date.Format("2006-01-02"),
			expenses[i].Category,
			expenses[i].Amount.StringFixed(2),
		})
	}
	_ = w.Write([]string{""})

	_ = w.Write([]string{"Savings"})
	_ = w.Write([]string{"Date", "Type", "Reason", "Amount"})
	for i := range savings {
		_ = w.Write([]string{
			savings[i].Date.Format("2006-01-02"),
			savings[i].Type,
			savings[i].Reason,
			savings[i].Amount.StringFixed(2),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	filename := fmt.Sprintf("summary_%s.csv", uuid.New().String())
	return s.store(ctx, userID, models.ReportTypeSummaryCSV, rangeLabel(rng), b.Bytes(), filename)
}

// GenerateSummaryXLSX builds an XLSX summary workbook for the range.
func (s *ReportService) GenerateSummaryXLSX(ctx context.Context, userID uint, rng repository.DateRange) (*models.Report, error) {
	summary, err := s.dashboardSvc.Summary(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summary"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Financial summary")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	_ = f.SetCellValue(sheet, "B1", time.Now().Format("2006-01-02 15:04"))

	_ = f.SetCellValue(sheet, "A3", "Balances")
	_ = f.SetCellValue(sheet, "A4", "Wallet")
	_ = f.SetCellValue(sheet, "B4", summary.WalletBalance.StringFixed(2))
	_ = f.SetCellValue(sheet, "A5", "Savings")
	_ = f.SetCellValue(sheet, "B5", summary.SavingsBalance.StringFixed(2))

	_ = f.SetCellValue(sheet, "A7", "Totals")
	_ = f.SetCellValue(sheet, "A8", "Income")
	_ = f.SetCellValue(sheet, "B8", summary.TotalIncome.StringFixed(2))
	_ = f.SetCellValue(sheet, "A9", "Expenses")
	_ = f.SetCellValue(sheet, "B9", summary.TotalExpenses.StringFixed(2))
	_ = f.SetCellValue(sheet, "A10", "Net saved")
	_ = f.SetCellValue(sheet, "B10", summary.NetSaved.StringFixed(2))
	_ = f.SetCellValue(sheet, "A11", "Borrowed outstanding")
	_ = f.SetCellValue(sheet, "B11", summary.BorrowOutstanding.StringFixed(2))
	_ = f.SetCellValue(sheet, "A12", "Lent outstanding")
	_ = f.SetCellValue(sheet, "B12", summary.LendOutstanding.StringFixed(2))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	filename := fmt.Sprintf("summary_%s.xlsx", uuid.New().String())
	return s.store(ctx, userID, models.ReportTypeSummaryXLSX, rangeLabel(rng), buf.Bytes(), filename)
}

// GenerateBalancePDF builds a PDF balance statement.
func (s *ReportService) GenerateBalancePDF(ctx context.Context, userID uint, rng repository.DateRange) (*models.Report, error) {
	summary, err := s.dashboardSvc.Summary(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Balance statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Generated:")
	pdf.Cell(40, 10, time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Balances")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Wallet:")
	pdf.Cell(40, 10, summary.WalletBalance.StringFixed(2))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Savings:")
	pdf.Cell(40, 10, summary.SavingsBalance.StringFixed(2))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Obligations")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Borrowed outstanding:")
	pdf.Cell(40, 10, summary.BorrowOutstanding.StringFixed(2))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Lent outstanding:")
	pdf.Cell(40, 10, summary.LendOutstanding.StringFixed(2))
	pdf.Ln(6)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	filename := fmt.Sprintf("balance_%s.pdf", uuid.New().String())
	return s.store(ctx, userID, models.ReportTypeBalancePDF, rangeLabel(rng), buf.Bytes(), filename)
}

// GenerateSalaryCreditReport runs in the background after a salary credit:
// a small CSV snapshot of the post-credit balances, plus a notification.
func (s *ReportService) GenerateSalaryCreditReport(ctx context.Context, userID, incomeID uint) error {
	income, err := s.incomeRepo.FindByID(ctx, incomeID, userID)
	if err != nil {
		return fmt.Errorf("failed to load salary income: %w", err)
	}

	summary, err := s.dashboardSvc.Summary(ctx, userID, repository.DateRange{})
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)
	_ = w.Write([]string{"Salary credit report", time.Now().Format("2006-01-02 15:04")})
	_ = w.Write([]string{""})
	_ = w.Write([]string{"Salary amount", income.Amount.StringFixed(2)})
	_ = w.Write([]string{"Credited on", income.Date.Format("2006-01-02")})
	_ = w.Write([]string{"Wallet balance", summary.WalletBalance.StringFixed(2)})
	_ = w.Write([]string{"Savings balance", summary.SavingsBalance.StringFixed(2)})
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	filename := fmt.Sprintf("salary_credit_%s.csv", uuid.New().String())
	report, err := s.store(ctx, userID, models.ReportTypeSalaryCredit, "auto", b.Bytes(), filename)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your salary credit report %s is ready.", filename)
	if err := s.notificationSvc.NotifyUser(ctx, userID, "Report ready", message, models.NotificationTypeReportReady); err != nil {
		logger.Error(fmt.Sprintf("failed to create report notification: %v", err))
	}

	logger.Info(fmt.Sprintf("generated salary credit report %d for user %d", report.ID, userID))
	return nil
}

func (s *ReportService) store(ctx context.Context, userID uint, reportType, rangeLbl string, data []byte, filename string) (*models.Report, error) {
	relPath, err := s.storage.Save(data, filename, "reports")
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:   userID,
		Type:     reportType,
		Range:    rangeLbl,
		FilePath: relPath,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.storage.Delete(relPath)
		return nil, fmt.Errorf("failed to save report record: %w", err)
	}

	return report, nil
}

// List returns the user's generated reports, newest first
func (s *ReportService) List(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.reportRepo.FindByUser(ctx, userID)
}

// Open returns a report record and an open handle on its file for download
func (s *ReportService) Open(ctx context.Context, userID, id uint) (*models.Report, *os.File, error) {
	report, err := s.reportRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	file, err := s.storage.Open(report.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report file: %w", err)
	}

	return report, file, nil
}

// Delete removes a report record and its file
func (s *ReportService) Delete(ctx context.Context, userID, id uint) error {
	report, err := s.reportRepo.FindByID(ctx, id, userID)
	if err != nil {
		return ErrNotFound
	}

	if err := s.reportRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(report.FilePath); err != nil && !os.IsNotExist(err) {
		logger.Warn(fmt.Sprintf("failed to remove report file %s: %v", report.FilePath, err))
	}

	return nil
}
