package models

import (
	"path/filepath"
	"time"
)

// Report is a generated report file (CSV, XLSX or PDF) stored on disk.
type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Range     string    `gorm:"size:50" json:"range"`
	FilePath  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "reports"
}

// Report type constants
const (
	ReportTypeSummaryCSV   = "summary_csv"
	ReportTypeSummaryXLSX  = "summary_xlsx"
	ReportTypeBalancePDF   = "balance_pdf"
	ReportTypeSalaryCredit = "salary_credit_auto"
)

// ReportResponse is the JSON response format for reports
type ReportResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Range     string    `json:"range"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Report to ReportResponse
func (r *Report) ToResponse() ReportResponse {
	name := filepath.Base(r.FilePath)
	return ReportResponse{
		ID:        r.ID,
		Type:      r.Type,
		Range:     r.Range,
		FileName:  name,
		CreatedAt: r.CreatedAt,
	}
}
