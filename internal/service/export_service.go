package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/export"
)

type exportVisitorRepository interface {
	ListAll(ctx context.Context) ([]models.VisitorDetail, error)
}

type exportFeeRepository interface {
	ListAll(ctx context.Context) ([]models.FeeDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.FeeDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult captures a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders visitor logs and fee statements for download.
type ExportService struct {
	visitors exportVisitorRepository
	fees     exportFeeRepository
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(visitors exportVisitorRepository, fees exportFeeRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{visitors: visitors, fees: fees, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// VisitorLogCSV renders the full visitor register as CSV.
func (s *ExportService) VisitorLogCSV(ctx context.Context) (*ExportResult, error) {
	visitors, err := s.visitors.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visitor records")
	}

	rows := make([]map[string]string, 0, len(visitors))
	for _, v := range visitors {
		rows = append(rows, map[string]string{
			"Visitor":       v.Name,
			"Contact":       v.Contact,
			"Visit Date":    v.VisitDate.UTC().Format("2006-01-02"),
			"Purpose":       v.Purpose,
			"Status":        string(v.Status),
			"Registered By": fmt.Sprintf("%s (%s)", v.StudentName, v.StudentCustomID),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Visitor", "Contact", "Visit Date", "Purpose", "Status", "Registered By"},
		Rows:    rows,
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render visitor log")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("visitor_log_%s.csv", s.now().UTC().Format("20060102_150405")),
		ContentType: "text/csv",
		Payload:     payload,
	}, nil
}

// FeeStatementPDF renders a fee statement. An empty studentID covers every
// student; otherwise the statement is scoped to the one resident.
func (s *ExportService) FeeStatementPDF(ctx context.Context, studentID string) (*ExportResult, error) {
	var (
		fees []models.FeeDetail
		err  error
	)
	if studentID == "" {
		fees, err = s.fees.ListAll(ctx)
	} else {
		fees, err = s.fees.ListByStudent(ctx, studentID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee records")
	}

	rows := make([]map[string]string, 0, len(fees))
	var outstanding float64
	for _, f := range fees {
		if f.Status == models.FeePending {
			outstanding += f.Amount
		}
		rows = append(rows, map[string]string{
			"Student":  fmt.Sprintf("%s (%s)", f.StudentName, f.StudentCustomID),
			"Amount":   fmt.Sprintf("%.2f", f.Amount),
			"Due Date": f.DueDate.UTC().Format("2006-01-02"),
			"Status":   string(f.Status),
		})
	}
	rows = append(rows, map[string]string{
		"Student":  "Outstanding Total",
		"Amount":   fmt.Sprintf("%.2f", outstanding),
		"Due Date": "",
		"Status":   "",
	})
	dataset := export.Dataset{
		Headers: []string{"Student", "Amount", "Due Date", "Status"},
		Rows:    rows,
	}

	payload, err := s.pdf.Render(dataset, "Hostel Fee Statement")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render fee statement")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("fee_statement_%s.pdf", s.now().UTC().Format("20060102_150405")),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}
