package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportFile is a rendered report ready to be sent as an attachment
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

type ExportService struct {
	analyticsSvc *AnalyticsService
}

func NewExportService(analyticsSvc *AnalyticsService) *ExportService {
	return &ExportService{analyticsSvc: analyticsSvc}
}

// Export renders the current analytics report in format
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(format)
	switch format {
	case FormatCSV, FormatXLSX, FormatPDF:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	report, err := s.analyticsSvc.Report(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return s.ExportCSV(report)
	case FormatXLSX:
		return s.ExportXLSX(report)
	default:
		return s.ExportPDF(report)
	}
}

func reportFilename(r *AnalyticsReport, ext string) string {
	return fmt.Sprintf("analytics_report_%s.%s", r.GeneratedAt.Format(time.DateOnly), ext)
}

// periodRows lists the headline figures of one period as label/value pairs
func periodRows(m models.PeriodMetrics, symbol string) [][]string {
	return [][]string{
		{"Period", fmt.Sprintf("%s - %s", m.Start.Format(time.DateOnly), m.End.Format(time.DateOnly))},
		{"New clients", strconv.Itoa(m.NewClients)},
		{"Business visits", strconv.Itoa(m.BusinessVisits)},
		{"Goals completed", strconv.Itoa(m.GoalsCompleted)},
		{"Payments received", strconv.Itoa(m.PaymentsReceived)},
		{"Total revenue", metrics.FormatCurrency(m.TotalRevenue, symbol)},
		{"Average payment", metrics.FormatCurrency(m.AveragePayment, symbol)},
	}
}

func retentionRows(r models.ClientRetentionMetrics) [][]string {
	return [][]string{
		{"Total clients", strconv.Itoa(r.TotalClients)},
		{"Returning clients", strconv.Itoa(r.ClientsWithMultipleVisits)},
		{"Retention rate", fmt.Sprintf("%.1f%%", r.RetentionRate)},
		{"Average days between visits", fmt.Sprintf("%.1f", r.AverageDaysBetweenVisits)},
	}
}

func (s *ExportService) ExportCSV(r *AnalyticsReport) (*ExportFile, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Analytics Report", r.GeneratedAt.Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"This Week"})
	_ = writer.WriteAll(periodRows(r.Weekly.PeriodMetrics, r.CurrencySymbol))
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"This Month"})
	_ = writer.WriteAll(periodRows(r.Monthly.PeriodMetrics, r.CurrencySymbol))
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Retention"})
	_ = writer.WriteAll(retentionRows(r.Retention))
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Date", "Clients", "Visits", "Payments", "Revenue"})
	for _, d := range r.Trend {
		_ = writer.Write([]string{
			d.Date.Format(time.DateOnly),
			strconv.Itoa(d.Clients),
			strconv.Itoa(d.Visits),
			strconv.Itoa(d.Payments),
			d.Revenue.StringFixed(2),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: reportFilename(r, FormatCSV), ContentType: "text/csv"}, nil
}

func (s *ExportService) ExportXLSX(r *AnalyticsReport) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	_ = f.SetSheetName("Sheet1", summary)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(summary, "A1", "Analytics Report")
	_ = f.SetCellValue(summary, "B1", r.GeneratedAt.Format("2006-01-02 15:04"))
	_ = f.SetCellStyle(summary, "A1", "A1", headerStyle)

	row := 3
	section := func(title string, rows [][]string) {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(summary, cell, title)
		_ = f.SetCellStyle(summary, cell, cell, headerStyle)
		row++
		for _, kv := range rows {
			_ = f.SetSheetRow(summary, fmt.Sprintf("A%d", row), &[]string{kv[0], kv[1]})
			row++
		}
		row++
	}
	section("This Week", periodRows(r.Weekly.PeriodMetrics, r.CurrencySymbol))
	section("This Month", periodRows(r.Monthly.PeriodMetrics, r.CurrencySymbol))
	section("Retention", retentionRows(r.Retention))
	_ = f.SetColWidth(summary, "A", "A", 30)

	trend := "Trend"
	if _, err := f.NewSheet(trend); err != nil {
		return nil, err
	}
	_ = f.SetSheetRow(trend, "A1", &[]string{"Date", "Clients", "Visits", "Payments", "Revenue"})
	for i, d := range r.Trend {
		revenue, _ := d.Revenue.Float64()
		_ = f.SetSheetRow(trend, fmt.Sprintf("A%d", i+2), &[]any{
			d.Date.Format(time.DateOnly), d.Clients, d.Visits, d.Payments, revenue,
		})
	}

	top := "Top Clients"
	if _, err := f.NewSheet(top); err != nil {
		return nil, err
	}
	_ = f.SetSheetRow(top, "A1", &[]string{"Client", "Visits"})
	for i, c := range r.Retention.TopReturningClients {
		_ = f.SetSheetRow(top, fmt.Sprintf("A%d", i+2), &[]any{c.Name, c.Count})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    reportFilename(r, FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (s *ExportService) ExportPDF(r *AnalyticsReport) (*ExportFile, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	// core fonts are cp1252; translate so client names with accents render
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Analytics Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	section := func(title string, rows [][]string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 10, title)
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, kv := range rows {
			pdf.Cell(70, 8, tr(kv[0]+":"))
			pdf.Cell(60, 8, tr(kv[1]))
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}
	section("This Week", periodRows(r.Weekly.PeriodMetrics, r.CurrencySymbol))
	section("This Month", periodRows(r.Monthly.PeriodMetrics, r.CurrencySymbol))
	section("Retention", retentionRows(r.Retention))

	if len(r.Retention.TopReturningClients) > 0 {
		rows := make([][]string, 0, len(r.Retention.TopReturningClients))
		for _, c := range r.Retention.TopReturningClients {
			rows = append(rows, []string{c.Name, fmt.Sprintf("%d visits", c.Count)})
		}
		section("Top Returning Clients", rows)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: reportFilename(r, FormatPDF), ContentType: "application/pdf"}, nil
}
