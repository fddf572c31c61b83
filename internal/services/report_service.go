package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"wedding/internal/domain"
	"wedding/internal/utils"
)

const ledgerSheet = "Guest Payments"

var ledgerHeader = []string{"No", "Name", "Category", "Location", "Payment Method", "Currency", "Amount", "Note"}

// ReportService renders the filtered ledger as downloadable files.
type ReportService struct {
	RequestID string
	Location  *time.Location
	Now       func() time.Time
}

func (s ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ledgerRows turns the summary records into export rows, numbered from 1.
func ledgerRows(sum domain.LedgerSummary) [][]any {
	rows := make([][]any, 0, len(sum.Records))
	for i, p := range sum.Records {
		rows = append(rows, []any{
			i + 1,
			p.Name,
			utils.Fallback(string(p.Category), "-"),
			utils.Fallback(p.Location, "N/A"),
			p.PaymentMethod,
			string(p.Currency),
			p.Amount,
			p.Note,
		})
	}
	return rows
}

// BuildSpreadsheet writes the ledger view as an .xlsx workbook with a
// second sheet holding the totals.
func (s ReportService) BuildSpreadsheet(sum domain.LedgerSummary) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, "", err
	}

	write := func(sheet string, row int, values []any) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	header := make([]any, len(ledgerHeader))
	for i, h := range ledgerHeader {
		header[i] = h
	}
	if err := write(ledgerSheet, 1, header); err != nil {
		return nil, "", err
	}
	for i, r := range ledgerRows(sum) {
		if err := write(ledgerSheet, i+2, r); err != nil {
			return nil, "", err
		}
	}
	if err := f.SetColWidth(ledgerSheet, "B", "E", 22); err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(ledgerSheet, "H", "H", 40); err != nil {
		return nil, "", err
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", err
	}
	totals := [][]any{
		{"Total USD", sum.TotalUSD},
		{"Total KHR", sum.TotalKHR},
		{"Average USD", sum.AvgUSD},
		{"Average KHR", sum.AvgKHR},
		{"Grand total (USD)", sum.GrandTotalUSD},
		{"Top category", string(sum.TopCategory)},
		{"Records", len(sum.Records)},
	}
	for i, r := range totals {
		if err := write(summarySheet, i+1, r); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "report", "export_xlsx", fmt.Sprintf("rows=%d", len(sum.Records)))
	return buf.Bytes(), s.filename("xlsx"), nil
}

// BuildPDF renders the ledger view and its totals as an A4 document.
func (s ReportService) BuildPDF(sum domain.LedgerSummary) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Guest Payments", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "GUEST PAYMENTS")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+utils.FormatDateTime(s.now(), s.Location))
	pdf.Ln(10)

	widths := []float64{12, 55, 28, 45, 35, 20, 30, 52}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range ledgerHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range ledgerRows(sum) {
		for i, v := range r {
			text := fmt.Sprint(v)
			align := "L"
			if i == 6 {
				text = pdfAmount(r[6].(float64), r[5].(string))
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, clip(tr(text), 40), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	lines := []string{
		"Total USD      : " + pdfAmount(sum.TotalUSD, "USD"),
		"Total KHR      : " + pdfAmount(sum.TotalKHR, "KHR"),
		"Average USD    : " + pdfAmount(sum.AvgUSD, "USD"),
		"Average KHR    : " + pdfAmount(sum.AvgKHR, "KHR"),
		"Grand total    : " + pdfAmount(sum.GrandTotalUSD, "USD"),
		"Top category   : " + utils.Fallback(string(sum.TopCategory), "-"),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "report", "export_pdf", fmt.Sprintf("rows=%d", len(sum.Records)))
	return buf.Bytes(), s.filename("pdf"), nil
}

func (s ReportService) filename(ext string) string {
	return fmt.Sprintf("guest-payments-%s.%s", utils.FormatDate(s.now(), s.Location), ext)
}

// pdfAmount avoids the riel sign, which the core PDF fonts cannot draw.
func pdfAmount(v float64, currency string) string {
	if currency == "KHR" {
		return strings.TrimSuffix(utils.FormatKHR(v), " ៛") + " KHR"
	}
	return utils.FormatUSD(v)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
