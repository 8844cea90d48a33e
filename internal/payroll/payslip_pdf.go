package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	companyName    = "HR Portal Ltd."
	companyAddress = "12 Harbour Street, Springfield"
)

// renderPayslipPDF lays out a single-page payslip from the register row and
// its computed breakdown.
func renderPayslipPDF(row PayrollRow, bd Breakdown, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, companyAddress, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Payslip", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 8, "Employee", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, row.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 8, "Position", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, row.Position, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	line := func(label string, amount float64) {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(90, 8, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%.2f", amount), "B", 1, "R", false, 0, "")
	}

	line("Gross salary", row.FinalSalary)
	line(fmt.Sprintf("Hours worked (%.0f h)", row.HoursWorked), row.HoursWorked)
	line("Hourly rate", bd.HourlyRate)
	line(fmt.Sprintf("Leave deduction (%.0f h)", bd.LeaveHours), -bd.LeaveDeduction)

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 10, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("%.2f", bd.NetPay), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
