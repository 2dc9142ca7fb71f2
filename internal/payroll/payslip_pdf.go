package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=payslip_pdf.go -destination=mock/payslip_renderer_mock.go -package=mock
type PayslipRenderer interface {
	Render(p *Payroll) ([]byte, error)
}

type payslipLine struct {
	label  string
	amount decimal.Decimal
}

type PDFPayslipRenderer struct {
	companyName string
	currency    string
}

func NewPDFPayslipRenderer(companyName, currency string) *PDFPayslipRenderer {
	return &PDFPayslipRenderer{companyName: companyName, currency: currency}
}

func (r *PDFPayslipRenderer) Render(p *Payroll) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("payslip: payroll is nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip for %s", p.Period))
	pdf.Ln(12)

	if p.Employee != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", p.Employee.FullName, p.Employee.EmployeeCode))
		pdf.Ln(6)
		pdf.Cell(0, 7, fmt.Sprintf("Email: %s", p.Employee.Email))
		pdf.Ln(6)
	}
	if p.TransactionID != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Transaction: %s", *p.TransactionID))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("LOP days: %s", p.LOPDays.StringFixed(2)))
	pdf.Ln(10)

	r.section(pdf, "Earnings", []payslipLine{
		{"Basic", p.Earnings.Basic},
		{"HRA", p.Earnings.HRA},
		{"DA", p.Earnings.DA},
		{"Special allowance", p.Earnings.SpecialAllowance},
		{"Other allowances", p.Earnings.OtherAllowances},
		{"Gross", p.Earnings.Gross},
	})
	r.section(pdf, "Deductions", []payslipLine{
		{"Provident fund", p.Deductions.ProvidentFund},
		{"Professional tax", p.Deductions.ProfessionalTax},
		{"ESI", p.Deductions.ESI},
		{"Loss of pay", p.Deductions.LOP},
		{"Total deductions", p.Deductions.Total},
	})

	if len(p.Adjustments) > 0 {
		rows := make([]payslipLine, 0, len(p.Adjustments))
		for _, a := range p.Adjustments {
			label := a.Type
			if a.Description != "" {
				label = fmt.Sprintf("%s (%s)", a.Type, a.Description)
			}
			rows = append(rows, payslipLine{label, SignedAmount(a.Type, a.Amount)})
		}
		r.section(pdf, "Adjustments", rows)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, r.amount(p.NetSalary), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFPayslipRenderer) section(pdf *gofpdf.Fpdf, title string, rows []payslipLine) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(120, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, r.amount(row.amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFPayslipRenderer) amount(v decimal.Decimal) string {
	return fmt.Sprintf("%s %s", r.currency, v.StringFixed(2))
}
