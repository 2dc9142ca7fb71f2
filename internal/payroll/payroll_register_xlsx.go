package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var registerHeaders = []string{
	"Employee Code", "Employee", "Period", "Status",
	"Basic", "HRA", "DA", "Special Allowance", "Other Allowances", "Gross",
	"PF", "Professional Tax", "ESI", "LOP Days", "LOP", "Total Deductions",
	"Adjustments", "Net Salary", "Transaction ID",
}

// BuildRegister renders one row per payroll record of a period.
func BuildRegister(period string, payrolls []Payroll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Register " + period
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for c, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, p := range payrolls {
		row := i + 2
		code, name := "", ""
		if p.Employee != nil {
			code, name = p.Employee.EmployeeCode, p.Employee.FullName
		}
		txn := ""
		if p.TransactionID != nil {
			txn = *p.TransactionID
		}

		values := []any{
			code, name, p.Period, p.Status,
			p.Earnings.Basic.InexactFloat64(),
			p.Earnings.HRA.InexactFloat64(),
			p.Earnings.DA.InexactFloat64(),
			p.Earnings.SpecialAllowance.InexactFloat64(),
			p.Earnings.OtherAllowances.InexactFloat64(),
			p.Earnings.Gross.InexactFloat64(),
			p.Deductions.ProvidentFund.InexactFloat64(),
			p.Deductions.ProfessionalTax.InexactFloat64(),
			p.Deductions.ESI.InexactFloat64(),
			p.LOPDays.InexactFloat64(),
			p.Deductions.LOP.InexactFloat64(),
			p.Deductions.Total.InexactFloat64(),
			p.TotalAdjustment.InexactFloat64(),
			p.NetSalary.InexactFloat64(),
			txn,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "R", 14)
	_ = f.SetColWidth(sheet, "S", "S", 22)

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(registerHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write register: %w", err)
	}
	return buf.Bytes(), nil
}
