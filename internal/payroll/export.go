package payroll

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SummaryCSV renders the month as a flat CSV, one row per employee plus
// a trailing totals row.
func SummaryCSV(summary MonthResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"employee_code", "full_name", "role",
		"base_salary", "allowances", "gross_pay",
		"present_days", "absent_days", "late_days", "late_minutes",
		"worked_hours", "overtime_hours", "overtime_pay",
		"absence_deduction", "late_penalty", "advance_deduction", "net_pay",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, line := range summary.Lines {
		record := []string{
			line.EmployeeCode, line.FullName, line.Role,
			money(line.BaseSalary), money(line.Allowances), money(line.GrossPay),
			fmt.Sprintf("%d", line.PresentDays),
			fmt.Sprintf("%d", line.AbsentDays),
			fmt.Sprintf("%d", line.LateDays),
			fmt.Sprintf("%d", line.LateMinutes),
			hours(line.WorkedHours), hours(line.OvertimeHours), money(line.OvertimePay),
			money(line.AbsenceDeduction), money(line.LatePenalty),
			money(line.AdvanceDeduction), money(line.NetPay),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	totals := []string{
		"TOTAL", "", "",
		"", "", money(summary.Totals.GrossPay),
		"", "", "", "",
		"", "", money(summary.Totals.OvertimePay),
		money(summary.Totals.AbsenceDeduction), money(summary.Totals.LatePenalty),
		money(summary.Totals.AdvanceDeduction), money(summary.Totals.NetPay),
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// BankCSV renders the transfer file the finance team uploads to the
// bank portal. Employees without an IBAN on file are left out; they are
// paid over the counter.
func BankCSV(summary MonthResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"employee_code", "full_name", "bank_name", "iban", "amount", "currency"}); err != nil {
		return nil, err
	}
	for _, line := range summary.Lines {
		if line.IBAN == "" {
			continue
		}
		record := []string{
			line.EmployeeCode, line.FullName, line.BankName, line.IBAN,
			money(line.NetPay), line.Currency,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// SummaryXLSX renders the month as a spreadsheet for the owners, who
// review pay runs in Excel rather than the dashboard.
func SummaryXLSX(summary MonthResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + summary.Month
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Code", "Name", "Role", "Base", "Allowances", "Gross",
		"Present", "Absent", "Late", "Late Min",
		"Worked Hrs", "OT Hrs", "OT Pay",
		"Absence Ded.", "Late Penalty", "Advance Ded.", "Net Pay",
	}
	for col, title := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, line := range summary.Lines {
		values := []interface{}{
			line.EmployeeCode, line.FullName, line.Role,
			line.BaseSalary, line.Allowances, line.GrossPay,
			line.PresentDays, line.AbsentDays, line.LateDays, line.LateMinutes,
			line.WorkedHours, line.OvertimeHours, line.OvertimePay,
			line.AbsenceDeduction, line.LatePenalty, line.AdvanceDeduction, line.NetPay,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	totalsRow := len(summary.Lines) + 2
	totals := map[int]interface{}{
		1:  "TOTAL",
		6:  summary.Totals.GrossPay,
		13: summary.Totals.OvertimePay,
		14: summary.Totals.AbsenceDeduction,
		15: summary.Totals.LatePenalty,
		16: summary.Totals.AdvanceDeduction,
		17: summary.Totals.NetPay,
	}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col, totalsRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }
func hours(v float64) string { return fmt.Sprintf("%.2f", v) }
