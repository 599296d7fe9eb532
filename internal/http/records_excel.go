package httpapi

import (
	"bytes"
	"fmt"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExportColumn 导出列：表头、列宽、取值
type ExportColumn[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// ExportSheet 导出工作表定义
type ExportSheet[T any] struct {
	Name    string
	Columns []ExportColumn[T]
}

// Headers 表头
func (s ExportSheet[T]) Headers() []string {
	out := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		out = append(out, c.Header)
	}
	return out
}

var EmployeeSheet = ExportSheet[domain.Employee]{
	Name: "Employees",
	Columns: []ExportColumn[domain.Employee]{
		{"ID", 12, func(e domain.Employee) any { return e.ID }},
		{"Name", 24, func(e domain.Employee) any { return e.Name }},
		{"Email", 28, func(e domain.Employee) any { return e.Email }},
		{"Phone Number", 18, func(e domain.Employee) any { return e.PhoneNumber }},
		{"Role", 15, func(e domain.Employee) any { return string(e.Role) }},
		{"Status", 12, func(e domain.Employee) any { return string(e.Status) }},
		{"Department", 18, func(e domain.Employee) any { return e.Department }},
		{"Specialization", 20, func(e domain.Employee) any { return e.Specialization }},
		{"Hire Date", 14, func(e domain.Employee) any { return e.HireDate }},
	},
}

var PatientSheet = ExportSheet[domain.Patient]{
	Name: "Patients",
	Columns: []ExportColumn[domain.Patient]{
		{"ID", 12, func(p domain.Patient) any { return p.ID }},
		{"Name", 24, func(p domain.Patient) any { return p.Name }},
		{"Email", 28, func(p domain.Patient) any { return p.Email }},
		{"Phone", 18, func(p domain.Patient) any { return p.Phone }},
		{"Created At", 22, func(p domain.Patient) any { return p.CreatedAt }},
	},
}

var ReservationSheet = ExportSheet[domain.Reservation]{
	Name: "Reservations",
	Columns: []ExportColumn[domain.Reservation]{
		{"Reservation ID", 16, func(r domain.Reservation) any { return r.ReservationID }},
		{"Patient", 24, func(r domain.Reservation) any { return r.Patient.Name }},
		{"Patient Phone", 18, func(r domain.Reservation) any { return r.Patient.Phone }},
		{"Date", 12, func(r domain.Reservation) any { return r.Appointment.Date }},
		{"Start", 8, func(r domain.Reservation) any { return r.Appointment.StartTime }},
		{"End", 8, func(r domain.Reservation) any { return r.Appointment.EndTime }},
		{"Status", 12, func(r domain.Reservation) any { return r.Status }},
		{"Clinic", 20, func(r domain.Reservation) any { return r.Clinic.Name }},
		{"Room", 10, func(r domain.Reservation) any { return r.Clinic.Room }},
		{"Amount", 10, func(r domain.Reservation) any { return r.Payment.Amount }},
		{"Currency", 10, func(r domain.Reservation) any { return r.Payment.Currency }},
		{"Paid", 8, func(r domain.Reservation) any { return yesNo(r.Payment.Paid) }},
	},
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "Yes"
	default:
		return "No"
	}
}

// GenerateRecordsExport 按工作表定义生成 xlsx；items 为空时只有表头
func GenerateRecordsExport[T any](sheet ExportSheet[T], items []T) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo 之前文件需保持打开，出错时逐个 Close

	index, err := f.NewSheet(sheet.Name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet.Name != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet.Name, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert column number: %w", err)
			}
			if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for rowIdx, item := range items {
		row := rowIdx + 2 // 第 1 行是表头
		for i, col := range sheet.Columns {
			value := col.Value(item)
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, i+1, err)
			}
		}
	}

	if err := f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}
