package export

import (
	"bytes"
	"fmt"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	HistorySheet = "Bookings"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var historyHeaders = []string{"Booking ID", "Date", "Customer", "Email", "Vehicle", "Plate", "Start", "End", "Days", "Status", "Total"}

// HistoryRow is one booking line of the history spreadsheet.
type HistoryRow struct {
	Booking domain.Booking
	Status  domain.BookingStatus
	Vehicle string
	Plate   string
}

// BookingHistory renders rows as an xlsx workbook with a header line and a
// grand total of the non-cancelled bookings.
func BookingHistory(rows []HistoryRow, currency string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]interface{}, len(historyHeaders))
	for i, header := range historyHeaders {
		headers[i] = header
	}
	if err := writeRow(f, HistorySheet, 1, 1, headers); err != nil {
		return nil, err
	}

	var total float64
	for i, row := range rows {
		b := row.Booking
		values := []interface{}{
			b.ID,
			b.CreatedAt.Format(domain.DateLayout),
			b.Customer,
			b.Email,
			row.Vehicle,
			row.Plate,
			b.StartDate.String(),
			b.EndDate.String(),
			b.Days(),
			string(row.Status),
			domain.FormatPrice(b.TotalCost, currency),
		}
		if err := writeRow(f, HistorySheet, i+2, 1, values); err != nil {
			return nil, err
		}
		if b.Status != domain.BookingStatusCancelled {
			total += b.TotalCost
		}
	}

	totalRow := len(rows) + 2
	if err := writeRow(f, HistorySheet, totalRow, len(historyHeaders)-1, []interface{}{"Total", domain.FormatPrice(total, currency)}); err != nil {
		return nil, err
	}

	if err := styleSheet(f, totalRow); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// writeRow puts values into row starting at column col (both 1-based).
func writeRow(f *excelize.File, sheet string, row, col int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+i, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleSheet(f *excelize.File, totalRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(historyHeaders), 1)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	labelCell, err := excelize.CoordinatesToCellName(len(historyHeaders)-1, totalRow)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	totalCell, err := excelize.CoordinatesToCellName(len(historyHeaders), totalRow)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}

	if err := f.SetCellStyle(HistorySheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetCellStyle(HistorySheet, labelCell, totalCell, bold); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}
	if err := f.SetColWidth(HistorySheet, "A", "A", 38); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(HistorySheet, "B", "K", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}
