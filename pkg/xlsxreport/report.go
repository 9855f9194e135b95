package xlsxreport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Writer последовательно пишет табличный отчёт в XLSX.
// Тонкая обёртка над excelize: один лист, заголовок, строки данных.
type Writer struct {
	file  *excelize.File
	sheet string
	row   int
}

// NewWriter создает книгу с единственным листом sheet
func NewWriter(sheet string) *Writer {
	// Лимит Excel на длину имени листа - 31 символ
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	return &Writer{
		file:  f,
		sheet: sheet,
		row:   1,
	}
}

// WriteHeader пишет строку заголовков жирным шрифтом
func (w *Writer) WriteHeader(columns []string) error {
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return fmt.Errorf("xlsxreport: header cell: %w", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, col); err != nil {
			return fmt.Errorf("xlsxreport: set header value: %w", err)
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.row)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.row)
		_ = w.file.SetCellStyle(w.sheet, startCell, endCell, style)
	}

	w.row++
	return nil
}

// WriteRow пишет строку данных
func (w *Writer) WriteRow(values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return fmt.Errorf("xlsxreport: data cell: %w", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, val); err != nil {
			return fmt.Errorf("xlsxreport: set cell value: %w", err)
		}
	}

	w.row++
	return nil
}

// WriteTo сериализует книгу в выходной поток
func (w *Writer) WriteTo(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("xlsxreport: write workbook: %w", err)
	}
	return nil
}

// Close освобождает ресурсы книги
func (w *Writer) Close() error {
	return w.file.Close()
}
