package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"juris_control_go/models"

	"github.com/xuri/excelize/v2"
)

// csvHeaders are the columns of the CSV export, in display order
var csvHeaders = []string{
	"Nº Processo",
	"Interessado",
	"Tipo",
	"Status",
	"Objeto",
	"Ação Tomada",
	"Data Entrada",
	"Prazo Final",
	"Data Saída",
}

// ExportProcessosCSV renders the given cases as a CSV document with pt-BR
// formatted dates and status labels
func ExportProcessosCSV(processos []models.Processo) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range processos {
		record := []string{
			p.Numero,
			p.Interessado,
			p.Tipo,
			p.StatusLabel(),
			p.Objeto,
			p.AcaoTomada,
			formatOptionalBR(&p.Entrada),
			formatOptionalBR(p.Prazo),
			formatOptionalBR(p.Saida),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportProcessosXLSX renders the given cases as an Excel workbook with a
// single "Processos" sheet
func ExportProcessosXLSX(processos []models.Processo) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Processos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Nº Processo", "Interessado", "Tipo", "Status", "Objeto", "Entrada", "Prazo", "Saída"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "H1", headerStyle)
	}

	for row, p := range processos {
		values := []interface{}{
			p.Numero,
			p.Interessado,
			titleCase(p.Tipo),
			p.StatusLabel(),
			p.Objeto,
			formatOptionalBR(&p.Entrada),
			formatOptionalBR(p.Prazo),
			formatOptionalBR(p.Saida),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "E", "E", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// formatOptionalBR renders an optional YYYY-MM-DD date as DD/MM/YYYY, or
// empty when absent
func formatOptionalBR(dateStr *string) string {
	if dateStr == nil || *dateStr == "" {
		return ""
	}
	return FormatBR(*dateStr)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
