// Package report renders admission audit reports as XLSX workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
)

const sheetName = "Internações"

var headers = []string{
	"Paciente",
	"Hospital",
	"Guia",
	"Matrícula",
	"Data de Internação",
	"Data de Alta",
	"Auditor",
}

// WriteAdmissionsXLSX renders the given admissions as a spreadsheet. Callers
// are expected to pass only admissions already filtered for the requesting
// principal.
func WriteAdmissionsXLSX(w io.Writer, admissions []*admission.Admission) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	for idx, a := range admissions {
		row := idx + 2

		discharge := ""
		if a.DischargeDate != nil {
			discharge = a.DischargeDate.Format("2006-01-02")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), a.PatientName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), a.HospitalName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), a.GuideNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), a.PatientRecordNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), a.AdmissionDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), discharge)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), a.AuditorName)
	}

	f.SetColWidth(sheetName, "A", "B", 24)
	f.SetColWidth(sheetName, "C", "D", 16)
	f.SetColWidth(sheetName, "E", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 22)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
