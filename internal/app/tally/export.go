package tally

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Resumen"

var entryHeader = []interface{}{"Candidatura", "Candidato", "Propuesta", "Votos", "% Elección", "% Global"}

// ExportXLSX gera uma planilha com um resumo e uma aba por eleição
func ExportXLSX(result Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Total de votos", result.Summary.TotalVotes},
		{"Elecciones con votos", result.Summary.Elections},
		{"Candidaturas con votos", result.Summary.Candidacies},
		{},
		{"Elección", "Nombre", "Votos"},
	}
	for _, g := range result.Groups {
		rows = append(rows, []interface{}{g.ElectionID, g.ElectionName, g.Total})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A5", "C5", bold); err != nil {
		return nil, err
	}

	for _, g := range result.Groups {
		sheet := sheetName(g)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("falha ao criar aba %q: %w", sheet, err)
		}

		rows := [][]interface{}{entryHeader}
		for _, e := range g.Entries {
			rows = append(rows, []interface{}{
				e.CandidacyID, e.Candidate, e.Proposal, e.Votes, e.LocalPercent, e.GlobalPercent,
			})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "B", "C", 30); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName respeita o limite de 31 caracteres e os caracteres proibidos
func sheetName(g Group) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return ' '
		}
		return r
	}, g.ElectionName)

	name := strings.TrimSpace(fmt.Sprintf("%d %s", g.ElectionID, clean))
	if runes := []rune(name); len(runes) > 31 {
		name = strings.TrimSpace(string(runes[:31]))
	}
	return name
}
