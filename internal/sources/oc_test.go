package sources

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeXLSX(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadOC(t *testing.T) {
	dir := t.TempDir()
	rows := [][]interface{}{
		{"Reporte de Compromisos"},
		{},
		{},
		{},
		{},
		{"Número Documento", "Folio", "Monto Disponible", "Concepto Presupuesto"},
		{"4500-2025", "820", 150000.50, "22.04.001"},
		{"", "821", 99, "22.04.002"},
		{"4500-2025", "822", 1, "22.04.003"},
	}
	path := writeXLSX(t, dir, "SIGFE_REPORTS_2025.xlsx", rows)

	loaded, err := LoadOC(stubProvider{SourceOC: {path}}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	first := loaded[0]
	assert.Equal(t, "4500-2025", first.NumeroDocumento)
	assert.Equal(t, "820", *first.FolioCompromiso)
	require.NotNil(t, first.MontoDisponible)
	assert.Equal(t, "150000.5", first.MontoDisponible.String())
	assert.Equal(t, "22.04.001", *first.ConceptoPresupuesto)
}

func TestLoadOC_MissingColumnsIsFatal(t *testing.T) {
	dir := t.TempDir()
	rows := [][]interface{}{
		{},
		{},
		{},
		{},
		{},
		{"Número Documento", "Folio"},
		{"4500-2025", "820"},
	}
	path := writeXLSX(t, dir, "SIGFE_REPORTS_2025.xlsx", rows)

	_, err := LoadOC(stubProvider{SourceOC: {path}}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}
