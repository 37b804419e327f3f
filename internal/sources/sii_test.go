package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider serves files for tests without a directory layout.
type stubProvider map[string][]string

func (p stubProvider) Files(source string) ([]string, error) {
	files, ok := p[source]
	if !ok || len(files) == 0 {
		return nil, fmt.Errorf("source %s has no files", source)
	}
	return files, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const siiRegistroHeader = "Tipo Doc;RUT Proveedor;Razon Social;Folio;Fecha Docto;Fecha Recepcion;Fecha Acuse;Monto Exento;Monto Neto;Monto IVA Recuperable;Monto Total\n"

func TestLoadSII_NegatesCreditAndDebitNotes(t *testing.T) {
	dir := t.TempDir()
	registro := writeFile(t, dir, "REGISTRO_2025.csv", siiRegistroHeader+
		"33;76.123.456-7;PROVEEDOR UNO;100;01-03-2025;02-03-2025;;0;1000;190;1190\n"+
		"61;76.123.456-7;PROVEEDOR UNO;12;05-03-2025;06-03-2025;;0;500;95;595\n"+
		"56;76.123.456-7;PROVEEDOR UNO;13;05-03-2025;06-03-2025;;0;200;38;238\n")

	rows, err := LoadSII(stubProvider{SourceSII: {registro}}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	factura, nc, nd := rows[0], rows[1], rows[2]
	assert.Equal(t, "76123456-7100", factura.Key)
	assert.Equal(t, int64(1190), *factura.MontoTotal)

	assert.Equal(t, TipoDocNotaCredito, nc.TipoDoc)
	assert.Equal(t, int64(-595), *nc.MontoTotal)
	assert.Equal(t, int64(-500), *nc.MontoNeto)

	assert.Equal(t, TipoDocNotaDebito, nd.TipoDoc)
	assert.Equal(t, int64(-238), *nd.MontoTotal)
}

func TestLoadSII_DeduplicatesAcrossFlavors(t *testing.T) {
	dir := t.TempDir()
	registro := writeFile(t, dir, "REGISTRO_2025.csv", siiRegistroHeader+
		"33;76.123.456-7;PROVEEDOR UNO;100;01-03-2025;02-03-2025;;0;1000;190;1190\n")
	pendiente := writeFile(t, dir, "PENDIENTE_2025.csv",
		"Tipo Doc;RUT Proveedor;Razon Social;Folio;Fecha Docto;Fecha Recepcion;Monto Exento;Monto Neto;Monto IVA Recuperable;Monto Total\n"+
			"33;76123456-7;OTRO NOMBRE;100;01-03-2025;02-03-2025;0;9999;0;9999\n"+
			"33;76123456-7;PROVEEDOR UNO;101;01-03-2025;02-03-2025;0;2000;380;2380\n")

	rows, err := LoadSII(stubProvider{SourceSII: {registro, pendiente}}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// First-seen wins: the REGISTRO payload survives for the duplicate.
	assert.Equal(t, "PROVEEDOR UNO", rows[0].RazonSocial)
	assert.Equal(t, int64(1190), *rows[0].MontoTotal)
	assert.Nil(t, rows[1].FechaReclamo)
}

func TestLoadSII_ClaimDateColumn(t *testing.T) {
	dir := t.TempDir()
	reclamado := writeFile(t, dir, "RECLAMADO_2025.csv",
		"Tipo Doc;RUT Proveedor;Razon Social;Folio;Fecha Docto;Fecha Recepcion;Fecha Reclamo;Monto Exento;Monto Neto;Monto IVA Recuperable;Monto Total\n"+
			"33;76.123.456-7;PROVEEDOR UNO;200;01-03-2025;02-03-2025;10-03-2025;0;1000;190;1190\n")

	rows, err := LoadSII(stubProvider{SourceSII: {reclamado}}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].FechaReclamo)
	assert.Equal(t, "10-03-2025", *rows[0].FechaReclamo)
}

func TestLoadSII_MissingColumnsIsFatal(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "REGISTRO_2025.csv",
		"Tipo Doc;RUT Proveedor;Folio\n33;76.123.456-7;100\n")

	_, err := LoadSII(stubProvider{SourceSII: {broken}}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestLoadSII_EmptyUniverseIsFatal(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "REGISTRO_2025.csv", siiRegistroHeader)

	_, err := LoadSII(stubProvider{SourceSII: {empty}}, zap.NewNop())
	assert.Error(t, err)
}
