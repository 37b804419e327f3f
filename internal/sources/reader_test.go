package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Latin1Fallback(t *testing.T) {
	dir := t.TempDir()
	// "Recepción" encoded as Latin-1: ó is a single 0xF3 byte.
	content := []byte("Rut;Recepci\xf3n\n76123456-7;CAMI\xd3N\n")
	path := filepath.Join(dir, "latin1.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))

	header, rows, err := readCSV(path, ';', 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rut", "Recepción"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAMIÓN", rows[0][1])
}

func TestReadCSV_BOMAndHeaderSkip(t *testing.T) {
	dir := t.TempDir()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("banner,,\nA,B,C\n1,2,3\n")...)
	path := filepath.Join(dir, "bom.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))

	header, rows, err := readCSV(path, ',', 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, header)
	require.Len(t, rows, 1)
}

func TestReadCSV_MissingHeaderRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "short.csv", "only-one-line\n")

	_, _, err := readCSV(path, ';', 3)
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	header := []string{"Tipo Doc", " Folio ", "Monto Total"}

	idx, err := columnIndex("f.csv", header, []string{"Folio", "Tipo Doc"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx["Folio"])
	assert.Equal(t, 0, idx["Tipo Doc"])

	_, err = columnIndex("f.csv", header, []string{"Folio", "Fecha Docto", "Debe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fecha Docto")
	assert.Contains(t, err.Error(), "Debe")
}

func TestNullInt(t *testing.T) {
	tests := []struct {
		value    string
		expected *int64
	}{
		{"1190", int64Ptr(1190)},
		{"1190.0", int64Ptr(1190)},
		{"-595", int64Ptr(-595)},
		{"", nil},
		{"abc", nil},
		{"12,5", nil},
	}
	for _, tt := range tests {
		got := nullInt(tt.value)
		if tt.expected == nil {
			assert.Nil(t, got, "value %q", tt.value)
		} else {
			require.NotNil(t, got, "value %q", tt.value)
			assert.Equal(t, *tt.expected, *got)
		}
	}
}

func TestNullDecimal(t *testing.T) {
	d := nullDecimal("1234.56")
	require.NotNil(t, d)
	assert.Equal(t, "1234.56", d.String())

	d = nullDecimal("1.234,56")
	require.NotNil(t, d)
	assert.Equal(t, "1234.56", d.String())

	assert.Nil(t, nullDecimal(""))
	assert.Nil(t, nullDecimal("n/a"))
}

func int64Ptr(n int64) *int64 { return &n }
