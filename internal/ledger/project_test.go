package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrojasb/control-facturas/internal/pipeline"
	"github.com/jrojasb/control-facturas/internal/sources"
)

func record(key string, docto *time.Time, elapsed string) *pipeline.Record {
	rec := &pipeline.Record{
		Key: key,
		SII: sources.SIIRow{Key: key, TipoDoc: 33, RUTEmisor: "76123456-7", Folio: "1"},
	}
	rec.Derived.FechaDocto = docto
	if elapsed != "" {
		d := decimal.RequireFromString(elapsed)
		rec.Derived.TiempoDiferencia = &d
	}
	return rec
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestProject_SortOrder(t *testing.T) {
	march := record("march", datePtr(2025, 3, 1), "")
	aprilOld := record("april-old", datePtr(2025, 4, 1), "30")
	aprilNew := record("april-new", datePtr(2025, 4, 1), "2")
	undated := record("undated", nil, "")

	table := Project([]*pipeline.Record{undated, aprilNew, march, aprilOld})

	keys := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		keys = append(keys, row.Key)
	}
	// Date ascending; within the same date the longest-overdue first;
	// undated documents last.
	assert.Equal(t, []string{"march", "april-old", "april-new", "undated"}, keys)
}

func TestProject_RowShapeAndYears(t *testing.T) {
	rec := record("k1", datePtr(2024, 12, 31), "11")
	rec.Derived.Referencias = ">FE: \n>NC: "
	other := record("k2", datePtr(2025, 1, 2), "")

	table := Project([]*pipeline.Record{rec, other})
	require.Len(t, table.Rows, 2)

	row := table.Rows[0]
	assert.Equal(t, "k1", row.Key)
	assert.Equal(t, 2024, row.Year)
	assert.Len(t, row.Values, len(Columns))
	assert.Equal(t, []int{2024, 2025}, table.Years())
}

func TestMarshal_Formatting(t *testing.T) {
	rec := record("76123456-71", datePtr(2025, 3, 1), "11.5")
	monto := int64(1190)
	rec.SII.MontoTotal = &monto
	alDia := false
	rec.Derived.EstaAlDia = &alDia
	rec.Derived.MontosCoinciden = true
	disponible := decimal.RequireFromString("150000.75")
	compromiso := "820"
	rec.OC = &pipeline.OCEnrichment{
		NumeroCompromiso: &compromiso,
		MontoDisponible:  &disponible,
	}

	values := marshal(rec)
	byName := make(map[string]string, len(Columns))
	for i, name := range Columns {
		byName[name] = values[i]
	}

	assert.Equal(t, "76123456-71", byName["llave_id"])
	assert.Equal(t, "33", byName["Tipo_Doc_SII"])
	assert.Equal(t, "2025-03-01", byName["Fecha_Docto_SII"])
	assert.Equal(t, "1190", byName["Monto_Total_SII"])
	assert.Equal(t, "150000,75", byName["Monto_Disponible_OC"])
	assert.Equal(t, "11,5", byName["tiempo_diferencia_SII"])
	assert.Equal(t, "false", byName["esta_al_dia"])
	assert.Equal(t, "true", byName["monto_sii_y_turbo_coinciden"])
	assert.Equal(t, "", byName["Fecha_Reclamo_SII"])
	assert.Equal(t, "", byName["Registrador_SCI"])
}

func TestMarshal_AbsentGroupsAreEmpty(t *testing.T) {
	rec := record("k1", nil, "")

	values := marshal(rec)
	require.Len(t, values, len(Columns))
	// Everything past the SII group is empty for a bare record except
	// the boolean consistency flag.
	for i, name := range Columns[12:] {
		if name == "monto_sii_y_turbo_coinciden" {
			assert.Equal(t, "false", values[12+i])
			continue
		}
		assert.Empty(t, values[12+i], "column %s", name)
	}
}
