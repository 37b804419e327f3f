package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

var presupuestoColumns = []string{
	"Numero_Concepto",
	"Cargar_en",
}

// LoadPresupuesto reads the budget-law table. Concept numbers mix
// numeric and textual encodings across files, so they are coerced to a
// canonical string before becoming lookup keys.
func LoadPresupuesto(provider Provider, logger *zap.Logger) ([]PresupuestoRow, error) {
	files, err := provider.Files(SourcePresupuesto)
	if err != nil {
		return nil, err
	}

	var rows []PresupuestoRow
	for _, path := range files {
		header, raw, err := readXLSX(path, 0)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, presupuestoColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			numero := keys.CanonicalFolio(cell(r, idx["Numero_Concepto"]))
			if numero == "" {
				continue
			}
			rows = append(rows, PresupuestoRow{
				NumeroConcepto: numero,
				CargarEn:       nullString(cell(r, idx["Cargar_en"])),
			})
		}
	}

	logger.Info("Budget law loaded",
		zap.Int("files", len(files)),
		zap.Int("concepts", len(rows)))
	return rows, nil
}
