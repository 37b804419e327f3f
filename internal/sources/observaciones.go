package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

var observacionesColumns = []string{
	"RUT_Emisor_SII",
	"Folio_SII",
	"OBSERVACION_OBSERVACIONES",
}

// LoadObservaciones re-ingests the observation extracts written by
// previous runs. Analysts annotate those files by hand; only the
// annotation column survives back into the ledger.
func LoadObservaciones(provider Provider, logger *zap.Logger) ([]ObservacionRow, error) {
	files, err := provider.Files(SourceObservaciones)
	if err != nil {
		return nil, err
	}

	var rows []ObservacionRow
	for _, path := range files {
		header, raw, err := readCSV(path, ';', 0)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, observacionesColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			key := keys.Composite(cell(r, idx["RUT_Emisor_SII"]), cell(r, idx["Folio_SII"]))
			if key == "" {
				continue
			}
			rows = append(rows, ObservacionRow{
				Key:         key,
				Observacion: nullString(cell(r, idx["OBSERVACION_OBSERVACIONES"])),
			})
		}
	}

	logger.Info("Observation extracts loaded",
		zap.Int("files", len(files)),
		zap.Int("documents", len(rows)))
	return rows, nil
}
