package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

var sciColumns = []string{
	"Rut Proveedor",
	"Numero Documento",
	"Fecha Recepción",
	"Registrador",
	"Codigo Articulo",
	"Articulo",
	"N° Acta",
}

// LoadSCI reads the warehouse receipt log. Document numbers arrive as
// spreadsheet floats, so the folio passes through canonicalization to
// drop the ".0" artifact before keying.
func LoadSCI(provider Provider, logger *zap.Logger) ([]SCIRow, error) {
	files, err := provider.Files(SourceSCI)
	if err != nil {
		return nil, err
	}

	var rows []SCIRow
	for _, path := range files {
		header, raw, err := readCSV(path, ',', 0)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, sciColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			key := keys.Composite(cell(r, idx["Rut Proveedor"]), cell(r, idx["Numero Documento"]))
			if key == "" {
				continue
			}
			rows = append(rows, SCIRow{
				Key:            key,
				FechaRecepcion: nullString(cell(r, idx["Fecha Recepción"])),
				Registrador:    nullString(cell(r, idx["Registrador"])),
				CodigoArticulo: nullString(cell(r, idx["Codigo Articulo"])),
				Articulo:       nullString(cell(r, idx["Articulo"])),
				NumeroActa:     nullString(cell(r, idx["N° Acta"])),
			})
		}
	}

	logger.Info("SCI receipts loaded",
		zap.Int("files", len(files)),
		zap.Int("documents", len(rows)))
	return rows, nil
}
