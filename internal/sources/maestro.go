package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

const maestroHeaderSkip = 3

var maestroColumns = []string{
	"Código",
	"Familia",
	"Items",
	"Nombre Items",
}

// LoadMaestro reads the item-master workbooks, keyed by item code. The
// Items classification number is kept textual because the budget-law
// lookup compares it as a string.
func LoadMaestro(provider Provider, logger *zap.Logger) ([]ArticuloRow, error) {
	files, err := provider.Files(SourceMaestro)
	if err != nil {
		return nil, err
	}

	var rows []ArticuloRow
	for _, path := range files {
		header, raw, err := readXLSX(path, maestroHeaderSkip)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, maestroColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			codigo := keys.CanonicalFolio(cell(r, idx["Código"]))
			if codigo == "" {
				continue
			}
			items := cell(r, idx["Items"])
			rows = append(rows, ArticuloRow{
				Codigo:      codigo,
				Familia:     nullString(cell(r, idx["Familia"])),
				Items:       nullString(keys.CanonicalFolio(items)),
				NombreItems: nullString(cell(r, idx["Nombre Items"])),
			})
		}
	}

	logger.Info("Item master loaded",
		zap.Int("files", len(files)),
		zap.Int("items", len(rows)))
	return rows, nil
}
