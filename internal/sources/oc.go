package sources

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Purchase-order reports carry a five-row banner before the header.
const ocHeaderSkip = 5

var ocColumns = []string{
	"Número Documento",
	"Folio",
	"Monto Disponible",
	"Concepto Presupuesto",
}

// LoadOC reads the purchase-order ledger reports. Rows stay in file
// order; the balance associator later reduces them to one representative
// row per order number.
func LoadOC(provider Provider, logger *zap.Logger) ([]OCRow, error) {
	files, err := provider.Files(SourceOC)
	if err != nil {
		return nil, err
	}

	var rows []OCRow
	for _, path := range files {
		header, raw, err := readXLSX(path, ocHeaderSkip)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, ocColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			numero := cell(r, idx["Número Documento"])
			if numero == "" {
				continue
			}
			rows = append(rows, OCRow{
				NumeroDocumento:     numero,
				FolioCompromiso:     nullString(cell(r, idx["Folio"])),
				MontoDisponible:     nullDecimal(cell(r, idx["Monto Disponible"])),
				ConceptoPresupuesto: nullString(cell(r, idx["Concepto Presupuesto"])),
			})
		}
	}

	logger.Info("Purchase-order ledger loaded",
		zap.Int("files", len(files)),
		zap.Int("lines", len(rows)))
	return rows, nil
}

// nullDecimal parses a nullable decimal cell, tolerating comma decimal
// separators and thousands dots from locale-formatted exports.
func nullDecimal(v string) *decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
