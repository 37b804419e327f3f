package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

// TURBO workbooks carry a three-row banner before the header.
const turboHeaderSkip = 3

var turboColumns = []string{
	"Rut",
	"NºDoc.",
	"Folio",
	"Ubic.",
	"NºPresu",
	"NºPago",
	"Monto",
}

// LoadTurbo reads the warehouse accounting workbooks. "Folio" is the
// system's internal folio; the document folio lives in "NºDoc.".
func LoadTurbo(provider Provider, logger *zap.Logger) ([]TurboRow, error) {
	files, err := provider.Files(SourceTurbo)
	if err != nil {
		return nil, err
	}

	var rows []TurboRow
	for _, path := range files {
		header, raw, err := readXLSX(path, turboHeaderSkip)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, turboColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			key := keys.Composite(cell(r, idx["Rut"]), cell(r, idx["NºDoc."]))
			if key == "" {
				continue
			}
			rows = append(rows, TurboRow{
				Key:          key,
				FolioInterno: nullString(cell(r, idx["Folio"])),
				Ubicacion:    nullString(cell(r, idx["Ubic."])),
				NumPresu:     nullString(cell(r, idx["NºPresu"])),
				NumPago:      nullString(cell(r, idx["NºPago"])),
				Monto:        nullInt(cell(r, idx["Monto"])),
			})
		}
	}

	logger.Info("TURBO records loaded",
		zap.Int("files", len(files)),
		zap.Int("documents", len(rows)))
	return rows, nil
}
