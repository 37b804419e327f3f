package sources

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
	"github.com/jrojasb/control-facturas/pkg/utils"
)

// The registry is exported in four flavors, told apart by file name.
// PENDIENTE files predate the claim workflow and have no claim-date
// column; REGISTRO and NO_INCLUIR call it "Fecha Acuse".
const (
	siiFlavorRegistro  = "REGISTRO"
	siiFlavorNoIncluir = "NO_INCLUIR"
	siiFlavorPendiente = "PENDIENTE"
	siiFlavorReclamado = "RECLAMADO"
	siiClaimColAcuse   = "Fecha Acuse"
	siiClaimColReclamo = "Fecha Reclamo"
)

var siiBaseColumns = []string{
	"Tipo Doc",
	"RUT Proveedor",
	"Razon Social",
	"Folio",
	"Fecha Docto",
	"Fecha Recepcion",
	"Monto Exento",
	"Monto Neto",
	"Monto IVA Recuperable",
	"Monto Total",
}

// LoadSII reads every tax-authority export and aligns the four flavors
// into one row set. Credit and debit notes (document types 56 and 61)
// are negated, and documents appearing in more than one flavor collapse
// to the first occurrence of (tipo doc, RUT, folio).
func LoadSII(provider Provider, logger *zap.Logger) ([]SIIRow, error) {
	files, err := provider.Files(SourceSII)
	if err != nil {
		return nil, err
	}

	var rows []SIIRow
	seen := make(map[string]bool)
	skipped := 0
	invalidRUT := 0

	for _, path := range files {
		claimCol, ok := siiClaimColumn(path)
		if !ok {
			logger.Warn("Skipping unrecognized SII file", zap.String("path", path))
			continue
		}

		fileRows, err := readSIIFile(path, claimCol)
		if err != nil {
			return nil, err
		}

		for _, row := range fileRows {
			if row.Key == "" {
				skipped++
				continue
			}
			dedupe := strconv.Itoa(row.TipoDoc) + "|" + row.Key
			if seen[dedupe] {
				continue
			}
			seen[dedupe] = true
			if utils.ValidateRUT(row.RUTEmisor) != nil {
				invalidRUT++
			}
			rows = append(rows, row)
		}
	}

	if skipped > 0 {
		logger.Warn("Dropped SII rows without RUT or folio", zap.Int("rows", skipped))
	}
	if invalidRUT > 0 {
		logger.Warn("SII rows with a failing RUT check digit", zap.Int("rows", invalidRUT))
	}
	logger.Info("SII registry loaded",
		zap.Int("files", len(files)),
		zap.Int("documents", len(rows)))

	if len(rows) == 0 {
		return nil, fmt.Errorf("SII registry is empty")
	}
	return rows, nil
}

// siiClaimColumn resolves the claim-date column for a file, or reports a
// file that belongs to no known flavor. An empty column name means the
// flavor carries no claim date at all.
func siiClaimColumn(path string) (string, bool) {
	name := strings.ToUpper(filepath.Base(path))
	switch {
	case strings.Contains(name, siiFlavorNoIncluir):
		return siiClaimColAcuse, true
	case strings.Contains(name, siiFlavorRegistro):
		return siiClaimColAcuse, true
	case strings.Contains(name, siiFlavorPendiente):
		return "", true
	case strings.Contains(name, siiFlavorReclamado):
		return siiClaimColReclamo, true
	}
	return "", false
}

func readSIIFile(path, claimCol string) ([]SIIRow, error) {
	header, raw, err := readCSV(path, ';', 0)
	if err != nil {
		return nil, err
	}

	required := siiBaseColumns
	if claimCol != "" {
		required = append(append([]string{}, siiBaseColumns...), claimCol)
	}
	idx, err := columnIndex(path, header, required)
	if err != nil {
		return nil, err
	}

	rows := make([]SIIRow, 0, len(raw))
	for _, r := range raw {
		tipo, err := strconv.Atoi(cell(r, idx["Tipo Doc"]))
		if err != nil {
			continue
		}

		rut := keys.NormalizeRUT(cell(r, idx["RUT Proveedor"]))
		folio := keys.CanonicalFolio(cell(r, idx["Folio"]))

		row := SIIRow{
			Key:            keys.Composite(rut, folio),
			TipoDoc:        tipo,
			RUTEmisor:      rut,
			RazonSocial:    cell(r, idx["Razon Social"]),
			Folio:          folio,
			FechaDocto:     cell(r, idx["Fecha Docto"]),
			FechaRecepcion: cell(r, idx["Fecha Recepcion"]),
			MontoExento:    nullInt(cell(r, idx["Monto Exento"])),
			MontoNeto:      nullInt(cell(r, idx["Monto Neto"])),
			MontoIVA:       nullInt(cell(r, idx["Monto IVA Recuperable"])),
			MontoTotal:     nullInt(cell(r, idx["Monto Total"])),
		}
		if claimCol != "" {
			row.FechaReclamo = nullString(cell(r, idx[claimCol]))
		}

		if tipo == TipoDocNotaCredito || tipo == TipoDocNotaDebito {
			negate(row.MontoExento)
			negate(row.MontoNeto)
			negate(row.MontoIVA)
			negate(row.MontoTotal)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func negate(v *int64) {
	if v != nil {
		*v = -*v
	}
}
