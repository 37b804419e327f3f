package sources

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/dates"
	"github.com/jrojasb/control-facturas/internal/keys"
)

// SIGFE ledger exports have a ten-line report banner before the header,
// and the header repeats mid-file at page breaks.
const sigfeHeaderSkip = 10

var sigfeColumns = []string{
	"Principal",
	"Número",
	"Folio",
	"Fecha",
	"Debe",
	"Haber",
	"Cuenta Contable",
}

// sigfeLine is one raw ledger line before per-key reduction.
type sigfeLine struct {
	key          string
	folioInterno *int64
	fecha        *time.Time
	debe         bool
	haber        bool
}

// LoadSigfe reads the accounting ledger and reduces its debit/credit
// lines to one observation per composite key: the earliest accrual date
// and internal folio (credit side) and the earliest payment date and
// internal folio (debit side).
func LoadSigfe(provider Provider, logger *zap.Logger) ([]SigfeRow, error) {
	files, err := provider.Files(SourceSigfe)
	if err != nil {
		return nil, err
	}

	var lines []sigfeLine
	badDates := 0

	for _, path := range files {
		header, raw, err := readCSV(path, ',', sigfeHeaderSkip)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, sigfeColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			// Page breaks re-emit the header as a data row.
			if cell(r, idx["Cuenta Contable"]) == "Cuenta Contable" {
				continue
			}
			folioInterno := nullInt(cell(r, idx["Folio"]))
			if folioInterno == nil {
				continue
			}

			rut, _, _ := strings.Cut(cell(r, idx["Principal"]), " ")
			key := keys.Composite(rut, cell(r, idx["Número"]))
			if key == "" {
				continue
			}

			line := sigfeLine{
				key:          key,
				folioInterno: folioInterno,
				debe:         isMovement(cell(r, idx["Debe"])),
				haber:        isMovement(cell(r, idx["Haber"])),
			}
			if t, err := dates.ParseDayFirst(cell(r, idx["Fecha"])); err == nil {
				line.fecha = &t
			} else {
				badDates++
			}
			lines = append(lines, line)
		}
	}

	if badDates > 0 {
		logger.Warn("SIGFE lines with unparsable dates", zap.Int("lines", badDates))
	}

	rows := reduceSigfe(lines)
	logger.Info("SIGFE ledger loaded",
		zap.Int("files", len(files)),
		zap.Int("lines", len(lines)),
		zap.Int("documents", len(rows)))
	return rows, nil
}

// isMovement reports whether a debit or credit cell carries an amount.
func isMovement(v string) bool {
	return v != "" && v != "0"
}

// reduceSigfe groups ledger lines per composite key, keeping minima on
// each observed field independently. Output order follows first
// appearance so runs are reproducible.
func reduceSigfe(lines []sigfeLine) []SigfeRow {
	byKey := make(map[string]*SigfeRow)
	var order []string

	for _, l := range lines {
		row, ok := byKey[l.key]
		if !ok {
			row = &SigfeRow{Key: l.key}
			byKey[l.key] = row
			order = append(order, l.key)
		}
		if l.haber {
			row.FechaDevengo = minTime(row.FechaDevengo, l.fecha)
			row.FolioDevengo = minInt(row.FolioDevengo, l.folioInterno)
		}
		if l.debe {
			row.FechaPago = minTime(row.FechaPago, l.fecha)
			row.FolioPago = minInt(row.FolioPago, l.folioInterno)
		}
	}

	rows := make([]SigfeRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byKey[key])
	}
	return rows
}

func minTime(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		return candidate
	}
	return current
}

func minInt(current, candidate *int64) *int64 {
	if candidate == nil {
		return current
	}
	if current == nil || *candidate < *current {
		return candidate
	}
	return current
}
