package pipeline

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/dates"
)

// ComputeAging parses the textual SII dates and, for invoices not yet
// accrued, derives the elapsed days since reception and the
// within-review-window flag. Accrued invoices keep both fields absent.
// An unparsable date loses only that field, never the run.
func ComputeAging(records []*Record, now time.Time, windowDays int, logger *zap.Logger) {
	today := dates.Midnight(now)
	badDates := 0
	withinWindow := 0

	for _, rec := range records {
		rec.Derived.FechaDocto = parseDate(rec.SII.FechaDocto, &badDates)
		rec.Derived.FechaRecepcion = parseDate(rec.SII.FechaRecepcion, &badDates)
		if rec.SII.FechaReclamo != nil {
			rec.Derived.FechaReclamo = parseDate(*rec.SII.FechaReclamo, &badDates)
		}

		if accrued(rec) || rec.Derived.FechaRecepcion == nil {
			continue
		}

		// Parsed dates carry no zone; rebuild in today's location so the
		// subtraction counts whole calendar days.
		r := *rec.Derived.FechaRecepcion
		recepcion := time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, today.Location())
		elapsed := decimal.NewFromFloat(today.Sub(recepcion).Hours()/24 + 1).Round(2)
		alDia := elapsed.LessThanOrEqual(decimal.NewFromInt(int64(windowDays)))

		rec.Derived.TiempoDiferencia = &elapsed
		rec.Derived.EstaAlDia = &alDia
		if alDia {
			withinWindow++
		}
	}

	if badDates > 0 {
		logger.Warn("Documents with unparsable dates", zap.Int("fields", badDates))
	}
	logger.Info("Aging computed",
		zap.Int("window_days", windowDays),
		zap.Int("within_window", withinWindow))
}

// accrued reports whether the accounting ledger already recognized the
// invoice. Accrued documents are outside the review window entirely.
func accrued(rec *Record) bool {
	return rec.Sigfe != nil && rec.Sigfe.FechaDevengo != nil
}

func parseDate(value string, badDates *int) *time.Time {
	if value == "" {
		return nil
	}
	t, err := dates.ParseDayFirst(value)
	if err != nil {
		*badDates++
		return nil
	}
	return &t
}
