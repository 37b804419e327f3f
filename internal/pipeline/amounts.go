package pipeline

import "go.uber.org/zap"

// CheckAmounts flags invoices whose tax-authority total equals the
// warehouse-recorded total, with exact integer equality. A missing value
// on either side evaluates to false, never an error.
func CheckAmounts(records []*Record, logger *zap.Logger) {
	consistent := 0
	for _, rec := range records {
		if rec.SII.MontoTotal == nil || rec.Turbo == nil || rec.Turbo.Monto == nil {
			continue
		}
		if *rec.SII.MontoTotal == *rec.Turbo.Monto {
			rec.Derived.MontosCoinciden = true
			consistent++
		}
	}

	logger.Info("Amount consistency checked",
		zap.Int("consistent", consistent),
		zap.Int("documents", len(records)))
}
