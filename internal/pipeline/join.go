package pipeline

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/sources"
)

// Secondary bundles every table joined onto the tax-authority universe.
type Secondary struct {
	Acepta        []sources.AceptaRow
	Observaciones []sources.ObservacionRow
	SCI           []sources.SCIRow
	Sigfe         []sources.SigfeRow
	Turbo         []sources.TurboRow
}

// Join left-joins every secondary table onto the SII universe by
// composite key. Keys present only in a secondary table produce no
// output row, and duplicate SII keys collapse to the first occurrence.
func Join(sii []sources.SIIRow, sec Secondary, logger *zap.Logger) []*Record {
	acepta := firstSeen(sec.Acepta, func(r sources.AceptaRow) string { return r.Key })
	observaciones := firstSeen(sec.Observaciones, func(r sources.ObservacionRow) string { return r.Key })
	sci := firstSeen(sec.SCI, func(r sources.SCIRow) string { return r.Key })
	sigfe := firstSeen(sec.Sigfe, func(r sources.SigfeRow) string { return r.Key })
	turbo := firstSeen(sec.Turbo, func(r sources.TurboRow) string { return r.Key })

	records := make([]*Record, 0, len(sii))
	seen := make(map[string]bool, len(sii))
	collapsed := 0

	for _, row := range sii {
		if seen[row.Key] {
			collapsed++
			continue
		}
		seen[row.Key] = true

		rec := &Record{
			Key:    row.Key,
			SII:    row,
			Acepta: acepta[row.Key],
			SCI:    sci[row.Key],
			Sigfe:  sigfe[row.Key],
			Turbo:  turbo[row.Key],
		}
		if obs := observaciones[row.Key]; obs != nil {
			rec.Observacion = obs.Observacion
		}
		records = append(records, rec)
	}

	logger.Info("Sources joined",
		zap.Int("documents", len(records)),
		zap.Int("collapsed_duplicates", collapsed))
	return records
}

// firstSeen indexes rows by key, keeping the first occurrence so joins
// are deterministic across runs.
func firstSeen[T any](rows []T, key func(T) string) map[string]*T {
	byKey := make(map[string]*T, len(rows))
	for i := range rows {
		k := key(rows[i])
		if _, ok := byKey[k]; !ok {
			byKey[k] = &rows[i]
		}
	}
	return byKey
}
