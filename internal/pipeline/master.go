package pipeline

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
	"github.com/jrojasb/control-facturas/internal/sources"
)

// AssociateItemMaster attaches the item-master row matching each
// invoice's warehouse-receipt item code. Left lookup: invoices without a
// receipt or with an unknown code keep a nil enrichment.
func AssociateItemMaster(records []*Record, maestro []sources.ArticuloRow, logger *zap.Logger) {
	byCodigo := firstSeen(maestro, func(r sources.ArticuloRow) string { return r.Codigo })

	matched := 0
	for _, rec := range records {
		if rec.SCI == nil || rec.SCI.CodigoArticulo == nil {
			continue
		}
		if art := byCodigo[keys.CanonicalFolio(*rec.SCI.CodigoArticulo)]; art != nil {
			rec.Articulo = art
			matched++
		}
	}

	logger.Info("Item master associated", zap.Int("invoices", matched))
}

// AssociateBudgetLaw attaches the budget-law concept matching the item
// master's classification number. Both sides are compared as canonical
// strings because the sources mix numeric and textual encodings.
func AssociateBudgetLaw(records []*Record, presupuesto []sources.PresupuestoRow, logger *zap.Logger) {
	byConcepto := firstSeen(presupuesto, func(r sources.PresupuestoRow) string { return r.NumeroConcepto })

	matched := 0
	for _, rec := range records {
		if rec.Articulo == nil || rec.Articulo.Items == nil {
			continue
		}
		if ley := byConcepto[keys.CanonicalFolio(*rec.Articulo.Items)]; ley != nil {
			rec.Presupuesto = ley
			matched++
		}
	}

	logger.Info("Budget law associated", zap.Int("invoices", matched))
}
