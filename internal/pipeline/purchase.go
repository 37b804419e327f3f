package pipeline

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/sources"
)

// AssociatePurchaseOrders attaches the available balance, commitment
// folio and budget concept of each purchase order to every invoice whose
// approval-workflow order folio matches. The order side is first reduced
// to one representative row per order number (first matching row), then
// broadcast; sentinel order numbers are placeholder values in the ledger
// and never associate.
func AssociatePurchaseOrders(records []*Record, oc []sources.OCRow, sentinels []string, logger *zap.Logger) {
	skip := make(map[string]bool, len(sentinels))
	for _, s := range sentinels {
		skip[s] = true
	}

	representative := make(map[string]*sources.OCRow, len(oc))
	var orderNumbers []string
	for i := range oc {
		n := oc[i].NumeroDocumento
		if skip[n] {
			continue
		}
		if _, ok := representative[n]; !ok {
			representative[n] = &oc[i]
			orderNumbers = append(orderNumbers, n)
		}
	}

	byFolioOC := make(map[string][]*Record)
	for _, rec := range records {
		if rec.Acepta == nil || rec.Acepta.FolioOC == nil {
			continue
		}
		folio := *rec.Acepta.FolioOC
		byFolioOC[folio] = append(byFolioOC[folio], rec)
	}

	associated := 0
	for _, n := range orderNumbers {
		row := representative[n]
		for _, rec := range byFolioOC[n] {
			rec.OC = &OCEnrichment{
				NumeroCompromiso:    row.FolioCompromiso,
				MontoDisponible:     row.MontoDisponible,
				ConceptoPresupuesto: row.ConceptoPresupuesto,
			}
			associated++
		}
	}

	logger.Info("Purchase orders associated",
		zap.Int("orders", len(orderNumbers)),
		zap.Int("invoices", associated))
}
