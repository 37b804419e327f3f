// Package pipeline reconciles the loaded source tables into one invoice
// control record per composite key: left-join cascade, aging, credit-note
// cross references, purchase-order balances, master-data enrichment and
// the amount-consistency flag.
package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jrojasb/control-facturas/internal/sources"
)

// Record is one reconciled invoice. The tax-authority group is always
// present; every other group is nil when that source has no row for the
// key.
type Record struct {
	Key         string
	SII         sources.SIIRow
	Acepta      *sources.AceptaRow
	Observacion *string
	SCI         *sources.SCIRow
	Sigfe       *sources.SigfeRow
	Turbo       *sources.TurboRow
	OC          *OCEnrichment
	Articulo    *sources.ArticuloRow
	Presupuesto *sources.PresupuestoRow
	Derived     Derived
}

// OCEnrichment is the purchase-order data broadcast onto an invoice that
// references an open order.
type OCEnrichment struct {
	NumeroCompromiso    *string
	MontoDisponible     *decimal.Decimal
	ConceptoPresupuesto *string
}

// Derived holds everything computed by the pipeline itself.
type Derived struct {
	FechaDocto     *time.Time
	FechaRecepcion *time.Time
	FechaReclamo   *time.Time

	// TiempoDiferencia and EstaAlDia stay nil for accrued invoices.
	TiempoDiferencia *decimal.Decimal
	EstaAlDia        *bool

	MontosCoinciden bool

	ReferenciaFactura string
	ReferenciaNC      string
	Referencias       string
}
