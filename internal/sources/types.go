// Package sources ingests the raw export files of every upstream system
// into typed, composite-key addressed rows. Each adapter validates its
// file layout against an explicit column schema; a missing column is a
// fatal source-shape error, while an individual bad row only loses the
// affected fields.
package sources

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source names, also the sub-directory each adapter reads from.
const (
	SourceSII           = "SII"
	SourceAcepta        = "ACEPTA"
	SourceSCI           = "SCI"
	SourceSigfe         = "SIGFE"
	SourceTurbo         = "TURBO"
	SourceObservaciones = "OBSERVACIONES"
	SourceOC            = "SIGFE_REPORTS"
	SourceMaestro       = "MAESTRO_ARTICULOS"
	SourcePresupuesto   = "LEY_PRESUPUESTOS"
)

// Document type codes used by the tax authority. Credit and debit notes
// carry negated amounts relative to invoices.
const (
	TipoDocFactura     = 33
	TipoDocNotaDebito  = 56
	TipoDocNotaCredito = 61
)

// SIIRow is one document in the tax-authority registry, the universe of
// truth for the ledger. Dates stay textual; they are parsed downstream
// with row-level tolerance.
type SIIRow struct {
	Key            string
	TipoDoc        int
	RUTEmisor      string
	RazonSocial    string
	Folio          string
	FechaDocto     string
	FechaRecepcion string
	FechaReclamo   *string
	MontoExento    *int64
	MontoNeto      *int64
	MontoIVA       *int64
	MontoTotal     *int64
}

// AceptaRow is the vendor-approval workflow state for one document.
type AceptaRow struct {
	Key            string
	Publicacion    *string
	EstadoAcepta   *string
	EstadoSII      *string
	Referencias    *string
	EstadoNAR      *string
	EstadoDevengo  *string
	FolioOC        *string
	FolioRC        *string
	FechaIngresoRC *string
	FolioSigfe     *int64
	TareaActual    *string
	EstadoCesion   *string
}

// SCIRow is a warehouse receipt log entry.
type SCIRow struct {
	Key            string
	FechaRecepcion *string
	Registrador    *string
	CodigoArticulo *string
	Articulo       *string
	NumeroActa     *string
}

// SigfeRow is the accounting-ledger observation for one document,
// already reduced to the earliest accrual and payment per key.
type SigfeRow struct {
	Key          string
	FechaDevengo *time.Time
	FolioDevengo *int64
	FechaPago    *time.Time
	FolioPago    *int64
}

// TurboRow carries the warehouse-recorded amount and its internal folios.
type TurboRow struct {
	Key          string
	FolioInterno *string
	Ubicacion    *string
	NumPresu     *string
	NumPago      *string
	Monto        *int64
}

// ObservacionRow is a free-text annotation re-ingested from a previously
// exported observation extract.
type ObservacionRow struct {
	Key         string
	Observacion *string
}

// OCRow is one purchase-order ledger line. Keyed by order number, not by
// the composite key.
type OCRow struct {
	NumeroDocumento     string
	FolioCompromiso     *string
	MontoDisponible     *decimal.Decimal
	ConceptoPresupuesto *string
}

// ArticuloRow is an item-master entry, keyed by item code.
type ArticuloRow struct {
	Codigo      string
	Familia     *string
	Items       *string
	NombreItems *string
}

// PresupuestoRow is a budget-law concept, keyed by concept number.
type PresupuestoRow struct {
	NumeroConcepto string
	CargarEn       *string
}
