package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/sources"
)

// Inputs holds every loaded source table for one run.
type Inputs struct {
	SII           []sources.SIIRow
	Acepta        []sources.AceptaRow
	Observaciones []sources.ObservacionRow
	SCI           []sources.SCIRow
	Sigfe         []sources.SigfeRow
	Turbo         []sources.TurboRow
	OC            []sources.OCRow
	Maestro       []sources.ArticuloRow
	Presupuesto   []sources.PresupuestoRow
}

// Pipeline runs the reconciliation steps in a fixed order. Every step
// mutates the record set in place and runs to completion before the
// next; there is no concurrency.
type Pipeline struct {
	windowDays  int
	ocSentinels []string
	logger      *zap.Logger
}

// New creates a pipeline. windowDays is the mandated review window;
// ocSentinels are the placeholder purchase-order numbers to skip.
func New(windowDays int, ocSentinels []string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		windowDays:  windowDays,
		ocSentinels: ocSentinels,
		logger:      logger,
	}
}

// Run reconciles the inputs into one record per composite key.
func (p *Pipeline) Run(in Inputs, now time.Time) []*Record {
	records := Join(in.SII, Secondary{
		Acepta:        in.Acepta,
		Observaciones: in.Observaciones,
		SCI:           in.SCI,
		Sigfe:         in.Sigfe,
		Turbo:         in.Turbo,
	}, p.logger)

	ComputeAging(records, now, p.windowDays, p.logger)
	ResolveReferences(records, p.logger)
	AssociatePurchaseOrders(records, in.OC, p.ocSentinels, p.logger)
	AssociateItemMaster(records, in.Maestro, p.logger)
	AssociateBudgetLaw(records, in.Presupuesto, p.logger)
	CheckAmounts(records, p.logger)

	return records
}
