package pipeline

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/sources"
)

// refDescriptor is one entry of the referencias payload carried by the
// approval workflow: the type and folio of a referenced document.
type refDescriptor struct {
	Tipo  string `json:"Tipo"`
	Folio string `json:"Folio"`
}

// ResolveReferences links credit notes to the invoices they offset.
// Forward: the first type-33 descriptor in a credit note's payload names
// the invoice folio, which combined with the issuer RUT gives the
// invoice's composite key. Backward: the referenced invoice records the
// credit note's own key. Both directions end up consolidated in one
// human-readable text field on every record.
func ResolveReferences(records []*Record, logger *zap.Logger) {
	byKey := make(map[string]*Record, len(records))
	for _, rec := range records {
		byKey[rec.Key] = rec
	}

	resolved, malformed := 0, 0
	for _, rec := range records {
		if rec.SII.TipoDoc != sources.TipoDocNotaCredito || rec.Acepta == nil || rec.Acepta.Referencias == nil {
			continue
		}

		folio, ok := invoiceFolio(*rec.Acepta.Referencias)
		if !ok {
			malformed++
			continue
		}
		if folio == "" {
			continue
		}

		rec.Derived.ReferenciaFactura = rec.SII.RUTEmisor + strings.TrimLeft(folio, "0")
		resolved++

		if target := byKey[rec.Derived.ReferenciaFactura]; target != nil && target.Derived.ReferenciaNC == "" {
			target.Derived.ReferenciaNC = rec.Key
		}
	}

	for _, rec := range records {
		rec.Derived.Referencias = ">FE: " + rec.Derived.ReferenciaFactura +
			"\n>NC: " + rec.Derived.ReferenciaNC
	}

	logger.Info("Credit-note references resolved",
		zap.Int("resolved", resolved),
		zap.Int("malformed_payloads", malformed))
}

// invoiceFolio extracts the folio of the first invoice (type 33)
// descriptor from a payload. Malformed payloads report ok=false; a
// well-formed payload without an invoice descriptor returns an empty
// folio.
func invoiceFolio(payload string) (folio string, ok bool) {
	var descriptors []refDescriptor
	if err := json.Unmarshal([]byte(sanitizePayload(payload)), &descriptors); err != nil {
		return "", false
	}
	for _, d := range descriptors {
		if d.Tipo == "33" {
			return d.Folio, true
		}
	}
	return "", true
}

// sanitizePayload blanks unescaped control characters, which the
// upstream system emits inside free-text reference fields and strict
// JSON parsing rejects.
func sanitizePayload(payload string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 {
			return ' '
		}
		return r
	}, payload)
}
