package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/sources"
)

func creditNote(rut, folio, payload string) *Record {
	row := siiRow(61, rut, folio, -595)
	rec := &Record{Key: row.Key, SII: row}
	if payload != "" {
		rec.Acepta = &sources.AceptaRow{Key: row.Key, Referencias: &payload}
	}
	return rec
}

func TestResolveReferences_ForwardAndBackward(t *testing.T) {
	invoice := &Record{Key: "111123", SII: siiRow(33, "111", "123", 1190)}
	nc := creditNote("111", "9", `[{"Tipo":"52","Folio":"77"},{"Tipo":"33","Folio":"00123"}]`)

	ResolveReferences([]*Record{invoice, nc}, zap.NewNop())

	assert.Equal(t, "111123", nc.Derived.ReferenciaFactura)
	assert.Equal(t, ">FE: 111123\n>NC: ", nc.Derived.Referencias)

	assert.Equal(t, "1119", invoice.Derived.ReferenciaNC)
	assert.Equal(t, ">FE: \n>NC: 1119", invoice.Derived.Referencias)
}

func TestResolveReferences_PayloadWithControlCharacters(t *testing.T) {
	nc := creditNote("111", "9", "[{\"Tipo\":\"33\",\n\"Folio\":\"0042\"}]")

	ResolveReferences([]*Record{nc}, zap.NewNop())
	assert.Equal(t, "11142", nc.Derived.ReferenciaFactura)
}

func TestResolveReferences_MalformedPayloadYieldsNoReference(t *testing.T) {
	nc := creditNote("111", "9", "{not json")

	ResolveReferences([]*Record{nc}, zap.NewNop())
	assert.Empty(t, nc.Derived.ReferenciaFactura)
	assert.Equal(t, ">FE: \n>NC: ", nc.Derived.Referencias)
}

func TestResolveReferences_NoInvoiceDescriptor(t *testing.T) {
	nc := creditNote("111", "9", `[{"Tipo":"52","Folio":"77"}]`)

	ResolveReferences([]*Record{nc}, zap.NewNop())
	assert.Empty(t, nc.Derived.ReferenciaFactura)
}

func TestResolveReferences_OnlyCreditNotesResolve(t *testing.T) {
	payload := `[{"Tipo":"33","Folio":"123"}]`
	invoice := &Record{
		Key:    "111500",
		SII:    siiRow(33, "111", "500", 1190),
		Acepta: &sources.AceptaRow{Key: "111500", Referencias: &payload},
	}

	ResolveReferences([]*Record{invoice}, zap.NewNop())
	assert.Empty(t, invoice.Derived.ReferenciaFactura)
}

func TestResolveReferences_MissingPayload(t *testing.T) {
	nc := creditNote("111", "9", "")

	require.NotPanics(t, func() {
		ResolveReferences([]*Record{nc}, zap.NewNop())
	})
	assert.Equal(t, ">FE: \n>NC: ", nc.Derived.Referencias)
}
