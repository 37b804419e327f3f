// Package ledger projects reconciled records onto the published column
// layout and persists the historical invoice-control file: semicolon
// delimited, comma decimal separator, UTF-8, upserted by composite key.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jrojasb/control-facturas/internal/pipeline"
	"github.com/jrojasb/control-facturas/internal/sources"
)

// Columns is the published layout of the control ledger: the composite
// key plus 48 named fields spanning every source group. Downstream
// spreadsheets depend on this exact order.
var Columns = []string{
	"llave_id",
	"Tipo_Doc_SII",
	"RUT_Emisor_SII",
	"Razon_Social_SII",
	"Folio_SII",
	"Fecha_Docto_SII",
	"Fecha_Recepcion_SII",
	"Fecha_Reclamo_SII",
	"Monto_Exento_SII",
	"Monto_Neto_SII",
	"Monto_IVA_Recuperable_SII",
	"Monto_Total_SII",
	"publicacion_ACEPTA",
	"estado_acepta_ACEPTA",
	"estado_sii_ACEPTA",
	"estado_nar_ACEPTA",
	"estado_devengo_ACEPTA",
	"folio_oc_ACEPTA",
	"Numero_Compromiso_OC",
	"Monto_Disponible_OC",
	"Concepto_Presupuesto_OC",
	"folio_rc_ACEPTA",
	"fecha_ingreso_rc_ACEPTA",
	"folio_sigfe_ACEPTA",
	"tarea_actual_ACEPTA",
	"estado_cesion_ACEPTA",
	"Fecha_DEVENGO_SIGFE",
	"Folio_interno_DEVENGO_SIGFE",
	"Fecha_PAGO_SIGFE",
	"Folio_interno_PAGO_SIGFE",
	"Fecha_Recepción_SCI",
	"Registrador_SCI",
	"Codigo_Articulo_SCI",
	"Articulo_SCI",
	"N°_Acta_SCI",
	"Familia_MAESTRO_ARTICULOS",
	"Items_MAESTRO_ARTICULOS",
	"Nombre_Items_MAESTRO_ARTICULOS",
	"Cargar_en_LEY_PRESUPUESTO",
	"Ubic._TURBO",
	"NºPresu_TURBO",
	"Folio_interno_TURBO",
	"NºPago_TURBO",
	"Monto_TURBO",
	"tiempo_diferencia_SII",
	"esta_al_dia",
	"monto_sii_y_turbo_coinciden",
	"REFERENCIAS",
	"OBSERVACION_OBSERVACIONES",
}

const dateLayout = "2006-01-02"

// marshal renders one record in the published column order. Absent
// values become empty cells; decimals use the comma separator the
// back-office convention mandates.
func marshal(rec *pipeline.Record) []string {
	values := make([]string, 0, len(Columns))

	values = append(values,
		rec.Key,
		strconv.Itoa(rec.SII.TipoDoc),
		rec.SII.RUTEmisor,
		rec.SII.RazonSocial,
		rec.SII.Folio,
		fmtDate(rec.Derived.FechaDocto),
		fmtDate(rec.Derived.FechaRecepcion),
		fmtDate(rec.Derived.FechaReclamo),
		fmtInt(rec.SII.MontoExento),
		fmtInt(rec.SII.MontoNeto),
		fmtInt(rec.SII.MontoIVA),
		fmtInt(rec.SII.MontoTotal),
	)

	a := rec.Acepta
	if a == nil {
		a = &emptyAcepta
	}
	values = append(values,
		fmtStr(a.Publicacion),
		fmtStr(a.EstadoAcepta),
		fmtStr(a.EstadoSII),
		fmtStr(a.EstadoNAR),
		fmtStr(a.EstadoDevengo),
		fmtStr(a.FolioOC),
	)

	if oc := rec.OC; oc != nil {
		values = append(values, fmtStr(oc.NumeroCompromiso), fmtDecimal(oc.MontoDisponible), fmtStr(oc.ConceptoPresupuesto))
	} else {
		values = append(values, "", "", "")
	}

	values = append(values,
		fmtStr(a.FolioRC),
		fmtStr(a.FechaIngresoRC),
		fmtInt(a.FolioSigfe),
		fmtStr(a.TareaActual),
		fmtStr(a.EstadoCesion),
	)

	if s := rec.Sigfe; s != nil {
		values = append(values, fmtDate(s.FechaDevengo), fmtInt(s.FolioDevengo), fmtDate(s.FechaPago), fmtInt(s.FolioPago))
	} else {
		values = append(values, "", "", "", "")
	}

	if s := rec.SCI; s != nil {
		values = append(values, fmtStr(s.FechaRecepcion), fmtStr(s.Registrador), fmtStr(s.CodigoArticulo), fmtStr(s.Articulo), fmtStr(s.NumeroActa))
	} else {
		values = append(values, "", "", "", "", "")
	}

	if m := rec.Articulo; m != nil {
		values = append(values, fmtStr(m.Familia), fmtStr(m.Items), fmtStr(m.NombreItems))
	} else {
		values = append(values, "", "", "")
	}

	if p := rec.Presupuesto; p != nil {
		values = append(values, fmtStr(p.CargarEn))
	} else {
		values = append(values, "")
	}

	if tu := rec.Turbo; tu != nil {
		values = append(values, fmtStr(tu.Ubicacion), fmtStr(tu.NumPresu), fmtStr(tu.FolioInterno), fmtStr(tu.NumPago), fmtInt(tu.Monto))
	} else {
		values = append(values, "", "", "", "", "")
	}

	values = append(values,
		fmtDecimal(rec.Derived.TiempoDiferencia),
		fmtBool(rec.Derived.EstaAlDia),
		strconv.FormatBool(rec.Derived.MontosCoinciden),
		rec.Derived.Referencias,
		fmtStr(rec.Observacion),
	)

	return values
}

// emptyAcepta renders the workflow group of invoices the approval
// system never saw.
var emptyAcepta sources.AceptaRow

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func fmtInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func fmtStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func fmtBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func fmtDecimal(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return strings.Replace(v.String(), ".", ",", 1)
}
