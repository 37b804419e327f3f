package sources

import (
	"go.uber.org/zap"

	"github.com/jrojasb/control-facturas/internal/keys"
)

var aceptaColumns = []string{
	"tipo",
	"folio",
	"emisor",
	"publicacion",
	"estado_acepta",
	"estado_sii",
	"referencias",
	"estado_nar",
	"estado_devengo",
	"folio_oc",
	"folio_rc",
	"fecha_ingreso_rc",
	"folio_sigfe",
	"tarea_actual",
	"estado_cesion",
}

// LoadAcepta reads the vendor-approval workflow workbooks. The
// referencias column carries the semi-structured payload the
// cross-reference resolver parses later; it is kept verbatim here.
func LoadAcepta(provider Provider, logger *zap.Logger) ([]AceptaRow, error) {
	files, err := provider.Files(SourceAcepta)
	if err != nil {
		return nil, err
	}

	var rows []AceptaRow
	for _, path := range files {
		header, raw, err := readXLSX(path, 0)
		if err != nil {
			return nil, err
		}
		idx, err := columnIndex(path, header, aceptaColumns)
		if err != nil {
			return nil, err
		}

		for _, r := range raw {
			key := keys.Composite(cell(r, idx["emisor"]), cell(r, idx["folio"]))
			if key == "" {
				continue
			}
			rows = append(rows, AceptaRow{
				Key:            key,
				Publicacion:    nullString(cell(r, idx["publicacion"])),
				EstadoAcepta:   nullString(cell(r, idx["estado_acepta"])),
				EstadoSII:      nullString(cell(r, idx["estado_sii"])),
				Referencias:    nullString(cell(r, idx["referencias"])),
				EstadoNAR:      nullString(cell(r, idx["estado_nar"])),
				EstadoDevengo:  nullString(cell(r, idx["estado_devengo"])),
				FolioOC:        nullString(cell(r, idx["folio_oc"])),
				FolioRC:        nullString(cell(r, idx["folio_rc"])),
				FechaIngresoRC: nullString(cell(r, idx["fecha_ingreso_rc"])),
				FolioSigfe:     nullInt(cell(r, idx["folio_sigfe"])),
				TareaActual:    nullString(cell(r, idx["tarea_actual"])),
				EstadoCesion:   nullString(cell(r, idx["estado_cesion"])),
			})
		}
	}

	logger.Info("ACEPTA workflow loaded",
		zap.Int("files", len(files)),
		zap.Int("documents", len(rows)))
	return rows, nil
}
