package ledger

import (
	"sort"
	"time"

	"github.com/jrojasb/control-facturas/internal/pipeline"
)

// Row is one serialized ledger line. Year is zero when the document
// date could not be parsed; such rows never land in a year extract.
type Row struct {
	Key    string
	Year   int
	Values []string
}

// Table is the projected, sorted ledger ready for persistence.
type Table struct {
	Rows []Row
}

// Project narrows the reconciled records to the published columns and
// sorts them by document date ascending, with elapsed days descending
// as the tie-break so the longest-overdue documents surface first
// within a day. Records without a document date sort last.
func Project(records []*pipeline.Record) *Table {
	sorted := make([]*pipeline.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Derived.FechaDocto, sorted[j].Derived.FechaDocto
		switch {
		case di == nil && dj == nil:
			return elapsedAfter(sorted[i], sorted[j])
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.Before(*dj)
		}
		return elapsedAfter(sorted[i], sorted[j])
	})

	t := &Table{Rows: make([]Row, 0, len(sorted))}
	for _, rec := range sorted {
		t.Rows = append(t.Rows, Row{
			Key:    rec.Key,
			Year:   documentYear(rec.Derived.FechaDocto),
			Values: marshal(rec),
		})
	}
	return t
}

// elapsedAfter orders higher elapsed-days first; records without the
// value sort after those that have it.
func elapsedAfter(a, b *pipeline.Record) bool {
	ea, eb := a.Derived.TiempoDiferencia, b.Derived.TiempoDiferencia
	switch {
	case ea == nil:
		return false
	case eb == nil:
		return true
	}
	return ea.GreaterThan(*eb)
}

// Years returns the distinct document years in row order.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, row := range t.Rows {
		if row.Year == 0 || seen[row.Year] {
			continue
		}
		seen[row.Year] = true
		years = append(years, row.Year)
	}
	return years
}

func documentYear(d *time.Time) int {
	if d == nil {
		return 0
	}
	return d.Year()
}
