// Package keys builds the composite key used to join invoice records
// across every data source. All adapters must normalize through this
// package before keys are compared; a formatting mismatch here silently
// drops join matches instead of erroring.
package keys

import "strings"

// NormalizeRUT canonicalizes a raw tax id: dots removed, upper-cased,
// surrounding whitespace trimmed. "12.345.678-9" and " 12345678-9 "
// normalize to the same value.
func NormalizeRUT(rut string) string {
	rut = strings.ReplaceAll(rut, ".", "")
	rut = strings.ToUpper(rut)
	return strings.TrimSpace(rut)
}

// CanonicalFolio coerces a folio to its canonical string form, dropping
// the trailing ".0" artifact left by numeric spreadsheet exports.
func CanonicalFolio(folio string) string {
	folio = strings.TrimSpace(folio)
	folio = strings.TrimSuffix(folio, ".0")
	return folio
}

// Composite concatenates a normalized RUT and a canonical folio into the
// join key. Either part empty yields an empty key, which adapters treat
// as an unusable row.
func Composite(rut, folio string) string {
	r := NormalizeRUT(rut)
	f := CanonicalFolio(folio)
	if r == "" || f == "" {
		return ""
	}
	return r + f
}
