package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// HistoryFileName is the durable invoice-control ledger.
const HistoryFileName = "control_facturas_historico.csv"

// Store persists the projected ledger. Every write is a full rewrite
// through a temp file and rename, so a failed run never leaves a
// half-written ledger behind.
type Store struct {
	historyPath string
	extractDir  string
	logger      *zap.Logger
}

// NewStore creates a store. historyPath is the historical ledger file;
// extractDir receives the per-year observation extracts.
func NewStore(historyPath, extractDir string, logger *zap.Logger) *Store {
	return &Store{
		historyPath: historyPath,
		extractDir:  extractDir,
		logger:      logger,
	}
}

// SaveFullHistory overwrites the historical ledger with the freshly
// computed table and rewrites one observation extract per document year
// present. Returns the number of rows written.
func (s *Store) SaveFullHistory(t *Table) (int, error) {
	if err := s.writeRows(s.historyPath, t.Rows); err != nil {
		return 0, fmt.Errorf("failed to write historical ledger: %w", err)
	}

	for _, year := range t.Years() {
		if err := s.writeExtract(t.Rows, year); err != nil {
			return 0, err
		}
	}

	s.logger.Info("Historical ledger rewritten",
		zap.String("path", s.historyPath),
		zap.Int("documents", len(t.Rows)),
		zap.Ints("years", t.Years()))
	return len(t.Rows), nil
}

// UpsertCurrentPeriod merges the freshly computed rows into the
// existing historical ledger, last-computed wins per composite key, and
// rewrites the extract of the given year only. A missing historical
// ledger is fatal: current-period mode never bootstraps history.
func (s *Store) UpsertCurrentPeriod(t *Table, year int) (int, error) {
	existing, err := s.readHistory()
	if err != nil {
		return 0, err
	}

	merged := upsert(existing, t.Rows)
	if err := s.writeRows(s.historyPath, merged); err != nil {
		return 0, fmt.Errorf("failed to rewrite historical ledger: %w", err)
	}
	if err := s.writeExtract(t.Rows, year); err != nil {
		return 0, err
	}

	s.logger.Info("Historical ledger upserted",
		zap.Int("computed", len(t.Rows)),
		zap.Int("total", len(merged)),
		zap.Int("year", year))
	return len(merged), nil
}

// upsert concatenates history and new rows and keeps, for each key,
// only the last occurrence in its position. Re-running with identical
// new rows therefore leaves the ledger unchanged.
func upsert(existing, incoming []Row) []Row {
	combined := make([]Row, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)

	last := make(map[string]int, len(combined))
	for i, row := range combined {
		last[row.Key] = i
	}

	merged := make([]Row, 0, len(last))
	for i, row := range combined {
		if last[row.Key] == i {
			merged = append(merged, row)
		}
	}
	return merged
}

// readHistory loads the persisted ledger back into rows, recovering
// each row's key and document year from the published columns.
func (s *Store) readHistory() ([]Row, error) {
	f, err := os.Open(s.historyPath)
	if err != nil {
		return nil, fmt.Errorf("no historical ledger at %s: %w", s.historyPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse historical ledger: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("historical ledger %s has no header", s.historyPath)
	}

	header := records[0]
	keyCol, dateCol := -1, -1
	for i, name := range header {
		switch name {
		case "llave_id":
			keyCol = i
		case "Fecha_Docto_SII":
			dateCol = i
		}
	}
	if keyCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("historical ledger %s lacks llave_id or Fecha_Docto_SII", s.historyPath)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if keyCol >= len(rec) {
			continue
		}
		row := Row{Key: rec[keyCol], Values: rec}
		if dateCol < len(rec) {
			if d, err := time.Parse(dateLayout, rec[dateCol]); err == nil {
				row.Year = d.Year()
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeExtract rewrites the observation extract of one year with that
// year's rows.
func (s *Store) writeExtract(rows []Row, year int) error {
	var filtered []Row
	for _, row := range rows {
		if row.Year == year {
			filtered = append(filtered, row)
		}
	}

	path := filepath.Join(s.extractDir, fmt.Sprintf("OBSERVACIONES %d.csv", year))
	if err := s.writeRows(path, filtered); err != nil {
		return fmt.Errorf("failed to write extract for %s: %w", strconv.Itoa(year), err)
	}
	return nil
}

// writeRows writes a full CSV atomically: temp file in the target
// directory, then rename.
func (s *Store) writeRows(path string, rows []Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	w.Comma = ';'

	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Values); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row %s: %w", row.Key, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
