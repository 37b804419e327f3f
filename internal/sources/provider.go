package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Provider lists the input files of a named source, independent of where
// they are stored. The pipeline receives one injected Provider instead
// of assuming a filesystem layout.
type Provider interface {
	Files(source string) ([]string, error)
}

// subdirs maps each source to its directory under the raw-data root.
var subdirs = map[string]string{
	SourceSII:           "base_de_datos_facturas/SII",
	SourceAcepta:        "base_de_datos_facturas/ACEPTA",
	SourceSCI:           "base_de_datos_facturas/SCI",
	SourceSigfe:         "base_de_datos_facturas/SIGFE",
	SourceTurbo:         "base_de_datos_facturas/TURBO",
	SourceObservaciones: "base_de_datos_facturas/OBSERVACIONES",
	SourceOC:            "base_de_datos_oc/SIGFE_REPORTS",
	SourceMaestro:       "base_de_datos_articulos/MAESTRO_ARTICULOS",
	SourcePresupuesto:   "base_de_datos_articulos/LEY_PRESUPUESTOS",
}

// DirProvider resolves source files from a root directory, one
// sub-directory per source. When Year is non-zero only files whose name
// carries that year are returned, which is how current-period runs avoid
// re-reading every historical export.
type DirProvider struct {
	Root string
	Year int
}

// Files returns the sorted file paths of one source. An unknown source
// or a missing directory is a fatal source-shape error.
func (p *DirProvider) Files(source string) ([]string, error) {
	subdir, ok := subdirs[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", source)
	}

	dir := filepath.Join(p.Root, filepath.FromSlash(subdir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source %s: %w", source, err)
	}

	var files []string
	year := strconv.Itoa(p.Year)
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if p.Year != 0 && !strings.Contains(e.Name(), year) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("source %s has no files in %s", source, dir)
	}
	return files, nil
}
