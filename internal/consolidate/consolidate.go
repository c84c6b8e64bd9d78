// Package consolidate merges the per-resource observation tables into the
// published dataset: one table, deduplicated, renamed to the final schema,
// with a dense sequential id and a fixed leading column order.
package consolidate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"
	"github.com/Giomelox/Be-Analytic-ETL/internal/numfmt"
	"github.com/Giomelox/Be-Analytic-ETL/internal/reshape"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// DefaultArtifactName is the file name of the consolidated CSV artifact.
const DefaultArtifactName = "dados_ida_tratados.csv"

// publishedNames maps working column labels to the published schema.
var publishedNames = map[string]string{
	reshape.ColGroup:    "grupo_economico",
	reshape.ColVariable: "servico",
	reshape.ColPeriod:   "mes_referencia",
	reshape.ColValue:    "valor",
	reshape.ColService:  "tipo_servico",
}

// preferredOrder is the fixed leading column order of the published table.
// Columns not listed keep their relative order after these.
var preferredOrder = []string{
	"id", "grupo_economico", "servico", "mes_referencia", "valor", "tipo_servico",
}

// Consolidate unions the observation tables, drops exact duplicate rows
// keeping the first occurrence, re-trims the value column, renames to the
// published schema, assigns ids starting at 1, and fixes column order.
//
// The result is deterministic for identical ordered inputs, including id
// assignment.
func Consolidate(tables []table.Table) table.Table {
	merged := table.Union(tables)
	merged = dropDuplicateRows(merged)
	merged = merged.MapColumn(reshape.ColValue, numfmt.TrimDecimal)
	merged = merged.RenameColumns(publishedNames)
	merged = merged.InsertColumn(0, "id", func(i int) string {
		return strconv.Itoa(i + 1)
	})
	merged = reorder(merged)
	metrics.RecordRows("consolidated", merged.NumRows())
	return merged
}

// dropDuplicateRows removes rows whose full cell tuple already appeared,
// keeping the first occurrence. A 128-bit row hash prunes candidates; the
// full tuple is compared on hash hits so collisions cannot drop rows.
func dropDuplicateRows(t table.Table) table.Table {
	out := table.New(append([]string(nil), t.Columns...))
	seen := make(map[xxh3.Uint128][][]string, len(t.Rows))

	for _, row := range t.Rows {
		h := hashRow(row)
		dup := false
		for _, prev := range seen[h] {
			if equalRows(prev, row) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], row)
		out.AppendRow(row)
	}

	metrics.RecordRows("deduplicated", t.NumRows()-out.NumRows())
	return out
}

func hashRow(row []string) xxh3.Uint128 {
	var h xxh3.Hasher
	for _, cell := range row {
		_, _ = h.WriteString(cell)
		// Separator prevents adjacent cells from merging into one token.
		_, _ = h.Write([]byte{0})
	}
	return h.Sum128()
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reorder moves the preferred columns to the front, keeping every other
// column in its existing relative order after them.
func reorder(t table.Table) table.Table {
	names := make([]string, 0, len(t.Columns))
	listed := make(map[string]struct{}, len(preferredOrder))
	for _, name := range preferredOrder {
		if t.HasColumn(name) {
			names = append(names, name)
		}
		listed[name] = struct{}{}
	}
	for _, name := range t.Columns {
		if _, ok := listed[name]; !ok {
			names = append(names, name)
		}
	}
	return t.Select(names)
}

// WriteCSV writes the consolidated table as a comma-delimited UTF-8 file
// with a header row. Missing values stay empty strings.
func WriteCSV(t table.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the artifact to path, creating or truncating it.
func WriteCSVFile(t table.Table, path string) error {
	if path == "" {
		path = DefaultArtifactName
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := WriteCSV(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
