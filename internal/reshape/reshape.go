// Package reshape turns a raw decoded grid into long-format observations.
//
// The stages mirror the structure of the source files: narrative and
// metadata rows surround a data grid whose header row carries the economic
// group label; value columns are labeled with year-month periods. Locate the
// header, cut the region, classify columns, then melt wide to long.
package reshape

import (
	"regexp"
	"strings"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/numfmt"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// Canonical column labels used between extraction and consolidation.
const (
	ColGroup    = "GRUPO_ECONOMICO"
	ColVariable = "VARIAVEL"
	ColOperator = "OPERADORA"
	ColPeriod   = "REFERENCIA_MES"
	ColValue    = "VALOR"
	ColService  = "SERVICO"
)

// headerMarkers identify the row where real data begins, in both the spaced
// and the underscored spelling found across source files.
var headerMarkers = []string{"GRUPO ECONÔMICO", "GRUPO_ECON"}

// metadataPhrases mark footer/banner rows interleaved with the data grid.
var metadataPhrases = []string{
	"SERVIÇO:",
	"PERÍODO:",
	"FONTE:",
	"PARA MAIORES INFORMAÇÕES",
	"ÍNDICE DE DESEMPENHO NO ATENDIMENTO",
	"ANATEL",
}

// identifierColumns is the fixed, case-sensitive set of identifier labels
// recognized after renaming.
var identifierColumns = map[string]struct{}{
	ColGroup:    {},
	ColVariable: {},
	ColOperator: {},
}

// periodRe matches a year-month label, including labels that continue into a
// full timestamp.
var periodRe = regexp.MustCompile(`^\d{4}-\d{2}`)

// timestampRe matches a full timestamp label that should be shortened to
// year-month before classification.
var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// LocateHeader returns the index of the first row whose concatenated
// non-empty cell text contains a header marker, case-insensitively. When no
// row matches it returns 0, treating the whole table as already headered.
func LocateHeader(t table.Table) int {
	for i := range t.Rows {
		text := strings.ToUpper(t.RowText(i))
		for _, marker := range headerMarkers {
			if strings.Contains(text, marker) {
				return i
			}
		}
	}
	return 0
}

// ExtractRegion promotes row h to column labels and returns the rows after
// it, with metadata and fully-empty rows removed. When h is 0 the table is
// returned as-is under the already-headered assumption. The result may be
// empty; callers decide whether to skip the resource.
func ExtractRegion(t table.Table, h int) table.Table {
	if h <= 0 || h >= len(t.Rows) {
		return t.Clone()
	}

	labels := make([]string, len(t.Columns))
	for j := range labels {
		labels[j] = strings.TrimSpace(t.Rows[h][j])
	}

	out := table.New(labels)
	for i := h + 1; i < len(t.Rows); i++ {
		row := t.Rows[i]
		if isMetadataRow(row) || isEmptyRow(row) {
			continue
		}
		out.AppendRow(row)
	}
	return out
}

// isMetadataRow reports whether any cell contains a metadata phrase,
// case-insensitively.
func isMetadataRow(row []string) bool {
	for _, cell := range row {
		u := strings.ToUpper(cell)
		for _, phrase := range metadataPhrases {
			if strings.Contains(u, phrase) {
				return true
			}
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// RenameIdentifiers relabels the first two columns to the canonical group
// and variable names. Tables with fewer than two columns are returned
// unchanged.
func RenameIdentifiers(t table.Table) table.Table {
	if len(t.Columns) < 2 {
		return t
	}
	return t.RenameColumnAt(0, ColGroup).RenameColumnAt(1, ColVariable)
}

// NormalizeDateColumns relabels full-timestamp columns to their year-month
// form ("2013-01-01 00:00:00" -> "2013-01"). Labels already in year-month
// form, and labels that fail to parse, are kept unchanged.
func NormalizeDateColumns(t table.Table) table.Table {
	out := t.Clone()
	for i, label := range out.Columns {
		if !timestampRe.MatchString(label) {
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04:05", label)
		if err != nil {
			continue
		}
		out.Columns[i] = ts.Format("2006-01")
	}
	return out
}

// ClassifyColumns partitions the table's column labels into identifier and
// period columns, preserving column order. Labels in neither set are
// ignored.
func ClassifyColumns(t table.Table) (idCols, periodCols []string) {
	for _, label := range t.Columns {
		if _, ok := identifierColumns[label]; ok {
			idCols = append(idCols, label)
			continue
		}
		if periodRe.MatchString(label) {
			periodCols = append(periodCols, label)
		}
	}
	return idCols, periodCols
}

// TrimDecimalCells applies decimal-trim normalization to every cell outside
// the identifier and period-label columns.
func TrimDecimalCells(t table.Table) table.Table {
	out := t.Clone()
	for j, label := range out.Columns {
		if _, ok := identifierColumns[label]; ok {
			continue
		}
		if periodRe.MatchString(label) {
			continue
		}
		for _, row := range out.Rows {
			row[j] = numfmt.TrimDecimal(row[j])
		}
	}
	return out
}

// PeriodValue converts a period column label into the canonical date cell
// for the observation table. Labels that do not parse as year-month yield
// the empty string rather than an error.
func PeriodValue(label string) string {
	m := periodRe.FindString(label)
	if m == "" {
		return ""
	}
	ts, err := time.Parse("2006-01", m)
	if err != nil {
		return ""
	}
	return ts.Format("2006-01-02")
}

// Melt reshapes a wide region into long format: one output row per (input
// row, period column) pair, with columns idCols..., REFERENCIA_MES, VALOR.
// The value cell is coerced into canonical decimal text.
func Melt(t table.Table, idCols, periodCols []string) table.Table {
	cols := make([]string, 0, len(idCols)+2)
	cols = append(cols, idCols...)
	cols = append(cols, ColPeriod, ColValue)
	out := table.New(cols)

	idIdx := make([]int, len(idCols))
	for k, c := range idCols {
		idIdx[k] = t.ColumnIndex(c)
	}
	periodIdx := make([]int, len(periodCols))
	periodVals := make([]string, len(periodCols))
	for k, c := range periodCols {
		periodIdx[k] = t.ColumnIndex(c)
		periodVals[k] = PeriodValue(c)
	}

	// Column-major emission: all rows for the first period column, then the
	// next, preserving the historical row order of the published dataset.
	for k, j := range periodIdx {
		for _, row := range t.Rows {
			cells := make([]string, 0, len(cols))
			for _, ji := range idIdx {
				if ji >= 0 {
					cells = append(cells, row[ji])
				} else {
					cells = append(cells, "")
				}
			}
			cells = append(cells, periodVals[k], numfmt.CoerceValue(row[j]))
			out.AppendRow(cells)
		}
	}
	return out
}
