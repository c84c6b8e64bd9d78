// Package pipeline turns one raw catalog resource into a normalized long
// table ready for consolidation.
//
// The stages mirror the shape of the published spreadsheets: locate the real
// header row below the title banner, cut away metadata rows, normalize
// identifier and period columns, then melt the monthly columns into
// (REFERENCIA_MES, VALOR) pairs tagged with the resource service.
package pipeline

import (
	"fmt"

	"github.com/Giomelox/Be-Analytic-ETL/internal/catalog"
	"github.com/Giomelox/Be-Analytic-ETL/internal/decode"
	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"
	"github.com/Giomelox/Be-Analytic-ETL/internal/reshape"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// ErrEmptyRegion marks a resource whose sheet had no usable data rows after
// the header and metadata rows were removed. Callers skip such resources.
var ErrEmptyRegion = fmt.Errorf("no data rows after header extraction")

// Transform decodes the raw resource payload and reshapes it into long form.
//
// When the sheet has no recognizable identifier or period columns the melt
// is skipped and the cleaned wide region is returned instead, still tagged
// with the service column so no data is silently lost.
func Transform(raw []byte, res catalog.Resource) (table.Table, error) {
	t, err := decode.Decode(raw, res.Format, res.URL)
	if err != nil {
		return table.Table{}, fmt.Errorf("decode %q: %w", res.Title, err)
	}
	return Reshape(t, res.Service)
}

// Reshape runs the header-to-long stages on an already decoded table.
func Reshape(t table.Table, service string) (table.Table, error) {
	header := reshape.LocateHeader(t)
	region := reshape.ExtractRegion(t, header)
	if region.NumRows() == 0 {
		return table.Table{}, ErrEmptyRegion
	}

	region = reshape.RenameIdentifiers(region)
	region = reshape.TrimDecimalCells(region)
	region = reshape.NormalizeDateColumns(region)

	idCols, periodCols := reshape.ClassifyColumns(region)
	if len(idCols) == 0 || len(periodCols) == 0 {
		// Wide fallback: tag and pass through.
		metrics.RecordResource(service, "wide_fallback")
		return region.AppendConstColumn(reshape.ColService, service), nil
	}

	long := reshape.Melt(region, idCols, periodCols)
	long = long.AppendConstColumn(reshape.ColService, service)
	metrics.RecordRows("reshaped", long.NumRows())
	return long, nil
}
