// internal/pipeline/pipeline_test.go
//
// End-to-end coverage for the per-resource transform:
//   - Full path: banner + header + metadata rows in, long observations out.
//   - Wide fallback when no period columns are recognizable.
//   - Empty region detection.
//   - Decoding a tab-delimited payload straight from bytes.

package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Giomelox/Be-Analytic-ETL/internal/catalog"
	"github.com/Giomelox/Be-Analytic-ETL/internal/reshape"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

func TestReshape_EndToEnd(t *testing.T) {
	t.Parallel()

	in := table.FromRows([][]string{
		{"ÍNDICE DE DESEMPENHO NO ATENDIMENTO - SMP"},
		{"GRUPO ECONÔMICO", "VARIÁVEL", "2015-01", "2015-02"},
		{"ALGAR", "Taxa de Resolvidas", "95,50", "96,00"},
		{"FONTE: ANATEL"},
		{"VIVO", "Taxa de Resolvidas", "1.234,56", ""},
	})

	got, err := Reshape(in, "SMP")
	if err != nil {
		t.Fatalf("Reshape error: %v", err)
	}

	wantCols := []string{
		reshape.ColGroup, reshape.ColVariable,
		reshape.ColPeriod, reshape.ColValue, reshape.ColService,
	}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}

	wantRows := [][]string{
		{"ALGAR", "Taxa de Resolvidas", "2015-01-01", "95.50", "SMP"},
		{"VIVO", "Taxa de Resolvidas", "2015-01-01", "1234.56", "SMP"},
		{"ALGAR", "Taxa de Resolvidas", "2015-02-01", "96.00", "SMP"},
		{"VIVO", "Taxa de Resolvidas", "2015-02-01", "", "SMP"},
	}
	if !reflect.DeepEqual(got.Rows, wantRows) {
		t.Fatalf("rows = %v, want %v", got.Rows, wantRows)
	}
}

func TestReshape_WideFallback(t *testing.T) {
	t.Parallel()

	// Header present but no month-labeled columns: the cleaned region passes
	// through wide, tagged with the service column.
	in := table.FromRows([][]string{
		{"GRUPO ECONÔMICO", "VARIÁVEL", "Total"},
		{"ALGAR", "Reclamações", "12"},
	})

	got, err := Reshape(in, "SCM")
	if err != nil {
		t.Fatalf("Reshape error: %v", err)
	}

	wantCols := []string{reshape.ColGroup, reshape.ColVariable, "Total", reshape.ColService}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}
	wantRows := [][]string{{"ALGAR", "Reclamações", "12", "SCM"}}
	if !reflect.DeepEqual(got.Rows, wantRows) {
		t.Fatalf("rows = %v, want %v", got.Rows, wantRows)
	}
}

func TestReshape_EmptyRegion(t *testing.T) {
	t.Parallel()

	in := table.FromRows([][]string{
		{"ÍNDICE DE DESEMPENHO NO ATENDIMENTO - STFC"},
		{"GRUPO ECONÔMICO", "VARIÁVEL", "2015-01"},
		{"FONTE: ANATEL"},
		{"", "", ""},
	})

	_, err := Reshape(in, "STFC")
	if !errors.Is(err, ErrEmptyRegion) {
		t.Fatalf("err = %v, want ErrEmptyRegion", err)
	}
}

func TestTransform_DelimitedResource(t *testing.T) {
	t.Parallel()

	raw := []byte("ÍNDICE DE DESEMPENHO NO ATENDIMENTO - SMP\n" +
		"GRUPO ECONÔMICO\tVARIÁVEL\t2015-01\n" +
		"ALGAR\tResolvidas em 5 dias\t95,50\n")

	res := catalog.Resource{
		URL:     "https://example.com/ida_smp_2015.csv",
		Title:   "IDA SMP 2015",
		Format:  "CSV",
		Service: "SMP",
	}

	got, err := Transform(raw, res)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	wantRows := [][]string{
		{"ALGAR", "Resolvidas em 5 dias", "2015-01-01", "95.50", "SMP"},
	}
	if !reflect.DeepEqual(got.Rows, wantRows) {
		t.Fatalf("rows = %v, want %v", got.Rows, wantRows)
	}
}

func TestTransform_DecodeFailure(t *testing.T) {
	t.Parallel()

	res := catalog.Resource{
		URL:    "https://example.com/ida_smp_2015.ods",
		Title:  "IDA SMP 2015",
		Format: "ODS",
	}

	if _, err := Transform([]byte("not a spreadsheet"), res); err == nil {
		t.Fatalf("expected decode error for corrupt spreadsheet bytes")
	}
}
