package ddl

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// TestBuildCreateTableSQL verifies statement rendering and the error paths
// for incomplete definitions.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         TableDef
		wantSQL     string
		wantErr     bool
		errContains string
	}{
		{
			name:        "empty FQN returns error",
			def:         TableDef{Columns: []ColumnDef{{Name: "id", SQLType: "INTEGER"}}},
			wantErr:     true,
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns returns error",
			def:         TableDef{FQN: "public.t"},
			wantErr:     true,
			errContains: "at least one column is required",
		},
		{
			name: "column with empty name returns error",
			def: TableDef{
				FQN:     "t",
				Columns: []ColumnDef{{SQLType: "INTEGER"}},
			},
			wantErr:     true,
			errContains: "column with empty name",
		},
		{
			name: "column with empty type returns error",
			def: TableDef{
				FQN:     "t",
				Columns: []ColumnDef{{Name: "id"}},
			},
			wantErr:     true,
			errContains: "missing SQLType",
		},
		{
			name: "primary key and nullability render",
			def: TableDef{
				FQN: "public.dados_ida",
				Columns: []ColumnDef{
					{Name: "id", SQLType: "INTEGER", PrimaryKey: true},
					{Name: "valor", SQLType: "DOUBLE PRECISION", Nullable: true},
				},
			},
			wantSQL: "CREATE TABLE public.dados_ida (\n" +
				"  id INTEGER NOT NULL,\n" +
				"  valor DOUBLE PRECISION,\n" +
				"  PRIMARY KEY (id)\n" +
				");",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildCreateTableSQL(tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got SQL %q", got)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildCreateTableSQL error: %v", err)
			}
			if got != tt.wantSQL {
				t.Fatalf("sql = %q, want %q", got, tt.wantSQL)
			}
		})
	}
}

// TestInferColumnKind exercises the value-domain fallback inference.
func TestInferColumnKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"all empty is text", []string{"", "  ", ""}, "text"},
		{"integers", []string{"1", "42", ""}, "bigint"},
		{"booleans", []string{"true", "F", "false"}, "boolean"},
		{"reals", []string{"1.5", "2", "3.25"}, "real"},
		{"dates", []string{"2015-01-01", "2015-02-01"}, "date"},
		{"timestamps win over dates", []string{"2015-01-01", "2015-01-01 10:00:00"}, "timestamp"},
		{"mixed falls back to text", []string{"1", "abc"}, "text"},
	}

	for _, tt := range tests {
		if got := InferColumnKind(tt.values); got != tt.want {
			t.Errorf("%s: InferColumnKind(%v) = %q, want %q", tt.name, tt.values, got, tt.want)
		}
	}
}

// TestFromTable verifies the fixed name map, the primary key flag, and the
// inference fallback for extra columns.
func TestFromTable(t *testing.T) {
	t.Parallel()

	in := table.New([]string{"id", "grupo_economico", "mes_referencia", "valor", "extra"})
	in.AppendRow([]string{"1", "ALGAR", "2015-01-01", "95.5", "7"})
	in.AppendRow([]string{"2", "VIVO", "2015-02-01", "96", "9"})

	got := FromTable(in, "public.dados_ida")

	want := TableDef{
		FQN: "public.dados_ida",
		Columns: []ColumnDef{
			{Name: "id", SQLType: "integer", Nullable: false, PrimaryKey: true},
			{Name: "grupo_economico", SQLType: "text", Nullable: true},
			{Name: "mes_referencia", SQLType: "date", Nullable: true},
			{Name: "valor", SQLType: "real", Nullable: true},
			{Name: "extra", SQLType: "bigint", Nullable: true},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromTable = %+v, want %+v", got, want)
	}
}
