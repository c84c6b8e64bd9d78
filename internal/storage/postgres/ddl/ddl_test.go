package ddl

import (
	"strings"
	"testing"

	gddl "github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"integer", "INTEGER"},
		{"bigint", "BIGINT"},
		{"real", "DOUBLE PRECISION"},
		{"boolean", "BOOLEAN"},
		{"date", "DATE"},
		{"timestamp", "TIMESTAMPTZ"},
		{"text", "TEXT"},
		{"", "TEXT"},
		{"  Integer  ", "INTEGER"},
	}
	for _, tt := range tests {
		if got := MapType(tt.in); got != tt.want {
			t.Errorf("MapType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := MapDef(gddl.TableDef{
		FQN: "public.dados_ida",
		Columns: []gddl.ColumnDef{
			{Name: "id", SQLType: "integer", PrimaryKey: true},
			{Name: "grupo_economico", SQLType: "text", Nullable: true},
			{Name: "mes_referencia", SQLType: "date", Nullable: true},
			{Name: "valor", SQLType: "real", Nullable: true},
		},
	})

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL error: %v", err)
	}

	want := `CREATE TABLE "public"."dados_ida" (
  "id" INTEGER NOT NULL,
  "grupo_economico" TEXT,
  "mes_referencia" DATE,
  "valor" DOUBLE PRECISION,
  PRIMARY KEY ("id")
);`
	if got != want {
		t.Fatalf("sql = %q, want %q", got, want)
	}
}

func TestBuildCreateTableSQL_Errors(t *testing.T) {
	t.Parallel()

	if _, err := BuildCreateTableSQL(gddl.TableDef{FQN: "", Columns: []gddl.ColumnDef{{Name: "id", SQLType: "INTEGER"}}}); err == nil {
		t.Fatalf("expected error for empty FQN")
	}
	if _, err := BuildCreateTableSQL(gddl.TableDef{FQN: "t"}); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if _, err := BuildCreateTableSQL(gddl.TableDef{FQN: "t", Columns: []gddl.ColumnDef{{Name: "", SQLType: "TEXT"}}}); err == nil {
		t.Fatalf("expected error for empty column name")
	}
}

func TestBuildDropTableSQL(t *testing.T) {
	t.Parallel()

	got := BuildDropTableSQL("public.dados_ida")
	want := `DROP TABLE IF EXISTS "public"."dados_ida" CASCADE;`
	if got != want {
		t.Fatalf("drop sql = %q, want %q", got, want)
	}
}

func TestQuoteIdent_EscapesQuotes(t *testing.T) {
	t.Parallel()

	if got := QuoteIdent(`weird"name`); got != `"weird""name"` {
		t.Fatalf("QuoteIdent = %s", got)
	}
	if !strings.HasPrefix(QuoteFQN("a.b.c"), `"a".`) {
		t.Fatalf("QuoteFQN did not quote segments: %s", QuoteFQN("a.b.c"))
	}
}
