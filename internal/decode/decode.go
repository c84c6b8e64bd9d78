// Package decode turns a resource's raw bytes into a headerless table.Table.
//
// Two decoders cover the portal's formats: a spreadsheet reader (excelize)
// and a tab-delimited text reader with an ordered text-encoding fallback for
// the mixed UTF-8 / Latin-1 / Windows-1252 files the portal publishes.
// Decode failure is a resource-level condition; callers skip the resource
// rather than aborting the batch.
package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// Kind identifies which decoder applies to a resource.
type Kind int

const (
	KindUnsupported Kind = iota
	KindSpreadsheet
	KindDelimited
)

// DetectKind picks a decoder from the resource's declared format and URL,
// both checked case-insensitively. Spreadsheet wins when both match, mirroring
// the portal's habit of declaring "ODS" on links that end in .ods.
func DetectKind(format, url string) Kind {
	f := strings.ToUpper(format)
	u := strings.ToUpper(url)
	switch {
	case strings.Contains(f, "ODS") || strings.Contains(u, ".ODS") ||
		strings.Contains(f, "XLSX") || strings.Contains(u, ".XLSX"):
		return KindSpreadsheet
	case strings.Contains(f, "CSV") || strings.Contains(u, ".CSV"):
		return KindDelimited
	default:
		return KindUnsupported
	}
}

// Decode dispatches to the decoder selected by DetectKind.
func Decode(raw []byte, format, url string) (table.Table, error) {
	switch DetectKind(format, url) {
	case KindSpreadsheet:
		return Spreadsheet(raw)
	case KindDelimited:
		return DelimitedText(raw)
	default:
		return table.Table{}, fmt.Errorf("decode: unsupported format %q (%s)", format, url)
	}
}

// Spreadsheet decodes spreadsheet bytes into a headerless table using the
// first sheet of the workbook. All cells are read as display text.
func Spreadsheet(raw []byte) (table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return table.Table{}, fmt.Errorf("decode: open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, fmt.Errorf("decode: spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, fmt.Errorf("decode: read sheet %q: %w", sheets[0], err)
	}
	return table.FromRows(rows), nil
}

// textEncoding pairs a name with a charmap decoder; a nil decoder means the
// bytes are used as-is after UTF-8 validation.
type textEncoding struct {
	name string
	enc  encoding.Encoding
}

// encodings is the fixed, ordered fallback list tried by DelimitedText.
var encodings = []textEncoding{
	{name: "utf-8", enc: nil},
	{name: "latin-1", enc: charmap.ISO8859_1},
	{name: "windows-1252", enc: charmap.Windows1252},
}

// DelimitedText decodes tab-delimited text bytes into a headerless table. It
// tries each known encoding in order; the first one that both decodes and
// parses wins. Exhausting the list is an error (the caller skips the
// resource).
func DelimitedText(raw []byte) (table.Table, error) {
	var lastErr error
	for _, te := range encodings {
		text, err := decodeBytes(raw, te)
		if err != nil {
			lastErr = err
			continue
		}
		rows, err := parseTabDelimited(text)
		if err != nil {
			lastErr = fmt.Errorf("decode: parse as %s: %w", te.name, err)
			continue
		}
		return table.FromRows(rows), nil
	}
	return table.Table{}, fmt.Errorf("decode: no encoding produced parseable text: %w", lastErr)
}

// decodeBytes turns raw bytes into a string under the given encoding. The
// UTF-8 entry validates rather than transforms, so malformed input falls
// through to the single-byte encodings.
func decodeBytes(raw []byte, te textEncoding) (string, error) {
	if te.enc == nil {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("decode: input is not valid UTF-8")
		}
		return string(raw), nil
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), te.enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode: %s: %w", te.name, err)
	}
	return string(out), nil
}

// parseTabDelimited reads all rows leniently: variable field counts and
// stray quotes are tolerated, since width is squared up by table.FromRows.
func parseTabDelimited(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
