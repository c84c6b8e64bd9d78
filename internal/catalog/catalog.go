// Package catalog discovers IDA (Índice de Desempenho no Atendimento)
// resources on the dados.gov.br open-data portal.
//
// Discovery is a two step process: a dataset search by name resolves the
// dataset id, and the dataset detail endpoint lists the downloadable
// resources. Resource titles encode the telephony service (SCM, SMP, STFC)
// and usually a reference year.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/Giomelox/Be-Analytic-ETL/internal/datasource/httpds"
	"github.com/Giomelox/Be-Analytic-ETL/internal/decode"
)

const (
	// DefaultBaseURL is the public dados.gov.br API root.
	DefaultBaseURL = "https://dados.gov.br/dados/api/publico"

	// DefaultDatasetName is the catalog search term for the IDA dataset.
	DefaultDatasetName = "indice-desempenho-atendimento"

	// APIKeyHeader carries the portal API key on catalog requests.
	APIKeyHeader = "chave-api-dados-abertos"
)

// Resource is a downloadable file attached to a catalog dataset.
type Resource struct {
	URL     string
	Title   string
	Format  string
	Service string // SCM, SMP, STFC or OUTROS
	Year    int    // 0 when the title carries no year
}

// Client queries the open-data catalog API.
type Client struct {
	baseURL string
	http    *httpds.Client
}

// NewClient wires a catalog client on top of the shared HTTP datasource.
// baseURL falls back to DefaultBaseURL when empty.
func NewClient(baseURL string, hc *httpds.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type datasetSearchResult struct {
	ID json.Number `json:"id"`
}

type datasetDetail struct {
	Resources []resourceEntry `json:"recursos"`
}

type resourceEntry struct {
	Link   string `json:"link"`
	Title  string `json:"titulo"`
	Format string `json:"formato"`
}

// FindDatasetID searches the catalog by dataset name and returns the id of
// the first match. name falls back to DefaultDatasetName when empty.
func (c *Client) FindDatasetID(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = DefaultDatasetName
	}
	q := url.Values{}
	q.Set("nomeConjuntoDados", name)
	q.Set("dadosAbertos", "true")
	q.Set("isPrivado", "false")
	q.Set("pagina", "1")

	endpoint := c.baseURL + "/conjuntos-dados?" + q.Encode()
	body, err := c.http.GetBytes(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("catalog search: %w", err)
	}

	var results []datasetSearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("catalog search: decode response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("catalog search: no dataset named %q", name)
	}
	return results[0].ID.String(), nil
}

// ListResources fetches the dataset detail and returns every attached
// resource, with backslash URL separators repaired and service and year
// derived from the title.
func (c *Client) ListResources(ctx context.Context, datasetID string) ([]Resource, error) {
	endpoint := c.baseURL + "/conjuntos-dados/" + url.PathEscape(datasetID)
	body, err := c.http.GetBytes(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("catalog detail %s: %w", datasetID, err)
	}

	var detail datasetDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("catalog detail %s: decode response: %w", datasetID, err)
	}

	resources := make([]Resource, 0, len(detail.Resources))
	for _, r := range detail.Resources {
		resources = append(resources, Resource{
			URL:     RepairURL(r.Link),
			Title:   r.Title,
			Format:  r.Format,
			Service: ServiceLabel(r.Title),
			Year:    YearFromTitle(r.Title),
		})
	}
	return resources, nil
}

// serviceTokens are the telephony service acronyms recognized in titles.
var serviceTokens = []string{"SCM", "SMP", "STFC"}

// FilterRelevant keeps resources whose title names a known service and that
// have a decodable payload. Decodability is judged on the declared format and
// the link together; the portal leaves the format empty or MIME-styled on
// some entries, so the URL extension counts too.
func FilterRelevant(resources []Resource) []Resource {
	out := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if ServiceLabel(r.Title) == "OUTROS" {
			continue
		}
		if decode.DetectKind(r.Format, r.URL) == decode.KindUnsupported {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ServiceLabel extracts the service acronym from a resource title. Titles
// that name none of the known services map to OUTROS.
func ServiceLabel(title string) string {
	upper := strings.ToUpper(title)
	for _, tok := range serviceTokens {
		if strings.Contains(upper, tok) {
			return tok
		}
	}
	return "OUTROS"
}

var yearRe = regexp.MustCompile(`\d{4}`)

// YearFromTitle returns the first four-digit run in the title, or 0 when the
// title carries none.
func YearFromTitle(title string) int {
	m := yearRe.FindString(title)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

// RepairURL replaces backslash path separators with forward slashes. Some
// catalog entries publish Windows style links that HTTP clients reject.
func RepairURL(raw string) string {
	return strings.ReplaceAll(raw, `\`, "/")
}

// AuthHeaders builds the base headers for catalog requests from an API key.
// An empty key yields nil, which makes every request anonymous.
func AuthHeaders(apiKey string) http.Header {
	if apiKey == "" {
		return nil
	}
	h := http.Header{}
	h.Set(APIKeyHeader, apiKey)
	return h
}
