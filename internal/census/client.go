package census

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"uofstats/internal/config"
)

// Parish holds the fetched 16+ population per race for one parish.
type Parish struct {
	Name   string         // cleaned name, e.g. "Acadia"
	State  string         // state FIPS
	County string         // county FIPS
	Counts map[string]int // keyed by group key: black, white, ...
}

// Client queries the Census API for ACS demographics.
type Client struct {
	base    string
	vintage string
	dataset string
	state   string
	key     string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a Census API client from config. The key may be empty for
// low request volumes; the API only enforces keys past a daily quota.
func NewClient(cfg config.CensusConfig, key string, log *zap.Logger) *Client {
	return &Client{
		base:    cfg.BaseURL,
		vintage: cfg.Vintage,
		dataset: cfg.Dataset,
		state:   cfg.StateFIPS,
		key:     key,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

// FetchParishes pulls 16+ population by race for every parish in the state,
// one API call per race table.
func (c *Client) FetchParishes(ctx context.Context) ([]Parish, error) {
	byCounty := make(map[string]*Parish)

	for _, g := range groups {
		c.log.Info("fetching census race table",
			zap.String("race", g.key),
			zap.String("table", "B01001"+g.table))

		rows, err := c.fetchGroup(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("census fetch for %s failed: %w", g.key, err)
		}

		for county, row := range rows {
			p, ok := byCounty[county]
			if !ok {
				p = &Parish{
					Name:   row.name,
					State:  row.state,
					County: county,
					Counts: make(map[string]int, len(groups)),
				}
				byCounty[county] = p
			}
			p.Counts[g.key] = row.total
		}
	}

	parishes := make([]Parish, 0, len(byCounty))
	for _, p := range byCounty {
		parishes = append(parishes, *p)
	}
	c.log.Info("retrieved parish demographics", zap.Int("parishes", len(parishes)))
	return parishes, nil
}

type groupRow struct {
	name  string
	state string
	total int
}

// fetchGroup retrieves one race table for all counties and sums the 16+ age
// bands per county.
func (c *Client) fetchGroup(ctx context.Context, g group) (map[string]groupRow, error) {
	vars := g.variables()

	q := url.Values{}
	q.Set("get", "NAME,"+strings.Join(vars, ","))
	q.Set("for", "county:*")
	q.Set("in", "state:"+c.state)
	if c.key != "" {
		q.Set("key", c.key)
	}
	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.base, c.vintage, c.dataset, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("census API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	// The API returns a JSON array of arrays: first row is the header, then
	// one row per county. Estimates come back as strings; missing values as
	// null.
	var raw [][]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("response has no data rows")
	}

	header := raw[0]
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if s, ok := h.(string); ok {
			idx[s] = i
		}
	}
	for _, required := range []string{"NAME", "state", "county"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("response missing %s column", required)
		}
	}

	rows := make(map[string]groupRow, len(raw)-1)
	for _, record := range raw[1:] {
		get := func(col string) any {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return nil
			}
			return record[i]
		}

		total := 0
		for _, v := range vars {
			total += coerceInt(get(v))
		}
		county, _ := get("county").(string)
		state, _ := get("state").(string)
		name, _ := get("NAME").(string)
		rows[county] = groupRow{
			name:  cleanParishName(name),
			state: state,
			total: total,
		}
	}
	return rows, nil
}

// coerceInt converts an API cell to an int, treating nulls and junk as zero
// the way the original analysis coerced non-numeric estimates.
func coerceInt(v any) int {
	switch x := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int(x)
	default:
		return 0
	}
}

func cleanParishName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, " Parish, Louisiana", ""))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
