package ibge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// ErrNoStates signals an empty answer from the localidades API.
var ErrNoStates = errors.New("ibge: no states returned")

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads state names and boundaries from the IBGE data service.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	maxRetries int
	quality    string
}

// Config defines settings for the IBGE client.
type Config struct {
	BaseURL    string
	MaxRetries int
	Quality    string // minima, intermediaria, maxima
}

// New creates an IBGE client.
func New(httpClient HTTPClient, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://servicodados.ibge.gov.br/api"
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	quality := cfg.Quality
	if quality == "" {
		quality = "minima"
	}
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		maxRetries: maxRetries,
		quality:    quality,
	}
}

// BaseURL identifies the endpoint this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// State is one entry of /v1/localidades/estados.
type State struct {
	ID     int    `json:"id"`
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
	Regiao struct {
		ID    int    `json:"id"`
		Sigla string `json:"sigla"`
		Nome  string `json:"nome"`
	} `json:"regiao"`
}

// States lists the federation units with their region.
func (c *Client) States(ctx context.Context) ([]State, error) {
	body, err := c.get(ctx, "/v1/localidades/estados", url.Values{"orderBy": {"nome"}})
	if err != nil {
		return nil, err
	}
	var states []State
	if err := json.Unmarshal(bytes.TrimSpace(body), &states); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	return states, nil
}

// Mesh returns state boundaries keyed by IBGE state code ("codarea").
func (c *Client) Mesh(ctx context.Context) (map[string]geom.T, error) {
	params := url.Values{
		"formato":      {"application/vnd.geo+json"},
		"intrarregiao": {"UF"},
		"qualidade":    {c.quality},
	}
	body, err := c.get(ctx, "/v3/malhas/paises/BR", params)
	if err != nil {
		return nil, err
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}

	mesh := make(map[string]geom.T, len(fc.Features))
	for _, f := range fc.Features {
		code := fmt.Sprint(f.Properties["codarea"])
		if code == "" || code == "<nil>" || f.Geometry == nil {
			continue
		}
		mesh[code] = f.Geometry
	}
	return mesh, nil
}

// StateGeometries joins States and Mesh into geometry records.
// States without a boundary are skipped.
func (c *Client) StateGeometries(ctx context.Context) ([]model.StateGeometry, error) {
	states, err := c.States(ctx)
	if err != nil {
		return nil, err
	}
	mesh, err := c.Mesh(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.StateGeometry, 0, len(states))
	for _, s := range states {
		code := fmt.Sprint(s.ID)
		g, ok := mesh[code]
		if !ok {
			continue
		}
		out = append(out, model.StateGeometry{
			Name:     s.Nome,
			Region:   s.Regiao.Nome,
			Code:     code,
			Abbrev:   s.Sigla,
			Geometry: g,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ibge: no state matched the boundary mesh")
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request %s: %w", path, err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("read response: %w", readErr)
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		lastErr = fmt.Errorf("ibge status %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
		// Client errors will not improve on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, lastErr
		}
	}
	return nil, lastErr
}
