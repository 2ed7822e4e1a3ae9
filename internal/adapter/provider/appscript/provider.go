// Package appscript fetches raw sheet rows from the Google Apps Script web
// app that fronts the pokédex spreadsheet.
package appscript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/shima-pokedex/internal/app/pokedex/sheet"
)

const (
	defaultTimeout = 30 * time.Second

	// ActionPokemon selects the pokédex sheet, the only layout the
	// transformer understands.
	ActionPokemon = "pokemon"
)

// Provider issues GET {baseURL}?action=... and decodes an array of arrays.
// It does not retry: a failed fetch is reported to the caller.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. A non-positive timeout uses 30s.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "appscript"),
	}
}

// FetchRows fetches every row the web app returns for action.
func (p *Provider) FetchRows(ctx context.Context, action string) ([]sheet.RawRow, error) {
	reqURL, err := p.requestURL(action)
	if err != nil {
		return nil, fmt.Errorf("appscript: build url: %w", err)
	}

	p.log.DebugContext(ctx, "appscript request", slog.String("action", action))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("appscript: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "appscript request failed", slog.String("action", action), slog.String("error", err.Error()))
		return nil, fmt.Errorf("appscript: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("appscript: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("appscript: read body: %w", err)
	}

	rows, err := decodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("appscript: decode json: %w", err)
	}

	p.log.InfoContext(ctx, "appscript response",
		slog.String("action", action),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)),
	)

	return rows, nil
}

func (p *Provider) requestURL(action string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeRows keeps numbers as json.Number so integer cells are not routed
// through float64. A JSON null decodes to no rows.
func decodeRows(body []byte) ([]sheet.RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rows []sheet.RawRow
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after rows")
	}
	return rows, nil
}
