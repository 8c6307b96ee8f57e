// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reruns/internal/config"
	"github.com/tomtom215/reruns/internal/models"
)

// Cinemeta is the primary series metadata provider.
type Cinemeta struct {
	client *httpClient
}

// NewCinemeta creates a Cinemeta client from provider configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCinemeta(cfg *config.ProviderConfig, logger zerolog.Logger) *Cinemeta {
	return &Cinemeta{client: newHTTPClient("cinemeta", cfg, logger)}
}

// CircuitState reports the provider's circuit breaker state.
func (c *Cinemeta) CircuitState() string {
	return c.client.breaker.State()
}

type metaResponse struct {
	Meta *models.SeriesMeta `json:"meta"`
}

type catalogResponse struct {
	Metas []models.SearchResult `json:"metas"`
}

// SeriesMeta fetches the series record for showID. An unknown show, or an
// empty record, yields nil with a nil error.
func (c *Cinemeta) SeriesMeta(ctx context.Context, showID string) (*models.SeriesMeta, error) {
	showID = strings.TrimSpace(showID)
	if showID == "" {
		return nil, nil
	}

	var resp metaResponse
	err := c.client.getJSON(ctx, "/meta/series/"+url.PathEscape(showID)+".json", nil, &resp)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", showID, err)
	}

	if resp.Meta == nil || isEmptyMeta(resp.Meta) {
		return nil, nil
	}
	return resp.Meta, nil
}

// Search runs a catalog search and returns the results in provider order.
func (c *Cinemeta) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	var resp catalogResponse
	err := c.client.getJSON(ctx, "/catalog/series/top/search="+url.PathEscape(query)+".json", nil, &resp)
	if errors.Is(err, ErrNotFound) {
		return []models.SearchResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if resp.Metas == nil {
		return []models.SearchResult{}, nil
	}
	return resp.Metas, nil
}

func isEmptyMeta(m *models.SeriesMeta) bool {
	return m.ID == "" && m.Name == "" && len(m.Videos) == 0
}
