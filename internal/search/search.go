package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/soundhaven/musicstore/internal/transport"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: %s: %s", res.Status(), body)
	}

	return client, nil
}

// AlbumIndex maintains a full-text index of album listings. A nil
// *AlbumIndex disables search, keeping Elasticsearch optional.
type AlbumIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewAlbumIndex(es *elasticsearch.Client) *AlbumIndex {
	if es == nil {
		return nil
	}
	return &AlbumIndex{ES: es, Index: "albums"}
}

func (s *AlbumIndex) IndexAlbum(ctx context.Context, listing transport.AlbumListing) error {
	if s == nil {
		return nil
	}

	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("index album: marshal: %w", err)
	}

	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(data),
		s.ES.Index.WithDocumentID(listing.ID.String()),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index album: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index album: %s", res.Status())
	}
	return nil
}

func (s *AlbumIndex) Search(ctx context.Context, query string, from, size int) (int64, []transport.AlbumListing, error) {
	if s == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "artist", "genre"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source transport.AlbumListing `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	listings := make([]transport.AlbumListing, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		listings[i] = hit.Source
	}
	return r.Hits.Total.Value, listings, nil
}
