package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ibitrepair/workshop/internal/config"
	"github.com/ibitrepair/workshop/internal/models"
)

// Doc is what we index for both parts and miner models: a flat record with a
// kind discriminator so one index serves the whole inventory search box.
type Doc struct {
	Kind     string  `json:"kind"` // "part" or "model"
	RefID    uint    `json:"refId"`
	Name     string  `json:"name"`
	Code     string  `json:"code,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Supplier string  `json:"supplier,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

type Client struct {
	ES    *elasticsearch.Client
	Index string
}

// NewClient connects to Elasticsearch and verifies the cluster is reachable.
func NewClient(cfg config.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return &Client{ES: es, Index: cfg.ESIndex}, nil
}

// IndexPart upserts the search document for one part. Nil client is a no-op.
func (c *Client) IndexPart(ctx context.Context, p *models.Part) error {
	if c == nil {
		return nil
	}
	return c.index(ctx, "part-"+strconv.FormatUint(uint64(p.ID), 10), Doc{
		Kind:     "part",
		RefID:    p.ID,
		Name:     p.PartName,
		Code:     p.PartCode,
		Supplier: p.Supplier,
		Price:    p.Price,
	})
}

// IndexMinerModel upserts the search document for one miner model.
func (c *Client) IndexMinerModel(ctx context.Context, m *models.MinerModel, brandName string) error {
	if c == nil {
		return nil
	}
	return c.index(ctx, "model-"+strconv.FormatUint(uint64(m.ID), 10), Doc{
		Kind:  "model",
		RefID: m.ID,
		Name:  m.ModelName,
		Brand: brandName,
	})
}

func (c *Client) DeleteDoc(ctx context.Context, kind string, refID uint) error {
	if c == nil {
		return nil
	}
	res, err := c.ES.Delete(c.Index, kind+"-"+strconv.FormatUint(uint64(refID), 10),
		c.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

func (c *Client) index(ctx context.Context, docID string, doc Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.ES.Index(c.Index, bytes.NewReader(data),
		c.ES.Index.WithDocumentID(docID),
		c.ES.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", docID, res.Status())
	}
	return nil
}

// Search runs a fuzzy multi-match over names, codes and brands.
func (c *Client) Search(ctx context.Context, query string, from, size int) (int64, []Doc, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "code", "brand", "supplier"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(c.Index),
		c.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
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
				Source Doc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]Doc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
