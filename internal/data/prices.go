// Package data adapts the external collaborators of a comparison run: price
// sources and the project store.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"gopkg.in/yaml.v3"
)

// StaticResolver serves the same table for every project.
type StaticResolver struct {
	Prices model.MarketPriceTable
}

// NewStaticResolver overlays prices onto the reference table.
func NewStaticResolver(prices model.MarketPriceTable) *StaticResolver {
	return &StaticResolver{Prices: model.ReferencePrices().Merge(prices)}
}

func (r *StaticResolver) ResolvePrices(_ context.Context, _ int64) (model.MarketPriceTable, error) {
	return r.Prices.Clone(), nil
}

// priceFile is the on-disk shape of a price file. Both a top-level "prices"
// mapping and a flat mapping are accepted.
type priceFile struct {
	Prices model.MarketPriceTable `json:"prices" yaml:"prices"`
}

// LoadPriceFile reads a price table from a .json or .yaml/.yml file.
func LoadPriceFile(path string) (model.MarketPriceTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price file: %w", err)
	}

	var wrapped priceFile
	var flat model.MarketPriceTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse price file: %w", err)
		}
		if wrapped.Prices == nil {
			if err := json.Unmarshal(raw, &flat); err != nil {
				return nil, fmt.Errorf("failed to parse price file: %w", err)
			}
		}
	default:
		if err := yaml.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse price file: %w", err)
		}
		if wrapped.Prices == nil {
			if err := yaml.Unmarshal(raw, &flat); err != nil {
				return nil, fmt.Errorf("failed to parse price file: %w", err)
			}
		}
	}
	if wrapped.Prices != nil {
		return wrapped.Prices, nil
	}
	if flat == nil {
		flat = model.MarketPriceTable{}
	}
	return flat, nil
}

// FileResolver reads its table from disk on every call. Entries missing from
// the file fall back to the reference prices.
type FileResolver struct {
	Path string
}

func (r *FileResolver) ResolvePrices(_ context.Context, _ int64) (model.MarketPriceTable, error) {
	prices, err := LoadPriceFile(r.Path)
	if err != nil {
		return nil, err
	}
	return model.ReferencePrices().Merge(prices), nil
}
