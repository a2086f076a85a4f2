// Package seed provides the default catalog shipped with the service.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/kendall-kelly/bakery-api/models"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var productsYAML []byte

// DefaultProducts returns a fresh copy of the default catalog
func DefaultProducts() ([]models.Product, error) {
	return ParseProducts(productsYAML)
}

// ParseProducts decodes a YAML product list and checks every entry
func ParseProducts(data []byte) ([]models.Product, error) {
	var products []models.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode product catalog: %w", err)
	}

	seen := make(map[string]bool, len(products))
	for i, p := range products {
		switch {
		case p.ID == "" || p.Name == "":
			return nil, fmt.Errorf("product %d: id and name are required", i)
		case seen[p.ID]:
			return nil, fmt.Errorf("product %d: duplicate id %q", i, p.ID)
		case p.Price < 0:
			return nil, fmt.Errorf("product %q: price must not be negative", p.ID)
		case !models.ValidLoafType(p.LoafType):
			return nil, fmt.Errorf("product %q: unknown loafType %q", p.ID, p.LoafType)
		}
		seen[p.ID] = true
	}
	return products, nil
}

// ProductWriter is the part of the product repository the seeder needs
type ProductWriter interface {
	List(ctx context.Context) ([]models.Product, error)
	ReplaceAll(ctx context.Context, items []models.Product) error
}

// Apply writes products into an empty catalog. With force an existing
// catalog is overwritten. Returns the number of products written.
func Apply(ctx context.Context, repo ProductWriter, products []models.Product, force bool) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(existing) > 0 && !force {
		return 0, nil
	}

	if err := repo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to write catalog: %w", err)
	}
	return len(products), nil
}
