package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kendall-kelly/bakery-api/cart"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
)

// QuoteLine is one requested cart line. Products are looked up in the live
// catalog so clients cannot set prices.
type QuoteLine struct {
	ProductID      string   `json:"productId"`
	Quantity       int      `json:"quantity"`
	SelectedBreads []string `json:"selectedBreads"`
	Cut            bool     `json:"cut"`
}

// CartQuote is the cart the engine accepted for a list of lines
type CartQuote struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
	Warnings   []string          `json:"warnings"`
}

// Quote replays lines through the cart engine and reports what was kept.
// A line that would take the cart past cart.MaxItems is rejected whole.
// Rejected lines become warnings, not errors.
func (s *ProductService) Quote(ctx context.Context, lines []QuoteLine) (*CartQuote, error) {
	c := cart.New()
	warnings := []string{}
	var sliced []QuoteLine

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}

		product, err := s.GetProduct(ctx, line.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			warnings = append(warnings, fmt.Sprintf("product %q not found", line.ProductID))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !product.InStock {
			warnings = append(warnings, fmt.Sprintf("%s is out of stock", product.Name))
			continue
		}

		if c.TotalItems()+line.Quantity > cart.MaxItems {
			warnings = appendWarning(warnings, cart.ErrCartLimit.Error())
			continue
		}

		added := 0
		for added < line.Quantity {
			if err := c.Add(*product, line.SelectedBreads...); err != nil {
				warnings = appendWarning(warnings, err.Error())
				break
			}
			added++
		}
		if added > 0 && line.Cut {
			sliced = append(sliced, line)
		}
	}

	for _, item := range c.Items() {
		if item.Cut || !wantsCut(sliced, item) {
			continue
		}
		if err := c.ToggleCut(item.Product.ID, item.SelectedBreads...); err != nil {
			return nil, fmt.Errorf("failed to slice %s: %w", item.Product.ID, err)
		}
	}

	items := c.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartQuote{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Warnings:   warnings,
	}, nil
}

func wantsCut(lines []QuoteLine, item models.CartItem) bool {
	for _, line := range lines {
		if line.ProductID == item.Product.ID && breadKey(line.SelectedBreads) == breadKey(item.SelectedBreads) {
			return true
		}
	}
	return false
}

func breadKey(breads []string) string {
	sorted := slices.Clone(breads)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}

func appendWarning(warnings []string, warning string) []string {
	if slices.Contains(warnings, warning) {
		return warnings
	}
	return append(warnings, warning)
}
