// Package cart holds the shopping cart rules: the unit cap, loaf box bread
// selections, the slicing add-on and price totals.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kendall-kelly/bakery-api/models"
)

const (
	// MaxItems caps the total number of units across all lines
	MaxItems = 4
	// CutSurcharge is charged per sliced unit
	CutSurcharge = 1.00
)

var (
	// ErrCartLimit is the warning shown when a change would pass MaxItems
	ErrCartLimit = fmt.Errorf("cart limit reached! You can only order up to %d items at a time", MaxItems)
	// ErrBreadSelection is returned when a loaf box gets the wrong number of breads
	ErrBreadSelection = errors.New("loaf box requires a complete bread selection")
	// ErrItemNotFound is returned when no line matches
	ErrItemNotFound = errors.New("item not in cart")
)

// Cart is an ordered list of lines
type Cart struct {
	items []models.CartItem
}

// New returns a cart holding copies of items
func New(items ...models.CartItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.items = append(c.items, cloneItem(item))
	}
	return c
}

// Load restores a cart saved with MarshalJSON
func Load(data []byte) (*Cart, error) {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return New(items...), nil
}

// MarshalJSON encodes the cart as its list of lines
func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []models.CartItem{}
	}
	return json.Marshal(items)
}

// Items returns a copy of the lines
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, cloneItem(item))
	}
	return out
}

// TotalItems returns the number of units across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the price of the cart including slicing
func (c *Cart) TotalPrice() float64 {
	return Total(c.items)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Add puts one unit of product in the cart. Loaf boxes need their full
// bread selection and merge only with a line holding the same breads in
// any order; other products merge by id.
func (c *Cart) Add(product models.Product, selectedBreads ...string) error {
	if c.TotalItems()+1 > MaxItems {
		return ErrCartLimit
	}

	if product.IsLoafBox() {
		if len(selectedBreads) != product.BreadSelectionSize() {
			return fmt.Errorf("%w: %s needs %d breads, got %d",
				ErrBreadSelection, product.Name, product.BreadSelectionSize(), len(selectedBreads))
		}
		if i := c.indexOf(product.ID, selectedBreads); i >= 0 {
			c.items[i].Quantity++
			return nil
		}
		c.items = append(c.items, models.CartItem{
			Product:        product,
			Quantity:       1,
			SelectedBreads: slices.Clone(selectedBreads),
		})
		return nil
	}

	if i := c.indexOf(product.ID, nil); i >= 0 {
		c.items[i].Quantity++
		return nil
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: 1})
	return nil
}

// UpdateQuantity sets the quantity of the matching lines. Without a bread
// selection every line of the product is set. A quantity of zero or less
// removes the lines; an increase that would pass MaxItems is rejected.
func (c *Cart) UpdateQuantity(productID string, quantity int, selectedBreads ...string) error {
	if quantity <= 0 {
		c.Remove(productID, selectedBreads...)
		return nil
	}

	current, matched := 0, 0
	for _, item := range c.items {
		if c.matches(item, productID, selectedBreads) {
			current += item.Quantity
			matched++
		}
	}
	if matched == 0 {
		return ErrItemNotFound
	}

	delta := quantity*matched - current
	if delta > 0 && c.TotalItems()+delta > MaxItems {
		return ErrCartLimit
	}

	for i := range c.items {
		if c.matches(c.items[i], productID, selectedBreads) {
			c.items[i].Quantity = quantity
		}
	}
	return nil
}

// Remove drops the line with the given bread selection, or every line of
// the product when no selection is given
func (c *Cart) Remove(productID string, selectedBreads ...string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if !c.matches(item, productID, selectedBreads) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// ToggleCut flips slicing on the matching line. Loaf box lines only match
// when their bread selection is given.
func (c *Cart) ToggleCut(productID string, selectedBreads ...string) error {
	toggled := false
	for i := range c.items {
		item := &c.items[i]
		if item.Product.ID != productID {
			continue
		}
		if item.Product.IsLoafBox() && (len(selectedBreads) == 0 || !sameSelection(item.SelectedBreads, selectedBreads)) {
			continue
		}
		item.Cut = !item.Cut
		toggled = true
	}
	if !toggled {
		return ErrItemNotFound
	}
	return nil
}

// Total sums unit price times quantity plus the slicing surcharge for cut
// lines. Computed in cents so repeated additions do not drift.
func Total(items []models.CartItem) float64 {
	var cents int64
	for _, item := range items {
		unit := int64(math.Round(item.Product.Price * 100))
		if item.Cut {
			unit += int64(math.Round(CutSurcharge * 100))
		}
		cents += unit * int64(item.Quantity)
	}
	return float64(cents) / 100
}

func (c *Cart) indexOf(productID string, selectedBreads []string) int {
	for i, item := range c.items {
		if item.Product.ID != productID {
			continue
		}
		if selectedBreads == nil || sameSelection(item.SelectedBreads, selectedBreads) {
			return i
		}
	}
	return -1
}

func (c *Cart) matches(item models.CartItem, productID string, selectedBreads []string) bool {
	if item.Product.ID != productID {
		return false
	}
	return len(selectedBreads) == 0 || sameSelection(item.SelectedBreads, selectedBreads)
}

// sameSelection compares bread selections ignoring order
func sameSelection(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

func cloneItem(item models.CartItem) models.CartItem {
	item.SelectedBreads = slices.Clone(item.SelectedBreads)
	if item.Rating != nil {
		r := *item.Rating
		item.Rating = &r
	}
	return item
}
