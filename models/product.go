package models

// LoafType marks a product as a loaf box that requires a bread selection
type LoafType string

const (
	LoafTypeMini LoafType = "mini"
	LoafTypeHalf LoafType = "half"
)

// Allergens flags the common allergens a product contains
type Allergens struct {
	Wheat bool `json:"wheat,omitempty" yaml:"wheat"`
	Dairy bool `json:"dairy,omitempty" yaml:"dairy"`
	Egg   bool `json:"egg,omitempty" yaml:"egg"`
}

// Product represents an item in the bakery catalog
type Product struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Price       float64    `json:"price" yaml:"price"`
	Image       string     `json:"image" yaml:"image"`
	Category    string     `json:"category" yaml:"category"`
	InStock     bool       `json:"inStock" yaml:"inStock"`
	Ingredients string     `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	LoafType    LoafType   `json:"loafType,omitempty" yaml:"loafType,omitempty"` // mini or half, empty for regular products
	Allergens   *Allergens `json:"allergens,omitempty" yaml:"allergens,omitempty"`
}

// IsLoafBox reports whether the product requires a bread selection
func (p Product) IsLoafBox() bool {
	return p.BreadSelectionSize() > 0
}

// BreadSelectionSize returns how many breads must be picked for a loaf box.
// Regular products return 0.
func (p Product) BreadSelectionSize() int {
	switch p.LoafType {
	case LoafTypeMini:
		return 4
	case LoafTypeHalf:
		return 2
	default:
		return 0
	}
}

// ValidLoafType reports whether t is empty or a known loaf box designator
func ValidLoafType(t LoafType) bool {
	return t == "" || t == LoafTypeMini || t == LoafTypeHalf
}
