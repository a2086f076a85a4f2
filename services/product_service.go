package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
)

// ProductInput is the payload for a new catalog product
type ProductInput struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Price       *float64          `json:"price" binding:"required,gte=0"`
	Image       string            `json:"image"`
	Category    string            `json:"category" binding:"required"`
	InStock     *bool             `json:"inStock"`
	Ingredients string            `json:"ingredients"`
	LoafType    models.LoafType   `json:"loafType" binding:"omitempty,oneof=mini half"`
	Allergens   *models.Allergens `json:"allergens"`
}

// ProductPatch lists the product fields that may change. Nil fields are kept.
type ProductPatch struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Image       *string           `json:"image"`
	Category    *string           `json:"category"`
	InStock     *bool             `json:"inStock"`
	Ingredients *string           `json:"ingredients"`
	LoafType    *models.LoafType  `json:"loafType"`
	Allergens   *models.Allergens `json:"allergens"`
}

// ProductService manages the catalog. Until the owner saves a catalog the
// default one is served.
type ProductService struct {
	repo     *repository.Repository[models.Product]
	defaults func() ([]models.Product, error)
}

var productServiceInstance *ProductService

// NewProductService creates a product service. defaults supplies the
// catalog shown while nothing is stored.
func NewProductService(repo *repository.Repository[models.Product], defaults func() ([]models.Product, error)) *ProductService {
	if defaults == nil {
		defaults = func() ([]models.Product, error) { return nil, nil }
	}
	return &ProductService{repo: repo, defaults: defaults}
}

// InitProductService creates the product service and makes it the global instance
func InitProductService(repo *repository.Repository[models.Product], defaults func() ([]models.Product, error)) *ProductService {
	productServiceInstance = NewProductService(repo, defaults)
	return productServiceInstance
}

// GetProductService returns the initialized product service
func GetProductService() *ProductService {
	return productServiceInstance
}

// SetProductService sets the product service instance (primarily for testing)
func SetProductService(service *ProductService) {
	productServiceInstance = service
}

// ListProducts returns the stored catalog or the default one
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) > 0 {
		return products, nil
	}

	products, err = s.defaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load default products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct returns one product
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	switch {
	case name == "":
		return nil, invalid("Missing required field: name")
	case category == "":
		return nil, invalid("Missing required field: category")
	case in.Price == nil:
		return nil, invalid("Missing required field: price")
	case *in.Price < 0:
		return nil, invalid("price must not be negative")
	case !models.ValidLoafType(in.LoafType):
		return nil, invalid("Unknown loafType %q", in.LoafType)
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       *in.Price,
		Image:       in.Image,
		Category:    category,
		InStock:     in.InStock == nil || *in.InStock,
		Ingredients: in.Ingredients,
		LoafType:    in.LoafType,
		Allergens:   in.Allergens,
	}

	if err := s.materialize(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies a patch to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, invalid("price must not be negative")
	}
	if patch.LoafType != nil && !models.ValidLoafType(*patch.LoafType) {
		return nil, invalid("Unknown loafType %q", *patch.LoafType)
	}
	if err := s.materialize(ctx); err != nil {
		return nil, err
	}

	return s.repo.Patch(ctx, id, func(p *models.Product) error {
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return invalid("name must not be empty")
			}
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Category != nil {
			if strings.TrimSpace(*patch.Category) == "" {
				return invalid("category must not be empty")
			}
			p.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.InStock != nil {
			p.InStock = *patch.InStock
		}
		if patch.Ingredients != nil {
			p.Ingredients = *patch.Ingredients
		}
		if patch.LoafType != nil {
			p.LoafType = *patch.LoafType
		}
		if patch.Allergens != nil {
			p.Allergens = patch.Allergens
		}
		return nil
	})
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.materialize(ctx); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ReplaceProducts overwrites the whole catalog
func (s *ProductService) ReplaceProducts(ctx context.Context, products []models.Product) error {
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

// materialize writes the default catalog to storage before the first
// change so edits apply to what customers were shown
func (s *ProductService) materialize(ctx context.Context) error {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if len(stored) > 0 {
		return nil
	}

	defaults, err := s.defaults()
	if err != nil {
		return fmt.Errorf("failed to load default products: %w", err)
	}
	if len(defaults) == 0 {
		return nil
	}
	return s.ReplaceProducts(ctx, defaults)
}
