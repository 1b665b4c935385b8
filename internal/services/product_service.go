package services

import (
	"errors"
	"fmt"

	"kickstore/internal/catalog"
	"kickstore/internal/models"
	"kickstore/internal/repositories"
)

// RelatedLimit caps the related products shown next to a product.
const RelatedLimit = 4

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListProducts filters, sorts and paginates the catalog.
func (s *ProductService) ListProducts(filters catalog.Filters, page, limit int) (catalog.Page, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return catalog.Page{}, err
	}
	return catalog.Paginate(catalog.Apply(products, filters), page, limit), nil
}

// FeaturedProducts returns the products promoted on the home page.
func (s *ProductService) FeaturedProducts() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return catalog.Featured(products), nil
}

// RelatedProducts returns other products of the same club.
func (s *ProductService) RelatedProducts(product models.Product) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return catalog.Related(products, product, RelatedLimit), nil
}

// Clubs lists the clubs present in the catalog.
func (s *ProductService) Clubs() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return catalog.Clubs(products), nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// SyncCatalog creates the given products, or updates them when a product with
// the same ID already exists.
func (s *ProductService) SyncCatalog(products []models.Product) (created, updated int, err error) {
	for i := range products {
		p := &products[i]
		if p.ID != "" {
			if _, getErr := s.repo.GetByID(p.ID); getErr == nil {
				if err := s.repo.Update(p); err != nil {
					return created, updated, fmt.Errorf("failed to sync product %s: %w", p.ID, err)
				}
				updated++
				continue
			} else if !errors.Is(getErr, repositories.ErrProductNotFound) {
				return created, updated, getErr
			}
		}
		if err := s.repo.Create(p); err != nil {
			return created, updated, fmt.Errorf("failed to sync product %s: %w", p.Name, err)
		}
		created++
	}
	return created, updated, nil
}

// CountProducts returns the catalog size.
func (s *ProductService) CountProducts() (int64, error) {
	return s.repo.Count()
}
