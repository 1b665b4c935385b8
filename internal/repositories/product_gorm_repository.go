package repositories

import (
	"errors"
	"fmt"

	"kickstore/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withChildren() *gorm.DB {
	return r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Variants")
}

// GetAll retrieves all products from the database, oldest first.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.withChildren().Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.withChildren().First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product with its images and variants.
func (r *GORMProductRepository) Create(product *models.Product) error {
	assignIDs(product)
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces a product and its images and variants.
func (r *GORMProductRepository) Update(product *models.Product) error {
	assignIDs(product)
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Select("*").Omit("Images", "Variants").Updates(product)
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s for update: %w", product.ID, ErrProductNotFound)
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to replace images: %w", err)
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("failed to replace variants: %w", err)
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return fmt.Errorf("failed to replace images: %w", err)
			}
		}
		if len(product.Variants) > 0 {
			if err := tx.Create(&product.Variants).Error; err != nil {
				return fmt.Errorf("failed to replace variants: %w", err)
			}
		}
		return nil
	})
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
