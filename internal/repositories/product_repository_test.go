package repositories_test

import (
	"testing"
	"time"

	"kickstore/internal/models"
	"kickstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *models.Product {
	return &models.Product{
		Name:      "Barcelona Home 24/25",
		Club:      "Barcelona",
		KitType:   models.KitHome,
		Category:  models.CategoryShirt,
		BasePrice: 120,
		CreatedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Images: []models.ProductImage{
			{URL: "https://img.example/1.jpg", Alt: "front"},
			{URL: "https://img.example/2.jpg", Alt: "back", IsPrimary: true},
		},
		Variants: []models.ProductVariant{
			{Size: models.SizeM, Stock: 3, Price: 120},
			{Size: models.SizeXL, Stock: 0, Price: 130},
		},
	}
}

func productBackends(t *testing.T) map[string]repositories.ProductRepository {
	t.Helper()
	db := newSQLiteDB(t)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.ProductVariant{}))
	return map[string]repositories.ProductRepository{
		"memory": repositories.NewMockProductRepository(),
		"gorm":   repositories.NewGORMProductRepository(db),
	}
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	for name, repo := range productBackends(t) {
		t.Run(name, func(t *testing.T) {
			product := sampleProduct()
			require.NoError(t, repo.Create(product))
			assert.NotEmpty(t, product.ID)
			for _, v := range product.Variants {
				assert.NotEmpty(t, v.ID)
				assert.Equal(t, product.ID, v.ProductID)
			}

			fetched, err := repo.GetByID(product.ID)
			require.NoError(t, err)
			assert.Equal(t, product.Name, fetched.Name)
			require.Len(t, fetched.Images, 2)
			assert.Equal(t, "front", fetched.Images[0].Alt)
			assert.Len(t, fetched.Variants, 2)

			img, ok := fetched.PrimaryImage()
			assert.True(t, ok)
			assert.Equal(t, "back", img.Alt)

			all, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, all, 1)

			n, err := repo.Count()
			require.NoError(t, err)
			assert.EqualValues(t, 1, n)
		})
	}
}

func TestProductRepository_NotFound(t *testing.T) {
	for name, repo := range productBackends(t) {
		t.Run(name, func(t *testing.T) {
			product, err := repo.GetByID("missing")
			assert.Nil(t, product)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)

			err = repo.Update(&models.Product{ID: "missing", Name: "Ghost"})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	for name, repo := range productBackends(t) {
		t.Run(name, func(t *testing.T) {
			product := sampleProduct()
			require.NoError(t, repo.Create(product))

			product.BasePrice = 99
			product.Variants = []models.ProductVariant{{ID: "v-small", Size: models.SizeS, Stock: 7, Price: 99}}
			require.NoError(t, repo.Update(product))

			fetched, err := repo.GetByID(product.ID)
			require.NoError(t, err)
			assert.Equal(t, 99.0, fetched.BasePrice)
			require.Len(t, fetched.Variants, 1)
			assert.Equal(t, "v-small", fetched.Variants[0].ID)
			assert.Equal(t, 7, fetched.Variants[0].Stock)
		})
	}
}
