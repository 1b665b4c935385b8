package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"kickstore/internal/catalog"
	"kickstore/internal/models"
	"kickstore/internal/repositories"
	"kickstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/featured", h.HandleFeaturedProducts)
	productRoutes.Get("/clubs", h.HandleClubs)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// requestLocale prefers the locale query parameter over Accept-Language.
func requestLocale(c *fiber.Ctx) catalog.Locale {
	if locale := c.Query("locale"); locale != "" {
		return catalog.ParseLocale(locale)
	}
	return catalog.ParseLocale(c.Get(fiber.HeaderAcceptLanguage))
}

func parsePrice(c *fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", name)
	}
	return &price, nil
}

// parseFilters maps query parameters onto catalog filters.
func parseFilters(c *fiber.Ctx) (catalog.Filters, error) {
	filters := catalog.Filters{
		Search:      strings.TrimSpace(c.Query("search")),
		Club:        c.Query("club"),
		League:      c.Query("league"),
		Player:      c.Query("player"),
		Category:    models.Category(c.Query("category")),
		KitType:     models.KitType(c.Query("kitType")),
		Size:        models.Size(strings.ToUpper(c.Query("size"))),
		InStockOnly: c.QueryBool("inStock", false),
		Sort:        catalog.ParseSort(c.Query("sort")),
	}

	var err error
	if filters.MinPrice, err = parsePrice(c, "minPrice"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.MaxPrice, err = parsePrice(c, "maxPrice"); err != nil {
		return catalog.Filters{}, err
	}
	return filters, nil
}

// HandleListProducts returns a filtered, sorted and paginated listing.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid filter",
			"error":   err.Error(),
		})
	}

	page, err := h.service.ListProducts(filters, c.QueryInt("page", 1), c.QueryInt("limit", catalog.DefaultLimit))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":    catalog.LocalizeAll(page.Products, requestLocale(c)),
		"total":   page.Total,
		"page":    page.Page,
		"limit":   page.Limit,
		"success": true,
	})
}

// HandleFeaturedProducts returns the products shown on the home page.
func (h *ProductHandler) HandleFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.service.FeaturedProducts()
	if err != nil {
		log.Printf("Error getting featured products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve featured products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data":    catalog.LocalizeAll(products, requestLocale(c)),
		"success": true,
	})
}

// HandleClubs returns the distinct clubs for the filter dropdown.
func (h *ProductHandler) HandleClubs(c *fiber.Ctx) error {
	clubs, err := h.service.Clubs()
	if err != nil {
		log.Printf("Error getting clubs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve clubs",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data":    clubs,
		"success": true,
	})
}

// HandleGetProductByID returns one product with related products from the
// same club.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "no results",
			})
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}

	related, err := h.service.RelatedProducts(*product)
	if err != nil {
		log.Printf("Error getting products related to %s: %v", productID, err)
		related = nil
	}

	locale := requestLocale(c)
	return c.JSON(fiber.Map{
		"data":    catalog.Localize(*product, locale),
		"related": catalog.LocalizeAll(related, locale),
		"success": true,
	})
}
