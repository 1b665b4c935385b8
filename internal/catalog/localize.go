package catalog

import (
	"strings"

	"kickstore/internal/models"
)

// Locale is a display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale accepts tags like "ar", "ar-IL" or "en_US". Anything that is
// not Arabic is English.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "ar" || strings.HasPrefix(tag, "ar-") || strings.HasPrefix(tag, "ar_") {
		return LocaleArabic
	}
	return LocaleEnglish
}

// DisplayProduct is a product with its text fields resolved for one locale
// plus the values a product card renders.
type DisplayProduct struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Club         string                  `json:"club"`
	Player       string                  `json:"player,omitempty"`
	League       string                  `json:"league"`
	Season       string                  `json:"season"`
	KitType      models.KitType          `json:"kitType"`
	Category     models.Category         `json:"category"`
	BasePrice    float64                 `json:"basePrice"`
	MinPrice     float64                 `json:"minPrice"`
	InStock      bool                    `json:"inStock"`
	PrimaryImage *models.ProductImage    `json:"primaryImage,omitempty"`
	Images       []models.ProductImage   `json:"images"`
	Variants     []models.ProductVariant `json:"variants"`
	Featured     bool                    `json:"featured"`
	Locale       Locale                  `json:"locale"`
}

func pick(locale Locale, primary, arabic string) string {
	if locale == LocaleArabic && arabic != "" {
		return arabic
	}
	return primary
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Localize projects p into display fields for locale. Localized fields that
// are empty fall back to the primary ones.
func Localize(p models.Product, locale Locale) DisplayProduct {
	d := DisplayProduct{
		ID:          p.ID,
		Name:        pick(locale, p.Name, p.NameAr),
		Description: pick(locale, p.Description, p.DescriptionAr),
		Club:        pick(locale, p.Club, p.ClubAr),
		Player:      pick(locale, deref(p.Player), deref(p.PlayerAr)),
		League:      pick(locale, p.League, p.LeagueAr),
		Season:      p.Season,
		KitType:     p.KitType,
		Category:    p.Category,
		BasePrice:   p.BasePrice,
		MinPrice:    p.MinPrice(),
		InStock:     p.InStock(),
		Images:      p.Images,
		Variants:    p.Variants,
		Featured:    p.Featured,
		Locale:      locale,
	}
	if img, ok := p.PrimaryImage(); ok {
		d.PrimaryImage = &img
	}
	if d.Images == nil {
		d.Images = []models.ProductImage{}
	}
	if d.Variants == nil {
		d.Variants = []models.ProductVariant{}
	}
	return d
}

// LocalizeAll projects every product.
func LocalizeAll(products []models.Product, locale Locale) []DisplayProduct {
	out := make([]DisplayProduct, len(products))
	for i, p := range products {
		out[i] = Localize(p, locale)
	}
	return out
}
