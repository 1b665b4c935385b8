package models

import "time"

// KitType classifies a jersey design.
type KitType string

const (
	KitHome  KitType = "home"
	KitAway  KitType = "away"
	KitThird KitType = "third"
)

// Category is the kind of product sold.
type Category string

const (
	CategoryShirt   Category = "shirt"
	CategoryFullKit Category = "full_kit"
)

// Size is a variant size.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Product represents a catalog entry in the store.
type Product struct {
	ID            string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string           `json:"name" gorm:"type:varchar(200)" validate:"required,max=200"`
	NameAr        string           `json:"nameAr" gorm:"type:varchar(200)"`
	Description   string           `json:"description"`
	DescriptionAr string           `json:"descriptionAr"`
	Club          string           `json:"club" gorm:"index;type:varchar(100)" validate:"required"`
	ClubAr        string           `json:"clubAr" gorm:"type:varchar(100)"`
	Player        *string          `json:"player,omitempty" gorm:"type:varchar(100)"`
	PlayerAr      *string          `json:"playerAr,omitempty" gorm:"type:varchar(100)"`
	League        string           `json:"league" gorm:"type:varchar(100)"`
	LeagueAr      string           `json:"leagueAr" gorm:"type:varchar(100)"`
	Season        string           `json:"season" gorm:"type:varchar(20)"`
	KitType       KitType          `json:"kitType" gorm:"type:varchar(10)" validate:"oneof=home away third"`
	Category      Category         `json:"category" gorm:"type:varchar(20)" validate:"oneof=shirt full_kit"`
	BasePrice     float64          `json:"basePrice" validate:"gte=0"`
	Images        []ProductImage   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants      []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" validate:"dive"`
	Featured      bool             `json:"featured"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ProductImage is one picture of a product.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"-" gorm:"index;type:varchar(36)"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
	Position  int    `json:"-"`
}

// ProductVariant is a purchasable size/price combination of a product.
// A stock of zero means the variant cannot be bought.
type ProductVariant struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"index;type:varchar(36)"`
	Size      Size    `json:"size" gorm:"type:varchar(4)" validate:"oneof=XS S M L XL XXL"`
	Stock     int     `json:"stock" validate:"gte=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// PrimaryImage returns the image marked primary, falling back to the first
// image. The second result is false when the product has no images.
func (p Product) PrimaryImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// InStock reports whether at least one variant has stock.
func (p Product) InStock() bool {
	_, ok := p.FirstAvailableVariant()
	return ok
}

// FirstAvailableVariant returns the first variant with stock left.
func (p Product) FirstAvailableVariant() (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// MinPrice is the cheapest variant price, or the base price for a product
// without variants.
func (p Product) MinPrice() float64 {
	if len(p.Variants) == 0 {
		return p.BasePrice
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}

// VariantByID looks up one of the product's variants.
func (p Product) VariantByID(id string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// HasSize reports whether any variant comes in the given size.
func (p Product) HasSize(size Size) bool {
	for _, v := range p.Variants {
		if v.Size == size {
			return true
		}
	}
	return false
}
