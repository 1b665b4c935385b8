package main

import (
	"time"

	"kickstore/internal/models"
)

func stringPtr(s string) *string { return &s }

// shirtVariants builds the usual S to XXL size run. stock lists the stock per
// size in that order.
func shirtVariants(productID string, price float64, stock ...int) []models.ProductVariant {
	sizes := []models.Size{models.SizeS, models.SizeM, models.SizeL, models.SizeXL, models.SizeXXL}
	variants := make([]models.ProductVariant, 0, len(stock))
	for i, s := range stock {
		if i >= len(sizes) {
			break
		}
		variants = append(variants, models.ProductVariant{
			ID:        productID + "-" + string(sizes[i]),
			ProductID: productID,
			Size:      sizes[i],
			Stock:     s,
			Price:     price,
		})
	}
	return variants
}

func primaryImage(productID, alt string) []models.ProductImage {
	return []models.ProductImage{{
		ID:        productID + "-front",
		ProductID: productID,
		URL:       "/images/" + productID + ".jpg",
		Alt:       alt,
		IsPrimary: true,
	}}
}

// seedProducts returns the demo catalog loaded into an empty repository.
func seedProducts() []models.Product {
	added := func(day int) time.Time {
		return time.Date(2024, time.August, day, 10, 0, 0, 0, time.UTC)
	}
	return []models.Product{
		{
			ID:            "barcelona-home-2024",
			Name:          "Barcelona Home Shirt 24/25",
			NameAr:        "قميص برشلونة الأساسي 24/25",
			Description:   "Blaugrana stripes with a gold crest.",
			DescriptionAr: "خطوط البلوغرانا مع شعار ذهبي.",
			Club:          "Barcelona",
			ClubAr:        "برشلونة",
			League:        "La Liga",
			LeagueAr:      "الدوري الإسباني",
			Season:        "2024/25",
			KitType:       models.KitHome,
			Category:      models.CategoryShirt,
			BasePrice:     180,
			Images:        primaryImage("barcelona-home-2024", "Barcelona home shirt"),
			Variants:      shirtVariants("barcelona-home-2024", 180, 4, 10, 8, 3, 0),
			Featured:      true,
			CreatedAt:     added(1),
		},
		{
			ID:            "barcelona-retro-messi",
			Name:          "Barcelona Retro Messi 10",
			NameAr:        "قميص برشلونة الكلاسيكي ميسي 10",
			Description:   "Classic 2009 home shirt with Messi 10 on the back.",
			DescriptionAr: "قميص 2009 الكلاسيكي مع اسم ميسي ورقم 10.",
			Club:          "Barcelona",
			ClubAr:        "برشلونة",
			Player:        stringPtr("Messi"),
			PlayerAr:      stringPtr("ميسي"),
			League:        "La Liga",
			LeagueAr:      "الدوري الإسباني",
			Season:        "2008/09",
			KitType:       models.KitHome,
			Category:      models.CategoryShirt,
			BasePrice:     220,
			Images:        primaryImage("barcelona-retro-messi", "Barcelona retro shirt with Messi 10"),
			Variants:      shirtVariants("barcelona-retro-messi", 220, 0, 2, 1, 0, 0),
			Featured:      true,
			CreatedAt:     added(5),
		},
		{
			ID:            "real-madrid-away-2024",
			Name:          "Real Madrid Away Shirt 24/25",
			NameAr:        "قميص ريال مدريد الاحتياطي 24/25",
			Description:   "Orange away shirt.",
			DescriptionAr: "القميص البرتقالي الاحتياطي.",
			Club:          "Real Madrid",
			ClubAr:        "ريال مدريد",
			League:        "La Liga",
			LeagueAr:      "الدوري الإسباني",
			Season:        "2024/25",
			KitType:       models.KitAway,
			Category:      models.CategoryShirt,
			BasePrice:     175,
			Images:        primaryImage("real-madrid-away-2024", "Real Madrid away shirt"),
			Variants:      shirtVariants("real-madrid-away-2024", 175, 6, 6, 6, 6, 2),
			CreatedAt:     added(3),
		},
		{
			ID:        "liverpool-home-kit-2024",
			Name:      "Liverpool Home Kit 24/25",
			NameAr:    "طقم ليفربول الأساسي 24/25",
			Club:      "Liverpool",
			ClubAr:    "ليفربول",
			Player:    stringPtr("Salah"),
			PlayerAr:  stringPtr("صلاح"),
			League:    "Premier League",
			LeagueAr:  "الدوري الإنجليزي الممتاز",
			Season:    "2024/25",
			KitType:   models.KitHome,
			Category:  models.CategoryFullKit,
			BasePrice: 240,
			Images:    primaryImage("liverpool-home-kit-2024", "Liverpool home kit with Salah 11"),
			Variants:  shirtVariants("liverpool-home-kit-2024", 240, 2, 5, 5, 1),
			Featured:  true,
			CreatedAt: added(8),
		},
		{
			ID:        "arsenal-third-2024",
			Name:      "Arsenal Third Shirt 24/25",
			Club:      "Arsenal",
			League:    "Premier League",
			LeagueAr:  "الدوري الإنجليزي الممتاز",
			Season:    "2024/25",
			KitType:   models.KitThird,
			Category:  models.CategoryShirt,
			BasePrice: 150,
			Images:    primaryImage("arsenal-third-2024", "Arsenal third shirt"),
			Variants:  shirtVariants("arsenal-third-2024", 150, 0, 0, 0, 0, 0),
			CreatedAt: added(2),
		},
	}
}
