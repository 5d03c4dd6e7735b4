package service

import "github.com/picturesmile/studio-api/internal/models"

type Offering struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

var offerings = []Offering{
	{"Wedding Photography", "Capture your big day with elegant and timeless photography.", "Starting from ₹25,000"},
	{"Pre-Wedding Shoots", "Romantic shoots tailored to your love story in stunning locations.", "Starting from ₹8,000"},
	{"Engagement Photography", "Beautiful moments of your engagement ceremony captured perfectly.", "Starting from ₹12,000"},
	{"Event Coverage", "From birthdays to corporate events, we cover it all.", "Starting from ₹5,000"},
	{"Maternity & Baby Shoots", "Precious moments of motherhood and newborn photography.", "Starting from ₹6,000"},
	{"Portrait Sessions", "Professional headshots and personal portrait photography.", "Starting from ₹3,000"},
	{"Album Creation", "Premium albums designed to preserve your memories beautifully.", "Starting from ₹4,000"},
	{"Client Meet & Demo", "Book a demo session to experience our creativity live.", "Free Consultation"},
}

// defaultOffers are shown when discount_settings cannot be read.
func defaultOffers() []*models.DiscountSetting {
	return []*models.DiscountSetting{
		{Key: "weddingPackage", Title: "Wedding Package Deal", Description: "Book Wedding + Pre-Wedding together", DiscountPercent: 20, Active: true},
		{Key: "earlyBird", Title: "Early Bird Discount", Description: "Book 3 months in advance", DiscountPercent: 15, Active: true},
	}
}

type Catalog struct {
	Services []Offering               `json:"services"`
	Offers   []*models.DiscountSetting `json:"offers"`
	Fallback bool                     `json:"fallback,omitempty"`
}
