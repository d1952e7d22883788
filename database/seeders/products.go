package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
)

func init() {
	Register("products", SeedProducts)
}

func product(code, name, desc string, size models.Size, color models.Color, price int64, stock int, image string) models.Product {
	return models.Product{
		Code:        code,
		Name:        name,
		Description: desc,
		Size:        size,
		Color:       color,
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
		ImageURL:    "https://images.unsplash.com/" + image + "?w=500",
	}
}

// Catalog is the starter catalog.
var Catalog = []models.Product{
	product("NK-AIR-001", "Nike Air Max 90", "Sneakers with Air Max cushioning for all-day comfort",
		models.Size9, models.ColorWhite, 450000, 15, "photo-1542291026-7eec264c27ff"),
	product("AD-ULTRA-001", "Adidas Ultraboost 22", "Running shoes with a Boost midsole for maximum energy return",
		models.Size8, models.ColorBlack, 520000, 10, "photo-1608231387042-66d1773070a5"),
	product("NK-ZOOM-001", "Nike Zoom Pegasus 39", "Lightweight running shoes with responsive cushioning",
		models.Size10, models.ColorGray, 380000, 20, "photo-1606107557195-0e29a4b5b4aa"),
	product("AD-STAN-001", "Adidas Stan Smith", "Classic casual sneaker in premium leather",
		models.Size7, models.ColorWhite, 320000, 25, "photo-1595950653106-6c9ebd614d3a"),
	product("NK-JORDAN-001", "Air Jordan 1 Mid", "Iconic basketball design with street style",
		models.Size9, models.ColorBlack, 680000, 8, "photo-1556906781-9a412961c28c"),
	product("NB-990-001", "New Balance 990v5", "Premium running shoes with ENCAP technology",
		models.Size8, models.ColorGray, 590000, 12, "photo-1539185441755-769473a23570"),
	product("PU-SUEDE-001", "Puma Suede Classic", "Retro suede sneakers with a rubber sole",
		models.Size10, models.ColorBlack, 280000, 18, "photo-1460353581641-37baddab0fa2"),
	product("RB-CLASSIC-001", "Reebok Classic Leather", "Soft and durable classic leather sneaker",
		models.Size7, models.ColorWhite, 310000, 22, "photo-1491553895911-0055eca6402d"),
	product("VN-OLD-001", "Vans Old Skool", "Skate shoes with the iconic side stripe",
		models.Size9, models.ColorBlack, 250000, 30, "photo-1525966222134-fcfa99b8ae77"),
	product("CV-ALLSTAR-001", "Converse All Star High", "Timeless canvas high-top",
		models.Size8, models.ColorWhite, 220000, 35, "photo-1514989940723-e8e51635b782"),
}

// SeedProducts inserts the starter catalog when the products table is empty.
func SeedProducts(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := make([]models.Product, len(Catalog))
	copy(rows, Catalog)
	return db.Create(&rows).Error
}
