package entity

import (
	"gorm.io/gorm"
)

type Ingredient struct {
	gorm.Model
	IngredientTypeID uint           `json:"ingredientTypeId"`
	IngredientType   IngredientType `json:"-"`

	Name    string `json:"name"`
	Price   int64  `json:"price"` // ราคาเพิ่ม (optional เท่านั้นที่คิดเงิน)
	Enabled bool   `json:"enabled" gorm:"default:true"`

	// physical เท่านั้นที่มีสต็อกจริง
	Stock             float64 `json:"stock"`
	LowStockThreshold float64 `json:"lowStockThreshold"`
}
