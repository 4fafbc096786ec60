package entity

import (
	"gorm.io/gorm"
)

type OrderItemIngredient struct {
	gorm.Model
	OrderItemID uint      `json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	IngredientID uint       `json:"ingredientId"`
	Ingredient   Ingredient `json:"-"`

	// ราคา ณ เวลาหยิบลงตะกร้า (required ที่ auto-fill = 0)
	Price      int64 `json:"price"`
	AutoFilled bool  `json:"autoFilled"`
}
