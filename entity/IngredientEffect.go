package entity

import (
	"gorm.io/gorm"
)

// IngredientEffect = ตัวคูณการใช้วัตถุดิบ เมื่อเลือก option (non-physical)
// กับเมนูนั้น ๆ เช่น เลือก "Large" แล้วใช้เมล็ดกาแฟ x1.5
type IngredientEffect struct {
	gorm.Model
	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	OptionIngredientID uint       `json:"optionIngredientId"`
	OptionIngredient   Ingredient `gorm:"foreignKey:OptionIngredientID" json:"-"`

	TargetIngredientID uint       `json:"targetIngredientId"`
	TargetIngredient   Ingredient `gorm:"foreignKey:TargetIngredientID" json:"-"`

	Multiplier float64 `gorm:"not null;default:1" json:"multiplier"`
}
