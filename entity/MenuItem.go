package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	ItemName string `json:"itemName"`
	Detail   string `json:"detail"`
	Price    int64  `json:"price"` // ราคาฐาน หน่วยสตางค์
	Picture  string `json:"picture"`
	Enabled  bool   `json:"enabled" gorm:"default:true"`

	// กลุ่ม ingredient ของเมนูนี้ (required/optional อยู่บน join table)
	IngredientTypes []IngredientType `gorm:"many2many:item_ingredient_types;" json:"-"`

	OrderItems []OrderItem `json:"-"`
}
