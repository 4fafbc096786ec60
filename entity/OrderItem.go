package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload เฉพาะตอนต้องการชื่อเมนู

	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unitPrice"` // snapshot ตอนหยิบลงตะกร้า
	Total     int64 `json:"total"`

	Ingredients []OrderItemIngredient `json:"ingredients" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
