package entity

// ItemIngredient = ปริมาณวัตถุดิบ physical ที่เมนูหนึ่งหน่วยใช้
type ItemIngredient struct {
	MenuItemID       uint    `gorm:"primaryKey" json:"menuItemId"`
	IngredientID     uint    `gorm:"primaryKey" json:"ingredientId"`
	QuantityRequired float64 `gorm:"not null;default:0" json:"quantityRequired"`
}
