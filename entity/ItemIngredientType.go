package entity

// join table MenuItem <-> IngredientType (required เป็นของรายเมนู)
type ItemIngredientType struct {
	MenuItemID       uint `gorm:"primaryKey" json:"menuItemId"`
	IngredientTypeID uint `gorm:"primaryKey" json:"ingredientTypeId"`
	Required         bool `gorm:"not null;default:false" json:"required"`
	SortOrder        int  `gorm:"not null;default:0" json:"sortOrder"`
}
