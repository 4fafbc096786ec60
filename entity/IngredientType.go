package entity

import (
	"gorm.io/gorm"
)

// IngredientType = กลุ่มตัวเลือกของเมนู เช่น Size, Milk, Syrup
type IngredientType struct {
	gorm.Model
	TypeName    string `json:"typeName"`
	Category    string `json:"category"`
	IsPhysical  bool   `json:"isPhysical"`  // ตัดสต็อกจริงหรือไม่
	MultiSelect bool   `json:"multiSelect"` // เลือกได้หลายตัวในกลุ่มเดียว
	SortOrder   int    `json:"sortOrder"`

	Ingredients []Ingredient `json:"ingredients"`

	MenuItems []MenuItem `gorm:"many2many:item_ingredient_types;" json:"-"`
}
