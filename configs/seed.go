package configs

import (
	"log"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
)

// Seed ค่า lookup/status เริ่มต้น
func SeedLookups() error {
	db := DB()

	// Order lifecycle (Cart = draft ของ user ที่ยังไม่ checkout)
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Cart"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Pending"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Processing"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Completed"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Cancelled"})

	log.Println("✅ Lookup tables seeded")
	return nil
}

// เมนูตัวอย่างสำหรับ dev — espresso พร้อมกลุ่ม Size (required) และ Syrup (optional)
func SeedDemoMenu() error {
	db := DB()

	var count int64
	db.Model(&entity.MenuItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	espresso := entity.MenuItem{ItemName: "Espresso", Detail: "double shot", Price: 5500, Enabled: true}
	if err := db.Create(&espresso).Error; err != nil {
		return err
	}

	size := entity.IngredientType{TypeName: "Size", Category: "size", IsPhysical: false, MultiSelect: false}
	syrup := entity.IngredientType{TypeName: "Syrup", Category: "flavor", IsPhysical: false, MultiSelect: true}
	beans := entity.IngredientType{TypeName: "Coffee Beans", Category: "stock", IsPhysical: true}
	if err := db.Create(&size).Error; err != nil {
		return err
	}
	if err := db.Create(&syrup).Error; err != nil {
		return err
	}
	if err := db.Create(&beans).Error; err != nil {
		return err
	}

	small := entity.Ingredient{IngredientTypeID: size.ID, Name: "Small", Price: 0, Enabled: true}
	large := entity.Ingredient{IngredientTypeID: size.ID, Name: "Large", Price: 1000, Enabled: true}
	vanilla := entity.Ingredient{IngredientTypeID: syrup.ID, Name: "Vanilla", Price: 500, Enabled: true}
	bean := entity.Ingredient{IngredientTypeID: beans.ID, Name: "Arabica Beans", Enabled: true, Stock: 5000, LowStockThreshold: 500}
	for _, ing := range []*entity.Ingredient{&small, &large, &vanilla, &bean} {
		if err := db.Create(ing).Error; err != nil {
			return err
		}
	}

	joins := []entity.ItemIngredientType{
		{MenuItemID: espresso.ID, IngredientTypeID: size.ID, Required: true, SortOrder: 1},
		{MenuItemID: espresso.ID, IngredientTypeID: syrup.ID, Required: false, SortOrder: 2},
	}
	if err := db.Create(&joins).Error; err != nil {
		return err
	}

	// espresso หนึ่งแก้วใช้เมล็ด 18 หน่วย / เลือก Large ใช้เมล็ด x1.5
	if err := db.Create(&entity.ItemIngredient{
		MenuItemID: espresso.ID, IngredientID: bean.ID, QuantityRequired: 18,
	}).Error; err != nil {
		return err
	}
	if err := db.Create(&entity.IngredientEffect{
		MenuItemID: espresso.ID, OptionIngredientID: large.ID, TargetIngredientID: bean.ID, Multiplier: 1.5,
	}).Error; err != nil {
		return err
	}

	log.Println("✅ Demo menu seeded")
	return nil
}
