package services

import (
	"fmt"
	"testing"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.SetupJoinTable(&entity.MenuItem{}, "IngredientTypes", &entity.ItemIngredientType{}))
	require.NoError(t, db.SetupJoinTable(&entity.IngredientType{}, "MenuItems", &entity.ItemIngredientType{}))
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.IngredientType{}, &entity.Ingredient{},
		&entity.ItemIngredient{}, &entity.IngredientEffect{},
		&entity.OrderStatus{}, &entity.Order{},
		&entity.OrderItem{}, &entity.OrderItemIngredient{},
	))
	for _, name := range []string{"Cart", "Pending", "Processing", "Completed", "Cancelled"} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: name}).Error)
	}
	return db
}

// เมนูมาตรฐานของเทส: Espresso 55.00 บาท
//   Size (required, เลือกได้ 1): Small +0 / Large +10.00
//   Syrup (optional, multi):     Vanilla +5.00
//   เมล็ดกาแฟ physical ใช้แก้วละ 50 หน่วย, เลือก Large ใช้ x1.5
type catalogFixture struct {
	Espresso entity.MenuItem
	Small    entity.Ingredient
	Large    entity.Ingredient
	Vanilla  entity.Ingredient
	Beans    entity.Ingredient
}

func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()
	var f catalogFixture

	f.Espresso = entity.MenuItem{ItemName: "Espresso", Price: 5500, Enabled: true}
	require.NoError(t, db.Create(&f.Espresso).Error)

	size := entity.IngredientType{TypeName: "Size", Category: "option", SortOrder: 1}
	syrup := entity.IngredientType{TypeName: "Syrup", Category: "option", MultiSelect: true, SortOrder: 2}
	beans := entity.IngredientType{TypeName: "Coffee Beans", Category: "stock", IsPhysical: true}
	require.NoError(t, db.Create(&size).Error)
	require.NoError(t, db.Create(&syrup).Error)
	require.NoError(t, db.Create(&beans).Error)

	f.Small = entity.Ingredient{IngredientTypeID: size.ID, Name: "Small", Price: 0, Enabled: true}
	f.Large = entity.Ingredient{IngredientTypeID: size.ID, Name: "Large", Price: 1000, Enabled: true}
	f.Vanilla = entity.Ingredient{IngredientTypeID: syrup.ID, Name: "Vanilla Syrup", Price: 500, Enabled: true}
	f.Beans = entity.Ingredient{IngredientTypeID: beans.ID, Name: "Arabica Beans", Enabled: true, Stock: 1000, LowStockThreshold: 100}
	for _, ing := range []*entity.Ingredient{&f.Small, &f.Large, &f.Vanilla, &f.Beans} {
		require.NoError(t, db.Create(ing).Error)
	}

	require.NoError(t, db.Create(&entity.ItemIngredientType{
		MenuItemID: f.Espresso.ID, IngredientTypeID: size.ID, Required: true, SortOrder: 1,
	}).Error)
	require.NoError(t, db.Create(&entity.ItemIngredientType{
		MenuItemID: f.Espresso.ID, IngredientTypeID: syrup.ID, SortOrder: 2,
	}).Error)

	require.NoError(t, db.Create(&entity.ItemIngredient{
		MenuItemID: f.Espresso.ID, IngredientID: f.Beans.ID, QuantityRequired: 50,
	}).Error)
	require.NoError(t, db.Create(&entity.IngredientEffect{
		MenuItemID: f.Espresso.ID, OptionIngredientID: f.Large.ID, TargetIngredientID: f.Beans.ID, Multiplier: 1.5,
	}).Error)

	return f
}

// join table ต้องถูกสร้างตามโมเดลเต็ม (required, sort_order)
// ไม่ใช่ตาราง 2 คอลัมน์ที่ gorm เจนเอง
func TestMigrationKeepsJoinTableColumns(t *testing.T) {
	db := openTestDB(t)
	m := db.Migrator()
	assert.True(t, m.HasColumn(&entity.ItemIngredientType{}, "required"))
	assert.True(t, m.HasColumn(&entity.ItemIngredientType{}, "sort_order"))
}

// memBag = SessionBag ในหน่วยความจำ ใช้แทน session middleware ในเทส
type memBag struct{ cart *GuestCart }

func (b *memBag) GuestCart() *GuestCart {
	if b.cart == nil {
		b.cart = &GuestCart{OrderType: entity.TakeAway}
	}
	return b.cart
}

func (b *memBag) SetGuestCart(c *GuestCart) { b.cart = c }
