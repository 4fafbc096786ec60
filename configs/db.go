package configs

import (
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.IngredientType{}, &entity.Ingredient{},
		&entity.ItemIngredient{}, &entity.IngredientEffect{},
		&entity.OrderStatus{}, &entity.Order{},
		&entity.OrderItem{}, &entity.OrderItemIngredient{},
	)
}
