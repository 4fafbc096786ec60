package repository

import (
	"strings"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"gorm.io/gorm"
)

type IngredientRepository struct{ DB *gorm.DB }

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

// ปริมาณวัตถุดิบ physical ที่เมนูใน order ใช้ต่อหน่วย
// อ่านผ่าน tx เดียวกับการปรับสต็อก ไม่ให้หลุดไปอ่านคนละ connection
func (r *IngredientRepository) RequirementsForItems(tx *gorm.DB, itemIDs []uint) ([]entity.ItemIngredient, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var rows []entity.ItemIngredient
	err := tx.Where("menu_item_id IN ?", itemIDs).Find(&rows).Error
	return rows, err
}

// ตัวคูณ effect ของเมนูชุดนี้ทั้งหมด (กรองตาม option ที่เลือกจริงใน service)
func (r *IngredientRepository) EffectsForItems(tx *gorm.DB, itemIDs []uint) ([]entity.IngredientEffect, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var rows []entity.IngredientEffect
	err := tx.Where("menu_item_id IN ?", itemIDs).Find(&rows).Error
	return rows, err
}

// อ่านค่า stock หลังปรับ — ต้องอ่านใน tx เดียวกันถึงเห็นค่าที่เพิ่งเขียน
func (r *IngredientRepository) FindByIDs(tx *gorm.DB, ids []uint) ([]entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []entity.Ingredient
	err := tx.Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// BulkAdjustStock ปรับสต็อกทีเดียวทั้งชุด ผลลัพธ์ clamp ไม่ให้ต่ำกว่า 0
// delta ติดลบ = ตัดสต็อก, บวก = คืนสต็อก
func (r *IngredientRepository) BulkAdjustStock(tx *gorm.DB, deltas map[uint]float64) error {
	if len(deltas) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(deltas)*2+len(deltas))
	sb.WriteString("UPDATE ingredients SET stock = CASE id ")
	ids := make([]any, 0, len(deltas))
	for id, d := range deltas {
		sb.WriteString("WHEN ? THEN MAX(stock + ?, 0) ")
		args = append(args, id, d)
		ids = append(ids, id)
	}
	sb.WriteString("END WHERE id IN (?")
	sb.WriteString(strings.Repeat(",?", len(ids)-1))
	sb.WriteString(")")
	args = append(args, ids...)

	return tx.Exec(sb.String(), args...).Error
}
