package repository

import (
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"gorm.io/gorm"
)

// ตะกร้าของ user ที่ล็อกอิน = draft order ใน DB
type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// คืน draft ล่าสุดของ user — ถ้าข้อมูลเพี้ยนจนมีหลาย draft ให้ยึดตัวที่แตะล่าสุด
func (r *CartRepository) GetDraftWithLines(userID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("user_id = ? AND is_draft = ?", userID, true).
		Order("updated_at DESC").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.Ingredients").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *CartRepository) CreateDraft(tx *gorm.DB, userID uint, cartStatusID uint, orderType entity.OrderType) (*entity.Order, error) {
	uid := userID
	o := entity.Order{
		UserID:        &uid,
		IsDraft:       true,
		OrderStatusID: cartStatusID,
		OrderType:     orderType,
	}
	if err := tx.Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *CartRepository) InsertLine(tx *gorm.DB, line *entity.OrderItem) error {
	return tx.Create(line).Error
}

// รวม line เดิม: บวกจำนวนแล้วคิด total จาก unit_price ใหม่
func (r *CartRepository) IncrementLineQty(tx *gorm.DB, lineID uint, by int) error {
	return tx.Exec(`
		UPDATE order_items
		   SET qty = qty + ?, total = unit_price * (qty + ?)
		 WHERE id = ?
	`, by, by, lineID).Error
}

// ensure line เป็นของ order นี้ก่อนแก้ — ไม่เจอ line คืน ErrRecordNotFound
func (r *CartRepository) UpdateLineQty(tx *gorm.DB, orderID, lineID uint, qty int) error {
	res := tx.Exec(`
		UPDATE order_items
		   SET qty = ?, total = unit_price * ?
		 WHERE id = ? AND order_id = ?
	`, qty, qty, lineID, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) RemoveLine(tx *gorm.DB, orderID, lineID uint) error {
	// ลบตัว line ก่อน (มี guard ความเป็นเจ้าของ) ค่อยเก็บ ingredient rows
	res := tx.Where("id = ? AND order_id = ?", lineID, orderID).
		Delete(&entity.OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return tx.Unscoped().Where("order_item_id = ?", lineID).
		Delete(&entity.OrderItemIngredient{}).Error
}

func (r *CartRepository) ClearLines(tx *gorm.DB, orderID uint) error {
	if err := tx.Exec(`
		DELETE FROM order_item_ingredients
		 WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = ?)
	`, orderID).Error; err != nil {
		return err
	}
	return tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error
}

func (r *CartRepository) SumLineTotals(tx *gorm.DB, orderID uint) (int64, error) {
	var sum int64
	err := tx.Model(&entity.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *CartRepository) UpdateTotals(tx *gorm.DB, orderID uint, subtotal, vat, total int64) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"subtotal": subtotal, "vat": vat, "total": total}).Error
}

func (r *CartRepository) SetOrderType(tx *gorm.DB, orderID uint, t entity.OrderType) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("order_type", t).Error
}
