package repository

import (
	"time"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithLines(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("OrderItems").
		Preload("OrderItems.Ingredients").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// หา order จาก payment intent ของ gateway — ref หนึ่งผูกกับ order เดียว
func (r *OrderRepository) GetOrderByPaymentRef(ref string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("payment_ref = ?", ref).
		Preload("OrderItems").
		Preload("OrderItems.Ingredients").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /orders (ลูกค้า) → รายการ order ของ user (ไม่รวม draft)
type OrderSummary struct {
	ID            uint             `json:"id"`
	Total         int64            `json:"total"`
	OrderType     entity.OrderType `json:"orderType"`
	OrderStatusID uint             `json:"orderStatusId"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, total, order_type, order_status_id, created_at").
		Where("user_id = ? AND is_draft = ?", userID, false).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND user_id = ? AND is_draft = ?", orderID, userID, false).
		Preload("OrderItems").
		Preload("OrderItems.Ingredients").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ---------------- Transitions ----------------

// อัปเดตสถานะแบบมี guard — คนอื่นแย่งเปลี่ยนไปก่อนจะได้ affected = 0
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	return res.RowsAffected, res.Error
}

// คืน order ของ user กลับไปเป็นตะกร้า (capture ไม่ผ่าน/ยกเลิก)
func (r *OrderRepository) RevertToCart(tx *gorm.DB, orderID, cartStatusID uint) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{
			"is_draft":        true,
			"order_status_id": cartStatusID,
			"payment_ref":     "",
		}).Error
}

// ลบ order ของ guest ทิ้งทั้งก้อน (ไม่มีตะกร้าถาวรให้ถอยกลับ)
func (r *OrderRepository) DeleteOrderCascade(tx *gorm.DB, orderID uint) error {
	if err := tx.Exec(`
		DELETE FROM order_item_ingredients
		 WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = ?)
	`, orderID).Error; err != nil {
		return err
	}
	// Unscoped — guest order ต้องหายเกลี้ยง ไม่เหลือแถว soft-delete
	if err := tx.Unscoped().Where("order_id = ?", orderID).
		Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Order{}, orderID).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// ---------------- Lookups ----------------

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}
