package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	// nullable → guest order ไม่มีเจ้าของ
	UserID *uint `json:"userId"`
	User   *User `json:"-"`

	// draft = ตะกร้าของ user ที่ยังไม่ checkout (ต่างจาก order จริงแค่ flag นี้)
	IsDraft bool `json:"isDraft" gorm:"index"`

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	OrderType OrderType `json:"orderType" gorm:"size:20;default:'TakeAway'"`

	Subtotal int64 `json:"subtotal"`
	VAT      int64 `json:"vat"`
	Total    int64 `json:"total"`

	// อ้างอิง payment intent ของ gateway ภายนอก
	PaymentRef string `json:"paymentRef" gorm:"index"`

	OrderItems []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
