package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyProcessed = errors.New("order already processed or not found")
	ErrEmptyCart        = errors.New("cart is empty")
)

type ValidationReason string

const (
	ReasonRequiredUnavailable   ValidationReason = "required_group_unavailable"
	ReasonUnknownIngredient     ValidationReason = "unknown_ingredient"
	ReasonIngredientUnavailable ValidationReason = "ingredient_unavailable"
	ReasonTooManySelections     ValidationReason = "too_many_selections"
)

// ValidationError บอก group/ingredient ที่มีปัญหา เพื่อให้หน้าบ้านชี้จุดแก้ได้
type ValidationError struct {
	Reason       ValidationReason `json:"reason"`
	Group        string           `json:"group,omitempty"`
	IngredientID uint             `json:"ingredientId,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("invalid selection (%s): group %q", e.Reason, e.Group)
	}
	return fmt.Sprintf("invalid selection (%s): ingredient %d", e.Reason, e.IngredientID)
}

type PriceChange struct {
	LineID       uint   `json:"lineId,omitempty"`
	MenuItemID   uint   `json:"menuItemId"`
	ItemName     string `json:"itemName,omitempty"`
	OldUnitPrice int64  `json:"oldUnitPrice"`
	NewUnitPrice int64  `json:"newUnitPrice"`
}

// PriceChangedError = ราคาในตะกร้าไม่ตรงกับราคาปัจจุบันเกิน tolerance
// ไม่แก้ให้เอง ลูกค้าต้องกดยืนยันราคาใหม่ก่อน ถึงตอนนั้นยังไม่มี payment intent
type PriceChangedError struct {
	Changes        []PriceChange `json:"changes"`
	CorrectedTotal int64         `json:"correctedTotal"`
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("prices changed on %d line(s), corrected total %d", len(e.Changes), e.CorrectedTotal)
}

// GatewayError ห่อ error จาก payment gateway หลังเก็บกวาดสถานะเรียบร้อยแล้ว
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
