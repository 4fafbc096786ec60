package services

import (
	"errors"
	"fmt"

	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/pkg/payment"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StatusIDs struct {
	Cart       uint
	Pending    uint
	Processing uint
	Completed  uint
	Cancelled  uint
}

// CheckoutService คุม state machine ของ order:
// Cart → Pending → Processing | (revert/delete) | Cancelled
type CheckoutService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	Pricing   *PricingService
	Inventory *InventoryService
	Gateway   payment.Gateway
	Settings  configs.Settings
	Currency  string

	Status StatusIDs
}

func NewCheckoutService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	pricing *PricingService,
	inventory *InventoryService,
	gateway payment.Gateway,
	settings configs.Settings,
	currency string,
) *CheckoutService {
	s := &CheckoutService{
		DB: db, Repo: repo, CartRepo: cartRepo, Pricing: pricing,
		Inventory: inventory, Gateway: gateway, Settings: settings, Currency: currency,
	}

	if id, err := repo.GetStatusIDByName("Cart"); err == nil {
		s.Status.Cart = id
	}
	if id, err := repo.GetStatusIDByName("Pending"); err == nil {
		s.Status.Pending = id
	}
	if id, err := repo.GetStatusIDByName("Processing"); err == nil {
		s.Status.Processing = id
	}
	if id, err := repo.GetStatusIDByName("Completed"); err == nil {
		s.Status.Completed = id
	}
	if id, err := repo.GetStatusIDByName("Cancelled"); err == nil {
		s.Status.Cancelled = id
	}

	return s
}

type BeginCheckoutRes struct {
	OrderID    uint   `json:"orderId"`
	PaymentRef string `json:"paymentRef"`
	Subtotal   int64  `json:"subtotal"`
	VAT        int64  `json:"vat"`
	Total      int64  `json:"total"`
}

// line ที่กำลัง revalidate ก่อนสร้าง payment intent
type checkoutLine struct {
	LineID     uint
	MenuItemID uint
	ItemName   string
	Qty        int
	StoredUnit int64
	Quote      *PriceQuote
}

// Begin: Cart → Pending
// ทุก line ถูกคิดราคาใหม่ผ่าน price oracle ก่อน ถ้าหลุด tolerance แม้บรรทัดเดียว
// จะตอบ PriceChangedError พร้อมรายการส่วนต่างครบชุด และไม่สร้าง intent
func (s *CheckoutService) Begin(userID uint, sess SessionBag) (*BeginCheckoutRes, error) {
	var (
		lines     []checkoutLine
		draft     *entity.Order
		guest     *GuestCart
		orderType = entity.TakeAway
	)

	if userID != 0 {
		d, err := s.CartRepo.GetDraftWithLines(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmptyCart
			}
			return nil, err
		}
		if len(d.OrderItems) == 0 {
			return nil, ErrEmptyCart
		}
		draft = d
		orderType = d.OrderType
		for _, li := range d.OrderItems {
			selected := make([]uint, 0, len(li.Ingredients))
			for _, ing := range li.Ingredients {
				if !ing.AutoFilled {
					selected = append(selected, ing.IngredientID)
				}
			}
			q, err := s.Pricing.Quote(li.MenuItemID, selected)
			if err != nil {
				return nil, err
			}
			lines = append(lines, checkoutLine{
				LineID: li.ID, MenuItemID: li.MenuItemID, ItemName: q.ItemName,
				Qty: li.Qty, StoredUnit: li.UnitPrice, Quote: q,
			})
		}
	} else {
		guest = sess.GuestCart()
		if len(guest.Lines) == 0 {
			return nil, ErrEmptyCart
		}
		if guest.OrderType.Valid() {
			orderType = guest.OrderType
		}
		for _, gl := range guest.Lines {
			selected := make([]uint, 0, len(gl.Ingredients))
			for _, ing := range gl.Ingredients {
				if !ing.AutoFilled {
					selected = append(selected, ing.ID)
				}
			}
			q, err := s.Pricing.Quote(gl.MenuItemID, selected)
			if err != nil {
				return nil, err
			}
			lines = append(lines, checkoutLine{
				LineID: gl.ID, MenuItemID: gl.MenuItemID, ItemName: q.ItemName,
				Qty: gl.Qty, StoredUnit: gl.UnitPrice, Quote: q,
			})
		}
	}

	tolerance := s.Settings.PriceTolerance()
	var changes []PriceChange
	var subtotal int64
	for _, cl := range lines {
		diff := cl.Quote.UnitPrice - cl.StoredUnit
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			changes = append(changes, PriceChange{
				LineID: cl.LineID, MenuItemID: cl.MenuItemID, ItemName: cl.ItemName,
				OldUnitPrice: cl.StoredUnit, NewUnitPrice: cl.Quote.UnitPrice,
			})
		}
		subtotal += cl.Quote.UnitPrice * int64(cl.Qty)
	}
	vat, total := s.Pricing.Totals(subtotal)
	if len(changes) > 0 {
		return nil, &PriceChangedError{Changes: changes, CorrectedTotal: total}
	}

	// ยอดที่ส่งให้ gateway = ยอดที่ oracle เพิ่งคิด ไม่ใช่ยอด cache ในตะกร้า
	intent, err := s.Gateway.CreateIntent(total, s.Currency, fmt.Sprintf("BeanToMug order (%d lines)", len(lines)))
	if err != nil {
		return nil, &GatewayError{Op: "create_intent", Err: err}
	}
	log.WithFields(log.Fields{"ref": intent.ExternalID, "total": total}).Info("payment intent created")

	var out BeginCheckoutRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if draft != nil {
			// user ที่ล็อกอิน: draft เดิมกลายเป็น order จริง
			for _, cl := range lines {
				if cl.Quote.UnitPrice != cl.StoredUnit {
					if err := tx.Model(&entity.OrderItem{}).Where("id = ?", cl.LineID).
						Updates(map[string]any{
							"unit_price": cl.Quote.UnitPrice,
							"total":      cl.Quote.UnitPrice * int64(cl.Qty),
						}).Error; err != nil {
						return err
					}
				}
			}
			if err := tx.Model(&entity.Order{}).Where("id = ?", draft.ID).
				Updates(map[string]any{
					"is_draft":        false,
					"order_status_id": s.Status.Pending,
					"payment_ref":     intent.ExternalID,
					"subtotal":        subtotal,
					"vat":             vat,
					"total":           total,
				}).Error; err != nil {
				return err
			}
			out = BeginCheckoutRes{OrderID: draft.ID, PaymentRef: intent.ExternalID, Subtotal: subtotal, VAT: vat, Total: total}
			return nil
		}

		// guest: สร้าง order + lines + ingredients จากตะกร้าใน session
		order := entity.Order{
			IsDraft:       false,
			OrderStatusID: s.Status.Pending,
			OrderType:     orderType,
			Subtotal:      subtotal,
			VAT:           vat,
			Total:         total,
			PaymentRef:    intent.ExternalID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, cl := range lines {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: cl.MenuItemID,
				Qty:        cl.Qty,
				UnitPrice:  cl.Quote.UnitPrice,
				Total:      cl.Quote.UnitPrice * int64(cl.Qty),
			}
			for _, ing := range cl.Quote.Ingredients {
				oi.Ingredients = append(oi.Ingredients, entity.OrderItemIngredient{
					IngredientID: ing.ID, Price: ing.Price, AutoFilled: ing.AutoFilled,
				})
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		out = BeginCheckoutRes{OrderID: order.ID, PaymentRef: intent.ExternalID, Subtotal: subtotal, VAT: vat, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// guest cart หมดหน้าที่แล้ว — ล้างหลัง commit
	if guest != nil {
		sess.SetGuestCart(&GuestCart{OrderType: guest.OrderType})
	}
	return &out, nil
}

// Capture: Pending → Processing (ตัดสต็อกใน tx เดียวกัน)
// capture ไม่ผ่าน → user order ถอยกลับเป็นตะกร้า / guest order ลบทิ้ง
func (s *CheckoutService) Capture(ref string) (*entity.Order, error) {
	o, err := s.Repo.GetOrderByPaymentRef(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}
	if o.OrderStatusID != s.Status.Pending {
		return nil, ErrAlreadyProcessed
	}

	res, err := s.Gateway.Capture(ref)
	if err == nil && res.Status != payment.CaptureSucceeded {
		err = fmt.Errorf("capture status %s", res.Status)
	}
	if err != nil {
		log.WithFields(log.Fields{"ref": ref, "orderId": o.ID}).
			WithError(err).Warn("capture failed, unwinding order")
		if cleanupErr := s.unwindPending(o); cleanupErr != nil {
			return nil, cleanupErr
		}
		return nil, &GatewayError{Op: "capture", Err: err}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, s.Status.Pending, s.Status.Processing)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyProcessed
		}
		return s.Inventory.DeductForOrder(tx, o)
	})
	if err != nil {
		return nil, err
	}

	o.OrderStatusID = s.Status.Processing
	log.WithFields(log.Fields{"ref": ref, "orderId": o.ID, "total": o.Total}).Info("order captured")
	return o, nil
}

// Cancel: Pending → ตะกร้า (user) | หายไปเลย (guest) — ไม่เรียก gateway
func (s *CheckoutService) Cancel(ref string) error {
	o, err := s.Repo.GetOrderByPaymentRef(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlreadyProcessed
		}
		return err
	}
	if o.OrderStatusID != s.Status.Pending {
		return ErrAlreadyProcessed
	}
	return s.unwindPending(o)
}

// CancelProcessing: Processing → Cancelled พร้อมคืนสต็อก
func (s *CheckoutService) CancelProcessing(orderID uint) error {
	o, err := s.Repo.GetOrderWithLines(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, s.Status.Processing, s.Status.Cancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyProcessed
		}
		return s.Inventory.RestoreForOrder(tx, o)
	})
}

// unwindPending เก็บกวาด order ที่ค้างสถานะ Pending แล้วไปต่อไม่ได้
func (s *CheckoutService) unwindPending(o *entity.Order) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if o.UserID != nil {
			// ลูกค้าที่ล็อกอินได้ตะกร้าเดิมคืน ลองจ่ายใหม่ได้
			return s.Repo.RevertToCart(tx, o.ID, s.Status.Cart)
		}
		// guest ไม่มีตะกร้าถาวร → ลบทั้ง order
		return s.Repo.DeleteOrderCascade(tx, o.ID)
	})
}
