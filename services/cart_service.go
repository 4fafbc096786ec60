package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"gorm.io/gorm"
)

// lineKey = เอกลักษณ์ของ line (เมนู + ชุด ingredient เรียงแล้ว)
// guest backend กับ draft backend ต้องใช้ฟังก์ชันเดียวกัน ห้ามเขียนแยก
func lineKey(itemID uint, ingredientIDs []uint) string {
	ids := append([]uint(nil), ingredientIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:", itemID)
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", id)
	}
	return sb.String()
}

// ---------------- guest cart (อยู่ใน session เท่านั้น) ----------------

type GuestLine struct {
	ID          uint                 `json:"id"` // running id ภายใน session
	MenuItemID  uint                 `json:"menuItemId"`
	ItemName    string               `json:"itemName"`
	Qty         int                  `json:"qty"`
	UnitPrice   int64                `json:"unitPrice"`
	Ingredients []ResolvedIngredient `json:"ingredients"`
}

type GuestCart struct {
	NextID    uint             `json:"nextId"`
	OrderType entity.OrderType `json:"orderType"`
	Lines     []GuestLine      `json:"lines"`
}

// SessionBag = ถุงเก็บของต่อ session ที่ transport จัดหามาให้
type SessionBag interface {
	GuestCart() *GuestCart
	SetGuestCart(*GuestCart)
}

func ingredientIDsOf(ings []ResolvedIngredient) []uint {
	out := make([]uint, 0, len(ings))
	for _, ing := range ings {
		out = append(out, ing.ID)
	}
	return out
}

// ---------------- shared view ----------------

type CartLineView struct {
	ID          uint                 `json:"id"`
	MenuItemID  uint                 `json:"menuItemId"`
	ItemName    string               `json:"itemName"`
	Qty         int                  `json:"qty"`
	UnitPrice   int64                `json:"unitPrice"`
	Total       int64                `json:"total"`
	Ingredients []ResolvedIngredient `json:"ingredients"`
}

type CartView struct {
	Lines     []CartLineView   `json:"lines"`
	OrderType entity.OrderType `json:"orderType"`
	Subtotal  int64            `json:"subtotal"`
	VAT       int64            `json:"vat"`
	Total     int64            `json:"total"`
}

// ---------------- service ----------------

// CartService = สัญญาเดียว สอง backend: guest อยู่ใน session,
// user ที่ล็อกอินอยู่ใน DB เป็น draft order (userID = 0 ถือว่าเป็น guest)
type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	Pricing  *PricingService

	cartStatusID uint
}

func NewCartService(db *gorm.DB, cartRepo *repository.CartRepository, orderRepo *repository.OrderRepository, pricing *PricingService) *CartService {
	s := &CartService{DB: db, CartRepo: cartRepo, Pricing: pricing}
	if id, err := orderRepo.GetStatusIDByName("Cart"); err == nil {
		s.cartStatusID = id
	}
	return s
}

type AddLineIn struct {
	MenuItemID    uint   `json:"menuItemId" binding:"required"`
	Qty           int    `json:"qty" binding:"min=1"`
	IngredientIDs []uint `json:"ingredientIds"`
}

func (s *CartService) Get(userID uint, sess SessionBag) (*CartView, error) {
	if userID == 0 {
		return s.guestView(sess), nil
	}
	return s.ownerView(userID)
}

func (s *CartService) AddLine(userID uint, sess SessionBag, in *AddLineIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	// ราคาและ auto-fill มาจาก catalog เสมอ
	q, err := s.Pricing.Quote(in.MenuItemID, in.IngredientIDs)
	if err != nil {
		return err
	}
	key := lineKey(q.MenuItemID, ingredientIDsOf(q.Ingredients))

	if userID == 0 {
		c := sess.GuestCart()
		for i := range c.Lines {
			l := &c.Lines[i]
			if lineKey(l.MenuItemID, ingredientIDsOf(l.Ingredients)) == key {
				l.Qty += in.Qty
				sess.SetGuestCart(c)
				return nil
			}
		}
		c.NextID++
		c.Lines = append(c.Lines, GuestLine{
			ID: c.NextID, MenuItemID: q.MenuItemID, ItemName: q.ItemName,
			Qty: in.Qty, UnitPrice: q.UnitPrice, Ingredients: q.Ingredients,
		})
		sess.SetGuestCart(c)
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.getOrCreateDraft(tx, userID)
		if err != nil {
			return err
		}
		for _, li := range draft.OrderItems {
			if s.draftLineKey(li) == key {
				if err := s.CartRepo.IncrementLineQty(tx, li.ID, in.Qty); err != nil {
					return err
				}
				return s.recomputeDraftTotals(tx, draft.ID)
			}
		}
		line := &entity.OrderItem{
			OrderID:    draft.ID,
			MenuItemID: q.MenuItemID,
			Qty:        in.Qty,
			UnitPrice:  q.UnitPrice,
			Total:      q.UnitPrice * int64(in.Qty),
		}
		for _, ing := range q.Ingredients {
			line.Ingredients = append(line.Ingredients, entity.OrderItemIngredient{
				IngredientID: ing.ID, Price: ing.Price, AutoFilled: ing.AutoFilled,
			})
		}
		if err := s.CartRepo.InsertLine(tx, line); err != nil {
			return err
		}
		return s.recomputeDraftTotals(tx, draft.ID)
	})
}

func (s *CartService) UpdateQty(userID uint, sess SessionBag, lineID uint, qty int) error {
	if qty <= 0 {
		return s.RemoveLine(userID, sess, lineID)
	}
	if userID == 0 {
		c := sess.GuestCart()
		for i := range c.Lines {
			if c.Lines[i].ID == lineID {
				c.Lines[i].Qty = qty
				sess.SetGuestCart(c)
				return nil
			}
		}
		return ErrNotFound
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.CartRepo.GetDraftWithLines(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.CartRepo.UpdateLineQty(tx, draft.ID, lineID, qty); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return s.recomputeDraftTotals(tx, draft.ID)
	})
}

func (s *CartService) RemoveLine(userID uint, sess SessionBag, lineID uint) error {
	if userID == 0 {
		c := sess.GuestCart()
		for i := range c.Lines {
			if c.Lines[i].ID == lineID {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
				sess.SetGuestCart(c)
				return nil
			}
		}
		return ErrNotFound
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.CartRepo.GetDraftWithLines(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.CartRepo.RemoveLine(tx, draft.ID, lineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return s.recomputeDraftTotals(tx, draft.ID)
	})
}

func (s *CartService) Clear(userID uint, sess SessionBag) error {
	if userID == 0 {
		sess.SetGuestCart(&GuestCart{OrderType: entity.TakeAway})
		return nil
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.CartRepo.GetDraftWithLines(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := s.CartRepo.ClearLines(tx, draft.ID); err != nil {
			return err
		}
		return s.CartRepo.UpdateTotals(tx, draft.ID, 0, 0, 0)
	})
}

func (s *CartService) SetOrderType(userID uint, sess SessionBag, t entity.OrderType) error {
	if !t.Valid() {
		return errors.New("invalid order type")
	}
	if userID == 0 {
		c := sess.GuestCart()
		c.OrderType = t
		sess.SetGuestCart(c)
		return nil
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.getOrCreateDraft(tx, userID)
		if err != nil {
			return err
		}
		return s.CartRepo.SetOrderType(tx, draft.ID, t)
	})
}

// MergeOnLogin ยกของจาก session ไปรวมกับ draft ของ user หลังล็อกอิน
// ทุกบรรทัดคิดราคาใหม่จาก catalog — ราคาใน session เชื่อไม่ได้แล้ว
// ทั้งหมดอยู่ใน transaction เดียว: เข้าได้ครบหรือไม่เข้าเลย
func (s *CartService) MergeOnLogin(sess SessionBag, userID uint) error {
	guest := sess.GuestCart()
	if len(guest.Lines) == 0 {
		return nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		draft, err := s.getOrCreateDraft(tx, userID)
		if err != nil {
			return err
		}

		existing := make(map[string]uint, len(draft.OrderItems))
		for _, li := range draft.OrderItems {
			existing[s.draftLineKey(li)] = li.ID
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
				return err
			}
			key := lineKey(q.MenuItemID, ingredientIDsOf(q.Ingredients))

			if lineID, ok := existing[key]; ok {
				if err := s.CartRepo.IncrementLineQty(tx, lineID, gl.Qty); err != nil {
					return err
				}
				continue
			}

			line := &entity.OrderItem{
				OrderID:    draft.ID,
				MenuItemID: q.MenuItemID,
				Qty:        gl.Qty,
				UnitPrice:  q.UnitPrice,
				Total:      q.UnitPrice * int64(gl.Qty),
			}
			for _, ing := range q.Ingredients {
				line.Ingredients = append(line.Ingredients, entity.OrderItemIngredient{
					IngredientID: ing.ID, Price: ing.Price, AutoFilled: ing.AutoFilled,
				})
			}
			if err := s.CartRepo.InsertLine(tx, line); err != nil {
				return err
			}
			existing[key] = line.ID
		}

		return s.recomputeDraftTotals(tx, draft.ID)
	})
	if err != nil {
		return err
	}

	// ล้าง session หลัง commit เท่านั้น
	sess.SetGuestCart(&GuestCart{OrderType: guest.OrderType})
	return nil
}

// ---------------- internals ----------------

func (s *CartService) getOrCreateDraft(tx *gorm.DB, userID uint) (*entity.Order, error) {
	var o entity.Order
	err := tx.Where("user_id = ? AND is_draft = ?", userID, true).
		Order("updated_at DESC").
		Preload("OrderItems").
		Preload("OrderItems.Ingredients").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.CartRepo.CreateDraft(tx, userID, s.cartStatusID, entity.TakeAway)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *CartService) draftLineKey(li entity.OrderItem) string {
	ids := make([]uint, 0, len(li.Ingredients))
	for _, ing := range li.Ingredients {
		ids = append(ids, ing.IngredientID)
	}
	return lineKey(li.MenuItemID, ids)
}

func (s *CartService) recomputeDraftTotals(tx *gorm.DB, orderID uint) error {
	subtotal, err := s.CartRepo.SumLineTotals(tx, orderID)
	if err != nil {
		return err
	}
	vat, total := s.Pricing.Totals(subtotal)
	return s.CartRepo.UpdateTotals(tx, orderID, subtotal, vat, total)
}

func (s *CartService) guestView(sess SessionBag) *CartView {
	c := sess.GuestCart()
	v := &CartView{OrderType: c.OrderType, Lines: make([]CartLineView, 0, len(c.Lines))}
	for _, l := range c.Lines {
		total := l.UnitPrice * int64(l.Qty)
		v.Subtotal += total
		v.Lines = append(v.Lines, CartLineView{
			ID: l.ID, MenuItemID: l.MenuItemID, ItemName: l.ItemName,
			Qty: l.Qty, UnitPrice: l.UnitPrice, Total: total, Ingredients: l.Ingredients,
		})
	}
	v.VAT, v.Total = s.Pricing.Totals(v.Subtotal)
	return v
}

func (s *CartService) ownerView(userID uint) (*CartView, error) {
	draft, err := s.CartRepo.GetDraftWithLines(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v := &CartView{OrderType: entity.TakeAway, Lines: []CartLineView{}}
			return v, nil
		}
		return nil, err
	}
	v := &CartView{OrderType: draft.OrderType, Lines: make([]CartLineView, 0, len(draft.OrderItems))}
	for _, li := range draft.OrderItems {
		ings := make([]ResolvedIngredient, 0, len(li.Ingredients))
		for _, ing := range li.Ingredients {
			ings = append(ings, ResolvedIngredient{
				ID: ing.IngredientID, Price: ing.Price, AutoFilled: ing.AutoFilled,
			})
		}
		v.Subtotal += li.Total
		v.Lines = append(v.Lines, CartLineView{
			ID: li.ID, MenuItemID: li.MenuItemID, ItemName: li.MenuItem.ItemName,
			Qty: li.Qty, UnitPrice: li.UnitPrice, Total: li.Total, Ingredients: ings,
		})
	}
	v.VAT, v.Total = s.Pricing.Totals(v.Subtotal)
	return v, nil
}
