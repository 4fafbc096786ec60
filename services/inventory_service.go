package services

import (
	"sort"

	"github.com/SalamHyped/BeanToMug-sub000/entity"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StockEventKind string

const (
	StockLow      StockEventKind = "low_stock"
	StockOut      StockEventKind = "out_of_stock"
	StockRestored StockEventKind = "restored"
)

type StockEvent struct {
	IngredientID uint           `json:"ingredientId"`
	Name         string         `json:"name"`
	Stock        float64        `json:"stock"`
	Threshold    float64        `json:"threshold"`
	Kind         StockEventKind `json:"kind"`
}

// StockNotifier ส่งสัญญาณ stock ให้ dashboard แบบ best-effort ห้าม block
type StockNotifier interface {
	NotifyStock(ev StockEvent)
}

type NopNotifier struct{}

func (NopNotifier) NotifyStock(StockEvent) {}

// InventoryService ตัด/คืนสต็อกวัตถุดิบ physical ตาม order
type InventoryService struct {
	Repo     *repository.IngredientRepository
	Notifier StockNotifier
}

func NewInventoryService(repo *repository.IngredientRepository, notifier StockNotifier) *InventoryService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InventoryService{Repo: repo, Notifier: notifier}
}

// DeductForOrder ตัดสต็อกตอน order เข้าสถานะ Processing
// ต่อ line: quantity_required × qty แล้วคูณ effect ของ option ที่อยู่บน line
// (หลาย effect ชนเป้าเดียวกัน → คูณทบกัน) รวมทุก line แล้วเขียนทีเดียว clamp ที่ 0
func (s *InventoryService) DeductForOrder(tx *gorm.DB, o *entity.Order) error {
	deltas, err := s.consumptionOf(tx, o, true)
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		return nil
	}
	for id := range deltas {
		deltas[id] = -deltas[id]
	}
	if err := s.Repo.BulkAdjustStock(tx, deltas); err != nil {
		return err
	}
	return s.signalAfterAdjust(tx, deltas, false)
}

// RestoreForOrder คืนสต็อกเมื่อ order ถูกยกเลิกหลัง Processing
// คืนแค่ quantity_required × qty ไม่คูณ effect กลับ — พฤติกรรมเดิมของระบบ
// ตั้งใจคงไว้ (อาจคืนเกินกว่าที่ตัดจริงเมื่อมี effect, ดู DESIGN.md)
func (s *InventoryService) RestoreForOrder(tx *gorm.DB, o *entity.Order) error {
	deltas, err := s.consumptionOf(tx, o, false)
	if err != nil {
		return err
	}
	if len(deltas) == 0 {
		return nil
	}
	if err := s.Repo.BulkAdjustStock(tx, deltas); err != nil {
		return err
	}
	return s.signalAfterAdjust(tx, deltas, true)
}

// consumptionOf รวมปริมาณการใช้วัตถุดิบต่อ ingredient ของทั้ง order
func (s *InventoryService) consumptionOf(tx *gorm.DB, o *entity.Order, applyEffects bool) (map[uint]float64, error) {
	itemIDs := make([]uint, 0, len(o.OrderItems))
	for _, li := range o.OrderItems {
		itemIDs = append(itemIDs, li.MenuItemID)
	}

	reqs, err := s.Repo.RequirementsForItems(tx, itemIDs)
	if err != nil {
		return nil, err
	}
	reqByItem := make(map[uint][]entity.ItemIngredient)
	for _, r := range reqs {
		reqByItem[r.MenuItemID] = append(reqByItem[r.MenuItemID], r)
	}

	var effByItem map[uint][]entity.IngredientEffect
	if applyEffects {
		effects, err := s.Repo.EffectsForItems(tx, itemIDs)
		if err != nil {
			return nil, err
		}
		effByItem = make(map[uint][]entity.IngredientEffect)
		for _, e := range effects {
			effByItem[e.MenuItemID] = append(effByItem[e.MenuItemID], e)
		}
	}

	deltas := make(map[uint]float64)
	for _, li := range o.OrderItems {
		onLine := make(map[uint]bool, len(li.Ingredients))
		for _, ing := range li.Ingredients {
			onLine[ing.IngredientID] = true
		}
		for _, req := range reqByItem[li.MenuItemID] {
			qty := req.QuantityRequired * float64(li.Qty)
			if applyEffects {
				for _, eff := range effByItem[li.MenuItemID] {
					if eff.TargetIngredientID == req.IngredientID && onLine[eff.OptionIngredientID] {
						qty *= eff.Multiplier
					}
				}
			}
			deltas[req.IngredientID] += qty
		}
	}
	return deltas, nil
}

func (s *InventoryService) signalAfterAdjust(tx *gorm.DB, deltas map[uint]float64, restoring bool) error {
	ids := make([]uint, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows, err := s.Repo.FindByIDs(tx, ids)
	if err != nil {
		return err
	}
	for _, ing := range rows {
		ev := StockEvent{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Stock:        ing.Stock,
			Threshold:    ing.LowStockThreshold,
		}
		if restoring {
			// แจ้งเฉพาะตอนข้าม threshold ขึ้นมาจริง ๆ ไม่ใช่ทุกการคืน
			before := ing.Stock - deltas[ing.ID]
			if before <= ing.LowStockThreshold && ing.Stock > ing.LowStockThreshold {
				ev.Kind = StockRestored
				s.Notifier.NotifyStock(ev)
			}
			continue
		}
		switch {
		case ing.Stock <= 0:
			ev.Kind = StockOut
		case ing.Stock <= ing.LowStockThreshold:
			ev.Kind = StockLow
		default:
			continue
		}
		log.WithFields(log.Fields{
			"ingredient": ing.Name, "stock": ing.Stock, "threshold": ing.LowStockThreshold,
		}).Warn("ingredient stock low")
		s.Notifier.NotifyStock(ev)
	}
	return nil
}
