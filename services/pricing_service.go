package services

import (
	"errors"
	"math"

	"github.com/SalamHyped/BeanToMug-sub000/configs"
	"github.com/SalamHyped/BeanToMug-sub000/repository"
	"gorm.io/gorm"
)

// PricingService = จุดเดียวที่คิดราคาจริง ใช้ทั้งตอนโชว์ราคาและตอน revalidate
// ก่อนจ่ายเงิน — ไม่เชื่อราคาที่ client หรือ session ส่งมาเด็ดขาด
type PricingService struct {
	Catalog  *repository.CatalogRepository
	Resolver *CustomizationService
	Settings configs.Settings
}

func NewPricingService(catalog *repository.CatalogRepository, resolver *CustomizationService, settings configs.Settings) *PricingService {
	return &PricingService{Catalog: catalog, Resolver: resolver, Settings: settings}
}

type PriceQuote struct {
	MenuItemID  uint                 `json:"menuItemId"`
	ItemName    string               `json:"itemName"`
	UnitPrice   int64                `json:"unitPrice"`
	Ingredients []ResolvedIngredient `json:"ingredients"`
}

// Quote อ่านราคาฐานปัจจุบัน + resolve selection ใหม่จาก catalog สด ๆ
func (s *PricingService) Quote(itemID uint, selected []uint) (*PriceQuote, error) {
	m, err := s.Catalog.GetItemBasics(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !m.Enabled {
		return nil, ErrNotFound
	}

	groups, err := s.Catalog.GroupsForItem(itemID)
	if err != nil {
		return nil, err
	}
	res, err := s.Resolver.Resolve(groups, selected)
	if err != nil {
		return nil, err
	}

	return &PriceQuote{
		MenuItemID:  m.ID,
		ItemName:    m.ItemName,
		UnitPrice:   m.Price + res.Extra,
		Ingredients: res.Ingredients,
	}, nil
}

// VAT ปัดเศษสตางค์แบบ round-half-up
func (s *PricingService) VAT(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * s.Settings.VATRate()))
}

func (s *PricingService) Totals(subtotal int64) (vat, total int64) {
	vat = s.VAT(subtotal)
	return vat, subtotal + vat
}
